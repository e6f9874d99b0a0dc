// supervision.go — revisión de reportes enviados: el supervisor aprueba
// o devuelve a corrección. El rechazo exige una observación que le diga
// al responsable qué corregir.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

// decisionSupervisor — cuerpo de aprobar/rechazar.
type decisionSupervisor struct {
	Observacion string `json:"observacion,omitempty"`
}

// ListarEnRevision — GET /supervision. Instancias enviadas pendientes
// de decisión del supervisor de la sesión.
func (h *Portal) ListarEnRevision(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())

	instancias, err := h.api.ListarInstancias(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando instancias en revisión")
		return
	}

	enRevision := make([]model.InstanciaReporte, 0, len(instancias))
	for _, inst := range instancias {
		if !inst.Enviado || inst.EstadoRevision == "APROBADO" {
			continue
		}
		if inst.ResponsableSupervisionID != 0 && inst.ResponsableSupervisionID != ses.UsuarioID {
			continue
		}
		enRevision = append(enRevision, inst)
	}
	writeJSON(w, http.StatusOK, paginar(r, enRevision))
}

// AprobarInstancia — PATCH /instancias/{id}/aprobar.
// La observación es opcional al aprobar.
func (h *Portal) AprobarInstancia(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de instancia inválido.")
		return
	}

	decision, err := leerDecision(r)
	if err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}

	instancia, err := h.api.AprobarInstancia(r.Context(), id, decision.Observacion)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error aprobando instancia")
		return
	}
	writeJSON(w, http.StatusOK, instancia)
}

// RechazarInstancia — PATCH /instancias/{id}/rechazar.
// Sin observación no hay rechazo: el responsable necesita saber qué
// corregir.
func (h *Portal) RechazarInstancia(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de instancia inválido.")
		return
	}

	decision, err := leerDecision(r)
	if err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}
	if decision.Observacion == "" {
		apierrors.ValidationError(w, "La observación es obligatoria para devolver un reporte a corrección.")
		return
	}

	instancia, err := h.api.RechazarInstancia(r.Context(), id, decision.Observacion)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error rechazando instancia")
		return
	}
	writeJSON(w, http.StatusOK, instancia)
}

// leerDecision decodifica el cuerpo de la decisión; un cuerpo vacío es
// una decisión sin observación.
func leerDecision(r *http.Request) (decisionSupervisor, error) {
	var decision decisionSupervisor
	if r.Body == nil || r.ContentLength == 0 {
		return decision, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		return decision, err
	}
	decision.Observacion = strings.TrimSpace(decision.Observacion)
	return decision, nil
}
