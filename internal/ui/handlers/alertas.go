// alertas.go — campana de alertas del portal.
//
// El primer acceso de un usuario lo suscribe al sondeo periódico de su
// contador; las lecturas siguientes del contador salen del caché del
// servicio de alertas.
package handlers

import (
	"context"
	"net/http"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/session"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

// MisAlertas — GET /alertas?soloNoLeidas=true.
func (h *Portal) MisAlertas(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())
	h.suscribirAlertas(r, ses)

	soloNoLeidas := r.URL.Query().Get("soloNoLeidas") == "true"
	alertas, err := h.alertas.MisAlertas(r.Context(), soloNoLeidas)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando alertas")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, alertas))
}

// ContadorAlertas — GET /alertas/contador. Lectura cacheada.
func (h *Portal) ContadorAlertas(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())
	h.suscribirAlertas(r, ses)

	noLeidas, err := h.alertas.ContadorNoLeidas(r.Context(), ses.UsuarioID)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error consultando contador de alertas")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"noLeidas": noLeidas})
}

// MarcarAlertaLeida — PATCH /alertas/{id}/marcar-leida.
func (h *Portal) MarcarAlertaLeida(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de alerta inválido.")
		return
	}

	ses := uimiddleware.SesionDeContexto(r.Context())
	if err := h.alertas.MarcarLeida(r.Context(), ses.UsuarioID, id); err != nil {
		h.responderErrorBackend(w, r, err, "Error marcando alerta como leída")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarcarTodasLeidas — PATCH /alertas/marcar-todas-leidas.
func (h *Portal) MarcarTodasLeidas(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())
	resultado, err := h.alertas.MarcarTodasLeidas(r.Context(), ses.UsuarioID)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error marcando todas las alertas")
		return
	}
	writeJSON(w, http.StatusOK, resultado)
}

// TodasLasAlertas — GET /alertas/todas?soloNoLeidas=true.
// Vista de administrador sobre las alertas de todos los usuarios.
func (h *Portal) TodasLasAlertas(w http.ResponseWriter, r *http.Request) {
	listar := h.api.TodasLasAlertas
	if r.URL.Query().Get("soloNoLeidas") == "true" {
		listar = h.api.TodasLasAlertasNoLeidas
	}

	alertas, err := listar(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando todas las alertas")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, alertas))
}

// suscribirAlertas registra al usuario en el sondeo con un contexto que
// sobrevive al request pero conserva la sesión (y con ella el token que
// el cliente del backend necesita en cada sondeo). La baja llega por
// el logout o por la expiración del token.
func (h *Portal) suscribirAlertas(r *http.Request, ses *session.Sesion) {
	h.alertas.Suscribir(context.WithoutCancel(r.Context()), ses)
}
