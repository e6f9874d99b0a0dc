// entidades.go — administración de entidades reguladas.
// Las escrituras invalidan el caché del catálogo de entidades.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// ListarEntidades — GET /entidades.
func (h *Portal) ListarEntidades(w http.ResponseWriter, r *http.Request) {
	entidades, err := h.catalogos.Entidades(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando entidades")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, entidades))
}

// ObtenerEntidad — GET /entidades/{id}.
func (h *Portal) ObtenerEntidad(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de entidad inválido.")
		return
	}

	entidad, err := h.api.ObtenerEntidad(r.Context(), id)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error consultando entidad")
		return
	}
	writeJSON(w, http.StatusOK, entidad)
}

// CrearEntidad — POST /entidades.
func (h *Portal) CrearEntidad(w http.ResponseWriter, r *http.Request) {
	var entidad model.Entidad
	if err := json.NewDecoder(r.Body).Decode(&entidad); err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}
	if msg := validarEntidad(&entidad); msg != "" {
		apierrors.ValidationError(w, msg)
		return
	}

	creada, err := h.api.CrearEntidad(r.Context(), entidad)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error creando entidad")
		return
	}
	h.catalogos.InvalidarEntidades()
	writeJSON(w, http.StatusCreated, creada)
}

// ActualizarEntidad — PUT /entidades/{id}.
func (h *Portal) ActualizarEntidad(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de entidad inválido.")
		return
	}

	var entidad model.Entidad
	if err := json.NewDecoder(r.Body).Decode(&entidad); err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}
	if msg := validarEntidad(&entidad); msg != "" {
		apierrors.ValidationError(w, msg)
		return
	}

	actualizada, err := h.api.ActualizarEntidad(r.Context(), id, entidad)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error actualizando entidad")
		return
	}
	h.catalogos.InvalidarEntidades()
	writeJSON(w, http.StatusOK, actualizada)
}

// EliminarEntidad — DELETE /entidades/{id}.
func (h *Portal) EliminarEntidad(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de entidad inválido.")
		return
	}

	if err := h.api.EliminarEntidad(r.Context(), id); err != nil {
		h.responderErrorBackend(w, r, err, "Error eliminando entidad")
		return
	}
	h.catalogos.InvalidarEntidades()
	w.WriteHeader(http.StatusNoContent)
}

// validarEntidad revisa los campos obligatorios del formulario.
func validarEntidad(e *model.Entidad) string {
	e.NIT = strings.TrimSpace(e.NIT)
	e.RazonSocial = strings.TrimSpace(e.RazonSocial)
	e.TipoEntidad = strings.TrimSpace(e.TipoEntidad)

	switch {
	case e.NIT == "":
		return "El NIT es obligatorio."
	case e.RazonSocial == "":
		return "La razón social es obligatoria."
	case e.TipoEntidad == "":
		return "El tipo de entidad es obligatorio."
	}
	return ""
}
