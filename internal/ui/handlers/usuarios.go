// usuarios.go — administración de usuarios del sistema de reportería.
// Solo el administrador llega a estas rutas (el router aplica el rol).
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// usuariosVista — listado de usuarios con el catálogo de roles para el
// formulario de edición.
type usuariosVista struct {
	Usuarios paginaRespuesta `json:"usuarios"`
	Roles    []model.Rol     `json:"roles"`
}

// ListarUsuarios — GET /usuarios.
// El listado y el catálogo de roles se consultan en paralelo.
func (h *Portal) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	var (
		usuarios []model.Usuario
		listaRol []model.Rol
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		usuarios, err = h.api.ListarUsuarios(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		listaRol, err = h.catalogos.Roles(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.responderErrorBackend(w, r, err, "Error listando usuarios")
		return
	}

	writeJSON(w, http.StatusOK, usuariosVista{
		Usuarios: paginar(r, usuarios),
		Roles:    listaRol,
	})
}

// ObtenerUsuario — GET /usuarios/{id}.
func (h *Portal) ObtenerUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de usuario inválido.")
		return
	}

	usuario, err := h.api.ObtenerUsuario(r.Context(), id)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error consultando usuario")
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

// CrearUsuario — POST /usuarios.
func (h *Portal) CrearUsuario(w http.ResponseWriter, r *http.Request) {
	var req model.UsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}
	if msg := validarUsuario(&req, true); msg != "" {
		apierrors.ValidationError(w, msg)
		return
	}

	usuario, err := h.api.CrearUsuario(r.Context(), req)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error creando usuario")
		return
	}
	writeJSON(w, http.StatusCreated, usuario)
}

// ActualizarUsuario — PUT /usuarios/{id}.
// La contraseña solo viaja si se está cambiando.
func (h *Portal) ActualizarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de usuario inválido.")
		return
	}

	var req model.UsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}
	if msg := validarUsuario(&req, false); msg != "" {
		apierrors.ValidationError(w, msg)
		return
	}

	usuario, err := h.api.ActualizarUsuario(r.Context(), id, req)
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error actualizando usuario")
		return
	}
	writeJSON(w, http.StatusOK, usuario)
}

// EliminarUsuario — DELETE /usuarios/{id}.
func (h *Portal) EliminarUsuario(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de usuario inválido.")
		return
	}

	if err := h.api.EliminarUsuario(r.Context(), id); err != nil {
		h.responderErrorBackend(w, r, err, "Error eliminando usuario")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validarUsuario revisa los campos obligatorios del formulario.
// Devuelve el mensaje de validación o cadena vacía si todo está bien.
func validarUsuario(req *model.UsuarioRequest, esCreacion bool) string {
	req.Cedula = strings.TrimSpace(req.Cedula)
	req.NombreCompleto = strings.TrimSpace(req.NombreCompleto)
	req.Correo = strings.TrimSpace(req.Correo)

	switch {
	case req.Cedula == "":
		return "La cédula es obligatoria."
	case req.NombreCompleto == "":
		return "El nombre completo es obligatorio."
	case req.Correo == "" || !strings.Contains(req.Correo, "@"):
		return "El correo es obligatorio y debe ser válido."
	case esCreacion && req.Contrasena == "":
		return "La contraseña es obligatoria al crear el usuario."
	case req.Rol.ID < 1:
		return "Debe seleccionar un rol."
	}
	return ""
}
