// auth.go — inicio y cierre de sesión del portal.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/service"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

// credenciales — cuerpo de POST /signin.
type credenciales struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
	// Desde — ruta a la que volver tras autenticarse.
	Desde string `json:"desde,omitempty"`
}

// sesionVista — view-model de la sesión entregado al navegador.
type sesionVista struct {
	UsuarioID int    `json:"usuarioId"`
	Correo    string `json:"correo"`
	Nombre    string `json:"nombre"`
	Rol       string `json:"rol"`
	Destino   string `json:"destino"`
}

// PaginaSignIn — GET /signin. View-model de la pantalla de login; el
// parámetro desde se devuelve para que el formulario lo reenvíe.
func (h *Portal) PaginaSignIn(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"titulo": "Iniciar sesión",
		"desde":  destinoSeguro(r.URL.Query().Get("desde")),
	})
}

// SignIn — POST /signin.
// Acepta credenciales como JSON o como formulario. Un login exitoso
// escribe las cookies de sesión; el formulario además redirige al
// destino original, el JSON lo devuelve en el campo destino.
func (h *Portal) SignIn(w http.ResponseWriter, r *http.Request) {
	cred, esJSON, err := leerCredenciales(r)
	if err != nil {
		apierrors.ValidationError(w, "No se pudieron leer las credenciales.")
		return
	}
	if cred.Correo == "" || cred.Contrasena == "" {
		apierrors.ValidationError(w, "Correo y contraseña son obligatorios.")
		return
	}

	ses, err := h.auth.Login(r.Context(), w, cred.Correo, cred.Contrasena)
	if err != nil {
		var fallo *service.ErrLogin
		if errors.As(err, &fallo) {
			codigo := apierrors.CodeUnauthorized
			if fallo.Status >= http.StatusInternalServerError {
				codigo = apierrors.CodeAPIUnavailable
			}
			apierrors.WriteError(w, fallo.Status, codigo, fallo.Mensaje)
			return
		}
		apierrors.InternalError(w, service.MsgErrorInesperado)
		return
	}

	destino := destinoSeguro(cred.Desde)
	if esJSON {
		writeJSON(w, http.StatusOK, sesionVista{
			UsuarioID: ses.UsuarioID,
			Correo:    ses.Correo,
			Nombre:    ses.Nombre,
			Rol:       ses.Rol,
			Destino:   destino,
		})
		return
	}
	http.Redirect(w, r, destino, http.StatusSeeOther)
}

// Logout — POST /logout. Da de baja el sondeo de alertas del usuario,
// limpia las cookies y confirma.
func (h *Portal) Logout(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())
	h.alertas.Desuscribir(ses.UsuarioID)
	h.auth.Logout(w, ses)
	writeJSON(w, http.StatusOK, map[string]string{
		"mensaje": "Sesión cerrada.",
		"destino": uimiddleware.RutaLogin,
	})
}

// Perfil — GET /perfil. Sesión del usuario autenticado.
func (h *Portal) Perfil(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())
	if ses == nil {
		apierrors.Unauthorized(w, "Sesión no encontrada.")
		return
	}
	writeJSON(w, http.StatusOK, sesionVista{
		UsuarioID: ses.UsuarioID,
		Correo:    ses.Correo,
		Nombre:    ses.Nombre,
		Rol:       ses.Rol,
		Destino:   "/",
	})
}

// leerCredenciales decodifica el cuerpo según su Content-Type.
func leerCredenciales(r *http.Request) (credenciales, bool, error) {
	var cred credenciales
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
			return cred, true, err
		}
		return cred, true, nil
	}

	if err := r.ParseForm(); err != nil {
		return cred, false, err
	}
	cred.Correo = r.PostFormValue("correo")
	cred.Contrasena = r.PostFormValue("contrasena")
	cred.Desde = r.PostFormValue("desde")
	return cred, false, nil
}

// destinoSeguro valida que el destino del redirect sea una ruta local.
// Cualquier otra cosa cae a la raíz.
func destinoSeguro(desde string) string {
	if desde == "" || !strings.HasPrefix(desde, "/") || strings.HasPrefix(desde, "//") {
		return "/"
	}
	if desde == uimiddleware.RutaLogin {
		return "/"
	}
	return desde
}
