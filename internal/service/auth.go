// auth.go — inicio y cierre de sesión contra el backend de reportería.
//
// El backend es la autoridad de autenticación; el portal solo traduce
// el resultado del login a una sesión de cookie y clasifica los fallos
// en mensajes entendibles para la persona usuaria.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
	"github.com/dcastellanosr/sirec-portal/internal/session"
)

// Mensajes de fallo de login mostrados a la persona usuaria.
const (
	MsgCredencialesIncorrectas = "Credenciales incorrectas. Verifique su correo y contraseña."
	MsgUsuarioInactivo         = "Usuario inactivo o sin permisos de acceso."
	MsgUsuarioNoEncontrado     = "Usuario no encontrado."
	MsgErrorGenerico           = "Error al iniciar sesión. Intente nuevamente."
	MsgServidorNoDisponible    = "No se puede conectar con el servidor. Verifique que el backend esté ejecutándose."
	MsgErrorInesperado         = "Error inesperado. Intente nuevamente."
)

// ErrLogin — fallo de inicio de sesión con mensaje para la persona
// usuaria y código HTTP sugerido para la respuesta del portal.
type ErrLogin struct {
	// Mensaje mostrado en el formulario de login.
	Mensaje string
	// Status sugerido para la respuesta del portal.
	Status int
}

func (e *ErrLogin) Error() string {
	return e.Mensaje
}

// AuthService — inicio y cierre de sesión.
type AuthService struct {
	api      *backend.Client
	sesiones *session.Manager
	logger   *slog.Logger
}

// NewAuthService crea el servicio de autenticación.
func NewAuthService(api *backend.Client, sesiones *session.Manager, logger *slog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sesiones: sesiones,
		logger:   logger.With(slog.String("component", "auth")),
	}
}

// Login autentica las credenciales contra el backend y, si el resultado
// es exitoso, escribe las cookies de sesión en la respuesta. El rol del
// backend se normaliza al conjunto cerrado de roles del portal antes de
// guardarse.
//
// En caso de fallo devuelve *ErrLogin con el mensaje clasificado:
// credenciales incorrectas (401), usuario inactivo (403), usuario no
// encontrado (404), backend no disponible o error genérico.
func (s *AuthService) Login(ctx context.Context, w http.ResponseWriter, correo, contrasena string) (*session.Sesion, error) {
	resp, err := s.api.IniciarSesion(ctx, backend.CredencialesLogin{
		Email:    correo,
		Password: contrasena,
	})
	if err != nil {
		return nil, s.clasificarFallo(correo, err)
	}

	ses := &session.Sesion{
		UsuarioID:  resp.UsuarioID,
		Correo:     correo,
		Nombre:     resp.Nombre,
		Rol:        roles.Normalizar(resp.Rol),
		RolBackend: resp.Rol,
		Token:      resp.Token,
	}

	if err := s.sesiones.Guardar(w, ses); err != nil {
		s.logger.Error("Error guardando la sesión",
			slog.String("correo", correo),
			slog.String("error", err.Error()),
		)
		return nil, &ErrLogin{Mensaje: MsgErrorInesperado, Status: http.StatusInternalServerError}
	}

	s.logger.Info("Sesión iniciada",
		slog.String("correo", correo),
		slog.String("rol", ses.Rol),
	)
	return ses, nil
}

// Logout limpia las cookies de sesión. No hay invalidación remota: el
// token del backend expira por su cuenta.
func (s *AuthService) Logout(w http.ResponseWriter, ses *session.Sesion) {
	s.sesiones.Limpiar(w)
	if ses != nil {
		s.logger.Info("Sesión cerrada", slog.String("correo", ses.Correo))
	}
}

// clasificarFallo traduce el error del backend a un *ErrLogin.
func (s *AuthService) clasificarFallo(correo string, err error) *ErrLogin {
	if errors.Is(err, backend.ErrNoAlcanzable) {
		s.logger.Error("Backend no disponible durante login",
			slog.String("correo", correo),
			slog.String("error", err.Error()),
		)
		return &ErrLogin{Mensaje: MsgServidorNoDisponible, Status: http.StatusServiceUnavailable}
	}

	status := backend.CodigoHTTP(err)
	s.logger.Warn("Login rechazado por el backend",
		slog.String("correo", correo),
		slog.Int("status", status),
	)

	switch status {
	case http.StatusUnauthorized:
		return &ErrLogin{Mensaje: MsgCredencialesIncorrectas, Status: http.StatusUnauthorized}
	case http.StatusForbidden:
		return &ErrLogin{Mensaje: MsgUsuarioInactivo, Status: http.StatusForbidden}
	case http.StatusNotFound:
		return &ErrLogin{Mensaje: MsgUsuarioNoEncontrado, Status: http.StatusNotFound}
	case 0:
		return &ErrLogin{Mensaje: MsgErrorInesperado, Status: http.StatusInternalServerError}
	default:
		if msg := backend.MensajeBackend(err); msg != "" {
			return &ErrLogin{Mensaje: msg, Status: status}
		}
		return &ErrLogin{Mensaje: MsgErrorGenerico, Status: status}
	}
}
