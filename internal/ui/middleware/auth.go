// Paquete middleware — middleware HTTP del portal autenticado.
// auth.go — resguardo de rutas por sesión de cookie y por rol.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
	"github.com/dcastellanosr/sirec-portal/internal/session"
)

// contextKey — tipo para las claves de contexto del portal.
type contextKey string

const (
	// ContextKeySesion — sesión autenticada en el contexto del request.
	ContextKeySesion contextKey = "sesion"
)

// RutaLogin — destino de los redirects de sesión ausente.
const RutaLogin = "/signin"

// Guard — middleware de autenticación y autorización por rol.
type Guard struct {
	sesiones *session.Manager
	logger   *slog.Logger
}

// NewGuard crea el resguardo de rutas.
func NewGuard(sesiones *session.Manager, logger *slog.Logger) *Guard {
	return &Guard{
		sesiones: sesiones,
		logger:   logger.With(slog.String("component", "guard")),
	}
}

// RequireSesion exige una sesión válida. Sin sesión (o con cookies
// corruptas o token vencido) limpia las cookies y redirige a
// /signin?desde=<ruta original>. Las respuestas autenticadas llevan
// Cache-Control: no-store para que el botón atrás del navegador no
// muestre datos tras un logout.
func (g *Guard) RequireSesion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ses, err := g.sesiones.Desde(r)
		if err != nil {
			g.logger.Debug("Sesión ilegible, se limpia",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr),
			)
			g.sesiones.Limpiar(w)
			g.redirigirALogin(w, r)
			return
		}
		if ses == nil {
			g.redirigirALogin(w, r)
			return
		}
		if ses.Expirada() {
			g.logger.Info("Sesión expirada, se limpia",
				slog.String("correo", ses.Correo),
			)
			g.sesiones.Limpiar(w)
			g.redirigirALogin(w, r)
			return
		}

		w.Header().Set("Cache-Control", "no-store")

		ctx := context.WithValue(r.Context(), ContextKeySesion, ses)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles exige que la sesión del contexto tenga alguno de los
// roles dados. Un rol no permitido redirige a la raíz, nunca a login:
// el usuario está autenticado, solo que en la ruta equivocada.
func (g *Guard) RequireRoles(permitidos ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ses := SesionDeContexto(r.Context())
			if ses == nil {
				g.redirigirALogin(w, r)
				return
			}
			if !roles.Permitido(ses.Rol, permitidos...) {
				g.logger.Warn("Acceso denegado por rol",
					slog.String("correo", ses.Correo),
					slog.String("rol", ses.Rol),
					slog.String("path", r.URL.Path),
				)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PublicOnly cubre las rutas de invitado (login). Un usuario ya
// autenticado que llegue acá va directo a la raíz.
func (g *Guard) PublicOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ses, err := g.sesiones.Desde(r)
		if err == nil && ses != nil && !ses.Expirada() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// redirigirALogin redirige a /signin conservando la ruta original en
// el parámetro desde, para volver a ella tras autenticarse.
func (g *Guard) redirigirALogin(w http.ResponseWriter, r *http.Request) {
	destino := RutaLogin
	if r.URL.Path != "/" && r.URL.Path != RutaLogin {
		destino += "?desde=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, destino, http.StatusFound)
}

// SesionDeContexto extrae la sesión del contexto del request.
// Devuelve nil si el request no pasó por RequireSesion.
func SesionDeContexto(ctx context.Context) *session.Sesion {
	ses, ok := ctx.Value(ContextKeySesion).(*session.Sesion)
	if !ok {
		return nil
	}
	return ses
}
