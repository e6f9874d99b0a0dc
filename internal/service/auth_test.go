package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
	"github.com/dcastellanosr/sirec-portal/internal/session"
)

// testLogger crea un logger para tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupAuth levanta un backend mock y construye el servicio de
// autenticación contra él.
func setupAuth(t *testing.T, handler http.HandlerFunc) *AuthService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := backend.New(server.URL, 5*time.Second, nil, testLogger())
	sesiones, err := session.NewManager("clave-de-test", false)
	if err != nil {
		t.Fatalf("NewManager devolvió error: %v", err)
	}
	return NewAuthService(api, sesiones, testLogger())
}

func TestLogin_Exitoso(t *testing.T) {
	svc := setupAuth(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(backend.RespuestaLogin{
			Token:     "token-opaco",
			Rol:       "ROLE_SUPERVISOR",
			Nombre:    "Ana Pérez",
			UsuarioID: 7,
		})
	})

	rec := httptest.NewRecorder()
	ses, err := svc.Login(context.Background(), rec, "ana@entidad.gov.co", "secreto")
	if err != nil {
		t.Fatalf("Login devolvió error: %v", err)
	}

	if ses.Rol != roles.Supervisor {
		t.Errorf("Rol = %q, se espera supervisor", ses.Rol)
	}
	if ses.RolBackend != "ROLE_SUPERVISOR" {
		t.Errorf("RolBackend = %q, se espera ROLE_SUPERVISOR", ses.RolBackend)
	}
	if ses.UsuarioID != 7 || ses.Nombre != "Ana Pérez" {
		t.Errorf("sesión inesperada: %+v", ses)
	}

	// El login exitoso debe dejar las dos cookies de sesión
	cookies := rec.Result().Cookies()
	nombres := map[string]bool{}
	for _, c := range cookies {
		nombres[c.Name] = true
	}
	if !nombres[session.CookieToken] || !nombres[session.CookieUsuario] {
		t.Errorf("faltan cookies de sesión, presentes: %v", nombres)
	}
}

func TestLogin_Clasificacion(t *testing.T) {
	tests := []struct {
		nombre          string
		status          int
		cuerpo          string
		mensajeEsperado string
		statusEsperado  int
	}{
		{"credenciales incorrectas", http.StatusUnauthorized, "", MsgCredencialesIncorrectas, http.StatusUnauthorized},
		{"usuario inactivo", http.StatusForbidden, "", MsgUsuarioInactivo, http.StatusForbidden},
		{"usuario no encontrado", http.StatusNotFound, "", MsgUsuarioNoEncontrado, http.StatusNotFound},
		{"otro error con mensaje", http.StatusConflict, `{"message":"Cuenta bloqueada"}`, "Cuenta bloqueada", http.StatusConflict},
		{"otro error sin mensaje", http.StatusInternalServerError, "", MsgErrorGenerico, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			svc := setupAuth(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.cuerpo))
			})

			rec := httptest.NewRecorder()
			_, err := svc.Login(context.Background(), rec, "ana@entidad.gov.co", "x")
			if err == nil {
				t.Fatal("se esperaba un error, se obtuvo nil")
			}

			var el *ErrLogin
			if !errors.As(err, &el) {
				t.Fatalf("se esperaba *ErrLogin, se obtuvo %T", err)
			}
			if el.Mensaje != tt.mensajeEsperado {
				t.Errorf("Mensaje = %q, se espera %q", el.Mensaje, tt.mensajeEsperado)
			}
			if el.Status != tt.statusEsperado {
				t.Errorf("Status = %d, se espera %d", el.Status, tt.statusEsperado)
			}

			// Un login fallido no debe dejar cookies
			if len(rec.Result().Cookies()) != 0 {
				t.Error("no se esperaban cookies tras un login fallido")
			}
		})
	}
}

func TestLogin_BackendNoDisponible(t *testing.T) {
	api := backend.New("http://localhost:1", time.Second, nil, testLogger())
	sesiones, err := session.NewManager("clave-de-test", false)
	if err != nil {
		t.Fatalf("NewManager devolvió error: %v", err)
	}
	svc := NewAuthService(api, sesiones, testLogger())

	rec := httptest.NewRecorder()
	_, err = svc.Login(context.Background(), rec, "ana@entidad.gov.co", "x")

	var el *ErrLogin
	if !errors.As(err, &el) {
		t.Fatalf("se esperaba *ErrLogin, se obtuvo %v", err)
	}
	if el.Mensaje != MsgServidorNoDisponible {
		t.Errorf("Mensaje = %q, se espera %q", el.Mensaje, MsgServidorNoDisponible)
	}
	if el.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, se espera 503", el.Status)
	}
}

func TestLogout(t *testing.T) {
	sesiones, err := session.NewManager("clave-de-test", false)
	if err != nil {
		t.Fatalf("NewManager devolvió error: %v", err)
	}
	svc := NewAuthService(backend.New("http://localhost:1", time.Second, nil, testLogger()), sesiones, testLogger())

	rec := httptest.NewRecorder()
	svc.Logout(rec, &session.Sesion{Correo: "ana@entidad.gov.co"})

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("se esperaban 2 cookies expiradas, se obtuvieron %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge != -1 || c.Value != "" {
			t.Errorf("cookie %s no fue limpiada: MaxAge=%d Value=%q", c.Name, c.MaxAge, c.Value)
		}
	}
}
