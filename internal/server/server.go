// Paquete server — servidor HTTP del portal con graceful shutdown.
// Sin TLS: el portal corre detrás del ingress que termina la conexión.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apimiddleware "github.com/dcastellanosr/sirec-portal/internal/api/middleware"
	"github.com/dcastellanosr/sirec-portal/internal/config"
	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
	"github.com/dcastellanosr/sirec-portal/internal/ui/handlers"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

// Server — servidor HTTP del portal.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New arma el router y crea el servidor.
// portal — handlers del portal; guard — resguardo de sesión y roles.
func New(cfg *config.Config, logger *slog.Logger, portal *handlers.Portal, guard *uimiddleware.Guard) *Server {
	router := chi.NewRouter()

	// Middleware globales, en orden: id de request, métricas, log.
	router.Use(apimiddleware.RequestID)
	router.Use(apimiddleware.MetricsMiddleware())
	router.Use(apimiddleware.RequestLogger(logger))

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", apimiddleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	router.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))

	// Rutas públicas: probes, métricas y login.
	router.Get("/health/live", portal.HealthLive)
	router.Get("/health/ready", portal.HealthReady)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.With(guard.PublicOnly).Get(uimiddleware.RutaLogin, portal.PaginaSignIn)
	router.With(guard.PublicOnly).Post(uimiddleware.RutaLogin, portal.SignIn)

	// Rutas autenticadas.
	router.Group(func(r chi.Router) {
		r.Use(guard.RequireSesion)

		r.Post("/logout", portal.Logout)
		r.Get("/perfil", portal.Perfil)

		// La raíz es el dashboard: destino de los redirects por rol
		// insuficiente y del login sin ruta de origen.
		r.Get("/", portal.Dashboard)
		r.Get("/dashboard", portal.Dashboard)

		// Alertas del usuario de la sesión.
		r.Route("/alertas", func(r chi.Router) {
			r.Get("/", portal.MisAlertas)
			r.Get("/contador", portal.ContadorAlertas)
			r.Patch("/{id}/marcar-leida", portal.MarcarAlertaLeida)
			r.Patch("/marcar-todas-leidas", portal.MarcarTodasLeidas)
			r.With(guard.RequireRoles(roles.Administrador)).
				Get("/todas", portal.TodasLasAlertas)
		})

		// Consulta de instancias: todos los roles autenticados.
		r.Get("/historico", portal.Historico)
		r.Route("/instancias", func(r chi.Router) {
			r.Get("/", portal.ListarInstancias)
			r.Get("/pendientes", portal.ListarPendientes)
			r.Get("/vencidos", portal.ListarVencidos)

			// Envío del reporte: responsable (o administrador cubriendo).
			envio := guard.RequireRoles(roles.Responsable, roles.Administrador)
			r.With(envio).Post("/{id}/enviar", portal.EnviarReporte)
			r.With(envio).Post("/{id}/enviar-link", portal.EnviarReporteConLink)

			// Decisión de supervisión.
			revision := guard.RequireRoles(roles.Supervisor, roles.Administrador)
			r.With(revision).Patch("/{id}/aprobar", portal.AprobarInstancia)
			r.With(revision).Patch("/{id}/rechazar", portal.RechazarInstancia)
		})
		r.With(guard.RequireRoles(roles.Supervisor, roles.Administrador)).
			Get("/supervision", portal.ListarEnRevision)

		// Administración de catálogos: solo administrador.
		r.Route("/usuarios", func(r chi.Router) {
			r.Use(guard.RequireRoles(roles.Administrador))
			r.Get("/", portal.ListarUsuarios)
			r.Post("/", portal.CrearUsuario)
			r.Get("/{id}", portal.ObtenerUsuario)
			r.Put("/{id}", portal.ActualizarUsuario)
			r.Delete("/{id}", portal.EliminarUsuario)
		})
		r.Route("/entidades", func(r chi.Router) {
			r.Get("/", portal.ListarEntidades)
			r.Get("/{id}", portal.ObtenerEntidad)

			escritura := guard.RequireRoles(roles.Administrador)
			r.With(escritura).Post("/", portal.CrearEntidad)
			r.With(escritura).Put("/{id}", portal.ActualizarEntidad)
			r.With(escritura).Delete("/{id}", portal.EliminarEntidad)
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run arranca el servidor y espera SIGINT o SIGTERM.
// Al recibir la señal ejecuta el graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Servidor HTTP iniciado",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Señal de terminación recibida", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error del servidor HTTP: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Ejecutando graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("error en el graceful shutdown: %w", err)
	}

	s.logger.Info("Servidor HTTP detenido")
	return nil
}
