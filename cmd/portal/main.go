// Punto de entrada del Portal de Cumplimiento SIREC.
// Carga la configuración, crea el cliente del backend de reportería y
// el manager de sesiones, arma los servicios y handlers, lanza el
// sondeo de alertas y topologymetrics, y levanta el servidor HTTP con
// graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/config"
	"github.com/dcastellanosr/sirec-portal/internal/server"
	"github.com/dcastellanosr/sirec-portal/internal/service"
	"github.com/dcastellanosr/sirec-portal/internal/session"
	uihandlers "github.com/dcastellanosr/sirec-portal/internal/ui/handlers"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

func main() {
	// 1. Variables de entorno: .env local primero, si existe
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error cargando la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Logging
	logger := config.SetupLogger(cfg)
	logger.Info("Portal de Cumplimiento iniciando",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
	)

	if cfg.SessionKey == "" {
		logger.Warn("PC_SESSION_KEY no está definida, las sesiones no sobreviven reinicios del portal")
	}

	// 3. Manager de sesiones (cookies cifradas AES-256-GCM)
	sesiones, err := session.NewManager(cfg.SessionKey, cfg.CookieSecure)
	if err != nil {
		logger.Error("Error creando el manager de sesiones", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Cliente del backend de reportería. El token sale de la sesión
	// que el resguardo dejó en el contexto del request.
	tokenProvider := func(ctx context.Context) (string, error) {
		if ses := uimiddleware.SesionDeContexto(ctx); ses != nil {
			return ses.Token, nil
		}
		return "", nil
	}
	api := backend.New(cfg.APIURL, cfg.APITimeout, tokenProvider, logger)

	// 5. Servicios
	authSvc := service.NewAuthService(api, sesiones, logger)
	alertasSvc := service.NewAlertasService(api, cfg.AlertPollInterval, logger)
	catalogosSvc := service.NewCatalogosService(api, cfg.CacheSize, cfg.CacheTTL)

	// 6. topologymetrics — monitoreo del backend de reportería
	ctx := context.Background()
	dephealthSvc, err := service.NewDephealthService(
		"sirec-portal",
		cfg.DephealthGroup,
		cfg.APIURL,
		cfg.DephealthCheckInterval,
		logger,
	)
	if err != nil {
		logger.Warn("topologymetrics no disponible, se arranca sin monitoreo de dependencias",
			slog.String("error", err.Error()),
		)
		dephealthSvc = nil
	} else if err := dephealthSvc.Start(ctx); err != nil {
		logger.Warn("Error iniciando topologymetrics", slog.String("error", err.Error()))
		dephealthSvc = nil
	} else {
		defer dephealthSvc.Stop()
	}

	// 7. Sondeo de alertas
	alertasSvc.Start(ctx)
	defer alertasSvc.Stop()

	// 8. Handlers y resguardo de rutas
	portal := uihandlers.NewPortal(
		api,
		authSvc,
		alertasSvc,
		catalogosSvc,
		dephealthSvc,
		cfg.DiasAlertaVencimiento,
		logger,
	)
	guard := uimiddleware.NewGuard(sesiones, logger)

	// 9. Servidor HTTP con graceful shutdown
	srv := server.New(cfg, logger, portal, guard)
	if err := srv.Run(); err != nil {
		logger.Error("Error del servidor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Portal de Cumplimiento detenido")
}
