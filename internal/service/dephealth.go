// dephealth.go — integración con el SDK de topologymetrics para el
// monitoreo de dependencias.
//
// El portal tiene una sola dependencia externa: el backend de
// reportería. Se monitorea con un HTTP checker (critical).
//
// Las métricas quedan en /metrics junto con el resto de métricas
// Prometheus:
//   - app_dependency_health — estado de la dependencia (1 = ok, 0 = fail)
//   - app_dependency_latency_seconds — latencia de la verificación
//   - app_dependency_status — categoría de estado
//   - app_dependency_status_detail — estado detallado
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // HTTP checker para el backend
	"github.com/prometheus/client_golang/prometheus"
)

// DephealthService — monitoreo de dependencias vía topologymetrics.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService crea el servicio de monitoreo. Las métricas se
// registran en el registry global de Prometheus.
//
// Parámetros:
//   - serviceID — nombre del vértice del grafo (e.g. "portal-cumplimiento")
//   - group — nombre del grupo en las métricas
//   - apiURL — URL base del backend de reportería
//   - checkInterval — intervalo de verificación (PC_DEPHEALTH_CHECK_INTERVAL)
func NewDephealthService(
	serviceID string,
	group string,
	apiURL string,
	checkInterval time.Duration,
	logger *slog.Logger,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiURL, checkInterval, logger)
}

// NewDephealthServiceWithRegisterer crea el servicio con el registerer
// indicado. Se usa en tests para aislar las métricas.
func NewDephealthServiceWithRegisterer(
	serviceID string,
	group string,
	apiURL string,
	checkInterval time.Duration,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(serviceID, group, apiURL, checkInterval, logger,
		dephealth.WithRegisterer(registerer))
}

// newDephealthService — constructor interno.
func newDephealthService(
	serviceID string,
	group string,
	apiURL string,
	checkInterval time.Duration,
	logger *slog.Logger,
	extraOpts ...dephealth.Option,
) (*DephealthService, error) {
	opts := []dephealth.Option{
		dephealth.WithLogger(logger),
		// Backend de reportería — HTTP checker a su endpoint de health
		dephealth.HTTP("api-reporteria",
			dephealth.FromURL(apiURL),
			dephealth.WithHTTPHealthPath("/actuator/health"),
			dephealth.CheckInterval(checkInterval),
			dephealth.Critical(true),
		),
	}
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(serviceID, group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start inicia la verificación periódica de dependencias.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Monitoreo de dependencias iniciado (backend de reportería)")
	return ds.dh.Start(ctx)
}

// Stop detiene el monitoreo de dependencias.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Monitoreo de dependencias detenido")
}

// Health devuelve el estado actual de las dependencias.
// La clave es el nombre de la dependencia, el valor true si está ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
