// metrics.go — métricas HTTP de Prometheus del portal.
// Registra portal_http_requests_total y portal_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas HTTP
var (
	// httpRequestsTotal — total de requests HTTP.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total de requests HTTP al portal",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — histograma de duración de requests HTTP.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP al portal en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware devuelve el middleware HTTP que recolecta métricas
// Prometheus. Registra cantidad y duración por endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Normalizamos el path para los labels
			// (ids numéricos → {id} para no explotar la cardinalidad)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — envoltorio para capturar el código de estado.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap permite a http.ResponseController acceder al ResponseWriter
// original.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath reemplaza los segmentos numéricos del path por {id}
// para evitar el crecimiento explosivo de la cardinalidad de las
// métricas.
// /api/usuarios/42 → /api/usuarios/{id}
func normalizePath(path string) string {
	segmentos := strings.Split(path, "/")
	cambiado := false
	for i, s := range segmentos {
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			segmentos[i] = "{id}"
			cambiado = true
		}
	}
	if !cambiado {
		return path
	}
	return strings.Join(segmentos, "/")
}
