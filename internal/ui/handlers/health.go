// health.go — endpoints de salud del portal.
// /health/live — el proceso está vivo
// /health/ready — el backend de reportería responde
// /metrics — métricas Prometheus
package handlers

import (
	"net/http"
	"time"

	"github.com/dcastellanosr/sirec-portal/internal/config"
)

// resultadoCheck — estado de una dependencia del portal.
type resultadoCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthRespuesta — respuesta de los endpoints de salud.
type healthRespuesta struct {
	Status    string                    `json:"status"`
	Timestamp string                    `json:"timestamp"`
	Version   string                    `json:"version"`
	Service   string                    `json:"service"`
	Checks    map[string]resultadoCheck `json:"checks,omitempty"`
}

// HealthLive — liveness probe. 200 mientras el proceso viva.
func (h *Portal) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthRespuesta{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "sirec-portal",
	})
}

// HealthReady — readiness probe. Reporta el estado de las dependencias
// monitoreadas por dephealth; si alguna crítica está caída el portal
// responde 503.
func (h *Portal) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := healthRespuesta{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   "sirec-portal",
		Checks:    map[string]resultadoCheck{},
	}

	if h.dephealth == nil {
		resp.Status = "fail"
		resp.Checks["api-reporteria"] = resultadoCheck{
			Status:  "fail",
			Message: "monitoreo de dependencias no inicializado",
		}
	} else {
		for nombre, sana := range h.dephealth.Health() {
			if sana {
				resp.Checks[nombre] = resultadoCheck{Status: "ok"}
				continue
			}
			resp.Status = "fail"
			resp.Checks[nombre] = resultadoCheck{
				Status:  "fail",
				Message: "la dependencia no responde",
			}
		}
	}

	status := http.StatusOK
	if resp.Status == "fail" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
