package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// TestClient_Dashboard verifica Dashboard (GET /estadisticas/dashboard).
func TestClient_Dashboard(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/estadisticas/dashboard" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Estadisticas{
			TotalObligaciones:             20,
			TotalEnviadosATiempo:          12,
			TotalPendientes:               5,
			TotalVencidos:                 3,
			PorcentajeCumplimientoATiempo: 60,
		})
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	stats, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Error de Dashboard: %v", err)
	}
	if stats.TotalObligaciones != 20 {
		t.Errorf("se esperaba TotalObligaciones=20, se obtuvo %d", stats.TotalObligaciones)
	}
	if stats.PorcentajeCumplimientoATiempo != 60 {
		t.Errorf("se esperaba PorcentajeCumplimientoATiempo=60, se obtuvo %d", stats.PorcentajeCumplimientoATiempo)
	}
}

// TestClient_DashboardSupervisor_Directo verifica la variante por
// supervisor cuando el endpoint existe.
func TestClient_DashboardSupervisor_Directo(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/estadisticas/dashboard/supervisor/4" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Estadisticas{TotalObligaciones: 6})
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	stats, err := client.DashboardSupervisor(context.Background(), 4)
	if err != nil {
		t.Fatalf("Error de DashboardSupervisor: %v", err)
	}
	if stats.TotalObligaciones != 6 {
		t.Errorf("se esperaba TotalObligaciones=6, se obtuvo %d", stats.TotalObligaciones)
	}
}

// TestClient_DashboardSupervisor_Fallback verifica el fallback al
// endpoint general cuando la variante por rol responde 404.
func TestClient_DashboardSupervisor_Fallback(t *testing.T) {
	llamadas := []string{}

	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		llamadas = append(llamadas, r.URL.Path)
		switch r.URL.Path {
		case "/estadisticas/dashboard/supervisor/4":
			w.WriteHeader(http.StatusNotFound)
		case "/estadisticas/dashboard":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.Estadisticas{TotalObligaciones: 20})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	stats, err := client.DashboardSupervisor(context.Background(), 4)
	if err != nil {
		t.Fatalf("Error de DashboardSupervisor: %v", err)
	}
	if stats.TotalObligaciones != 20 {
		t.Errorf("se esperaba el dashboard general (TotalObligaciones=20), se obtuvo %d", stats.TotalObligaciones)
	}
	if len(llamadas) != 2 {
		t.Errorf("se esperaban 2 llamadas (variante y fallback), hubo %d: %v", len(llamadas), llamadas)
	}
}

// TestClient_DashboardSupervisor_ErrorSinFallback verifica que errores
// distintos de 404 no disparan el fallback.
func TestClient_DashboardSupervisor_ErrorSinFallback(t *testing.T) {
	llamadas := 0

	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	_, err := client.DashboardSupervisor(context.Background(), 4)
	if err == nil {
		t.Fatal("se esperaba un error, se obtuvo nil")
	}
	if CodigoHTTP(err) != http.StatusInternalServerError {
		t.Errorf("se esperaba 500, se obtuvo %d", CodigoHTTP(err))
	}
	if llamadas != 1 {
		t.Errorf("se esperaba una sola llamada, hubo %d", llamadas)
	}
}

// TestClient_ProximosVencerResponsable_Fallback verifica el fallback de
// próximos a vencer por responsable, preservando el parámetro dias.
func TestClient_ProximosVencerResponsable_Fallback(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/estadisticas/proximos-vencer/responsable/9":
			w.WriteHeader(http.StatusNotFound)
		case "/estadisticas/proximos-vencer":
			if r.URL.Query().Get("dias") != "7" {
				t.Errorf("se esperaba dias=7, se obtuvo %s", r.URL.Query().Get("dias"))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.ProximosVencer{
				Reportes: []model.ReporteProximo{{ID: 3}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	resp, err := client.ProximosVencerResponsable(context.Background(), 9, 7)
	if err != nil {
		t.Fatalf("Error de ProximosVencerResponsable: %v", err)
	}
	if len(resp.Reportes) != 1 || resp.Reportes[0].ID != 3 {
		t.Errorf("se esperaba un reporte con ID=3, se obtuvo %v", resp.Reportes)
	}
}

// TestClient_VencidosSupervisor_Fallback verifica el fallback de
// vencidos por supervisor.
func TestClient_VencidosSupervisor_Fallback(t *testing.T) {
	server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/estadisticas/vencidos/supervisor/2":
			w.WriteHeader(http.StatusNotFound)
		case "/estadisticas/vencidos":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(model.Vencidos{
				Reportes: []model.ReporteVencido{{ID: 8}, {ID: 11}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := New(server.URL, 5*time.Second, mockTokenProvider("t"), testLogger())

	resp, err := client.VencidosSupervisor(context.Background(), 2)
	if err != nil {
		t.Fatalf("Error de VencidosSupervisor: %v", err)
	}
	if len(resp.Reportes) != 2 {
		t.Errorf("se esperaban 2 reportes vencidos, se obtuvieron %d", len(resp.Reportes))
	}
}
