package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
)

func TestContadorAlertas_SegundaLecturaDelCache(t *testing.T) {
	var llamadas atomic.Int32
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alertas/mis-alertas/contador" {
			t.Errorf("ruta inesperada: %s", r.URL.Path)
		}
		llamadas.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"noLeidas":3}`))
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ContadorAlertas(rec, requestAutenticado(http.MethodGet, "/alertas/contador", roles.Responsable))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp map[string]int
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("respuesta ilegible: %v", err)
		}
		if resp["noLeidas"] != 3 {
			t.Errorf("noLeidas = %d, se espera 3", resp["noLeidas"])
		}
	}

	if n := llamadas.Load(); n != 1 {
		t.Errorf("el backend recibió %d consultas, se espera 1 (la segunda sale del caché)", n)
	}
}

func TestMarcarAlertaLeida(t *testing.T) {
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/alertas/9/marcar-leida":
			if r.Method != http.MethodPatch {
				t.Errorf("método = %s", r.Method)
			}
			_, _ = w.Write([]byte(`{"id":9,"leida":true}`))
		case "/alertas/mis-alertas/contador":
			_, _ = w.Write([]byte(`{"noLeidas":0}`))
		default:
			t.Errorf("ruta inesperada: %s", r.URL.Path)
		}
	})

	req := conRutaID(requestAutenticado(http.MethodPatch, "/alertas/9/marcar-leida", roles.Responsable), "9")
	rec := httptest.NewRecorder()
	h.MarcarAlertaLeida(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, se espera 204", rec.Code)
	}
}

func TestMisAlertas_SoloNoLeidas(t *testing.T) {
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alertas/mis-alertas/no-leidas" {
			t.Errorf("ruta inesperada: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"leida":false,"fechaProgramada":"2025-03-01"}]`))
	})

	rec := httptest.NewRecorder()
	h.MisAlertas(rec, requestAutenticado(http.MethodGet, "/alertas?soloNoLeidas=true", roles.Responsable))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
