package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
)

// conRutaID inyecta el parámetro {id} de chi en el request.
func conRutaID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRechazarInstancia_SinObservacion(t *testing.T) {
	llamadas := 0
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		llamadas++
	})

	req := requestAutenticado(http.MethodPatch, "/instancias/15/rechazar", roles.Supervisor)
	req.Body = io.NopCloser(strings.NewReader(`{"observacion":"   "}`))
	req.ContentLength = int64(len(`{"observacion":"   "}`))
	req = conRutaID(req, "15")

	rec := httptest.NewRecorder()
	h.RechazarInstancia(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, se espera 400", rec.Code)
	}
	if llamadas != 0 {
		t.Error("el backend no debe recibir un rechazo sin observación")
	}
}

func TestRechazarInstancia_ConObservacion(t *testing.T) {
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/instancias/15/rechazar" {
			t.Errorf("ruta inesperada: %s %s", r.Method, r.URL.Path)
		}
		var cuerpo map[string]string
		_ = json.NewDecoder(r.Body).Decode(&cuerpo)
		if cuerpo["observacionSupervisor"] != "Falta el anexo 3" {
			t.Errorf("observacionSupervisor = %q", cuerpo["observacionSupervisor"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":15,"estadoRevision":"RECHAZADO"}`))
	})

	cuerpo := `{"observacion":"Falta el anexo 3"}`
	req := requestAutenticado(http.MethodPatch, "/instancias/15/rechazar", roles.Supervisor)
	req.Body = io.NopCloser(strings.NewReader(cuerpo))
	req.ContentLength = int64(len(cuerpo))
	req = conRutaID(req, "15")

	rec := httptest.NewRecorder()
	h.RechazarInstancia(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, cuerpo: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "RECHAZADO") {
		t.Errorf("respuesta sin estado de revisión: %s", rec.Body.String())
	}
}

func TestAprobarInstancia_SinCuerpo(t *testing.T) {
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instancias/8/aprobar" {
			t.Errorf("ruta inesperada: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":8,"estadoRevision":"APROBADO"}`))
	})

	req := requestAutenticado(http.MethodPatch, "/instancias/8/aprobar", roles.Supervisor)
	req = conRutaID(req, "8")

	rec := httptest.NewRecorder()
	h.AprobarInstancia(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, cuerpo: %s", rec.Code, rec.Body.String())
	}
}

func TestListarEnRevision_FiltraPorSupervisor(t *testing.T) {
	h := setupPortal(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"enviado":true,"estadoRevision":"PENDIENTE_REVISION","responsableSupervisionId":42},
			{"id":2,"enviado":true,"estadoRevision":"APROBADO","responsableSupervisionId":42},
			{"id":3,"enviado":false,"responsableSupervisionId":42},
			{"id":4,"enviado":true,"estadoRevision":"PENDIENTE_REVISION","responsableSupervisionId":99}
		]`))
	})

	rec := httptest.NewRecorder()
	h.ListarEnRevision(rec, requestAutenticado(http.MethodGet, "/supervision", roles.Supervisor))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Elementos []struct {
			ID int `json:"id"`
		} `json:"elementos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta ilegible: %v", err)
	}
	if len(resp.Elementos) != 1 || resp.Elementos[0].ID != 1 {
		t.Errorf("elementos = %+v, se espera solo la instancia 1", resp.Elementos)
	}
}
