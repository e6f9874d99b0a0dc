// Paquete handlers — handlers HTTP del portal.
// handler.go — agrupa los servicios y las funciones compartidas de
// respuesta. Los handlers entregan view-models JSON que la interfaz
// del navegador renderiza tal cual.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/pagination"
	"github.com/dcastellanosr/sirec-portal/internal/service"
)

// Portal — handlers del portal autenticado.
type Portal struct {
	api       *backend.Client
	auth      *service.AuthService
	alertas   *service.AlertasService
	catalogos *service.CatalogosService
	dephealth *service.DephealthService
	// diasAlerta — ventana en días del panel de próximos a vencer.
	diasAlerta int
	logger     *slog.Logger
}

// NewPortal crea el conjunto de handlers del portal.
func NewPortal(
	api *backend.Client,
	auth *service.AuthService,
	alertas *service.AlertasService,
	catalogos *service.CatalogosService,
	dephealth *service.DephealthService,
	diasAlerta int,
	logger *slog.Logger,
) *Portal {
	return &Portal{
		api:        api,
		auth:       auth,
		alertas:    alertas,
		catalogos:  catalogos,
		dephealth:  dephealth,
		diasAlerta: diasAlerta,
		logger:     logger.With(slog.String("component", "portal")),
	}
}

// writeJSON escribe la respuesta JSON con el status dado.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// idDeRuta extrae el parámetro {id} de la ruta chi.
func idDeRuta(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// paginaDeQuery lee pagina y porPagina del query string con defaults.
func paginaDeQuery(r *http.Request) (int, int) {
	pagina, _ := strconv.Atoi(r.URL.Query().Get("pagina"))
	if pagina < 1 {
		pagina = 1
	}
	porPagina, _ := strconv.Atoi(r.URL.Query().Get("porPagina"))
	if porPagina < 1 {
		porPagina = pagination.ElementosPorDefecto
	}
	return pagina, porPagina
}

// paginaRespuesta — envoltorio estándar de los listados paginados.
type paginaRespuesta struct {
	Elementos       any               `json:"elementos"`
	Pagina          pagination.Pagina `json:"pagina"`
	PaginasVisibles []int             `json:"paginasVisibles"`
}

// paginar aplica la paginación del query y arma la respuesta.
func paginar[T any](r *http.Request, elementos []T) paginaRespuesta {
	numero, porPagina := paginaDeQuery(r)
	lista, pagina := pagination.Paginar(elementos, numero, porPagina)
	return paginaRespuesta{
		Elementos:       lista,
		Pagina:          pagina,
		PaginasVisibles: pagination.PaginasVisibles(pagina.Actual, pagina.TotalPaginas),
	}
}

// responderErrorBackend traduce un fallo del cliente del backend a la
// respuesta de error del portal conservando el código HTTP relevante.
func (h *Portal) responderErrorBackend(w http.ResponseWriter, r *http.Request, err error, contexto string) {
	h.logger.Error(contexto,
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)

	switch codigo := backend.CodigoHTTP(err); codigo {
	case 0:
		apierrors.APIUnavailable(w, "No se puede conectar con el servidor de reportería.")
	case http.StatusUnauthorized:
		apierrors.Unauthorized(w, "La sesión ya no es válida. Inicie sesión nuevamente.")
	case http.StatusForbidden:
		apierrors.Forbidden(w, "No tiene permisos para esta operación.")
	case http.StatusNotFound:
		apierrors.NotFound(w, mensajeObien(err, "Recurso no encontrado."))
	case http.StatusConflict:
		apierrors.Conflict(w, mensajeObien(err, "La operación entra en conflicto con el estado actual."))
	case http.StatusBadRequest:
		apierrors.ValidationError(w, mensajeObien(err, "Solicitud inválida."))
	default:
		apierrors.InternalError(w, "Error consultando el servidor de reportería.")
	}
}

// mensajeObien devuelve el mensaje del backend o un texto por defecto.
func mensajeObien(err error, porDefecto string) string {
	if msg := backend.MensajeBackend(err); msg != "" {
		return msg
	}
	return porDefecto
}
