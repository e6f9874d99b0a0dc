// historico.go — consulta histórica de instancias con filtros por
// entidad, año y mes.
package handlers

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// historicoVista — instancias filtradas más el catálogo de entidades
// activas para poblar el selector de filtros.
type historicoVista struct {
	Instancias paginaRespuesta        `json:"instancias"`
	Entidades  []model.Entidad        `json:"entidades"`
	Filtros    model.FiltrosHistorico `json:"filtros"`
}

// Historico — GET /historico?entidadId&year&mes.
// Filtros ausentes o en cero no restringen.
func (h *Portal) Historico(w http.ResponseWriter, r *http.Request) {
	filtros, ok := filtrosDeQuery(r)
	if !ok {
		apierrors.ValidationError(w, "Los filtros entidadId, year y mes deben ser numéricos (mes entre 1 y 12).")
		return
	}

	var (
		instancias []model.InstanciaReporte
		entidades  []model.Entidad
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		instancias, err = h.api.ListarHistorico(ctx, filtros)
		return err
	})
	g.Go(func() error {
		var err error
		entidades, err = h.catalogos.EntidadesActivas(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.responderErrorBackend(w, r, err, "Error consultando histórico")
		return
	}

	writeJSON(w, http.StatusOK, historicoVista{
		Instancias: paginar(r, instancias),
		Entidades:  entidades,
		Filtros:    filtros,
	})
}

// filtrosDeQuery parsea los filtros del query string.
func filtrosDeQuery(r *http.Request) (model.FiltrosHistorico, bool) {
	var filtros model.FiltrosHistorico
	q := r.URL.Query()

	for _, campo := range []struct {
		nombre  string
		destino *int
	}{
		{"entidadId", &filtros.EntidadID},
		{"year", &filtros.Year},
		{"mes", &filtros.Mes},
	} {
		valor := q.Get(campo.nombre)
		if valor == "" {
			continue
		}
		n, err := strconv.Atoi(valor)
		if err != nil || n < 0 {
			return filtros, false
		}
		*campo.destino = n
	}

	if filtros.Mes > 12 {
		return filtros, false
	}
	return filtros, true
}
