// dashboard.go — tablero de cumplimiento con alcance por rol.
//
// Administrador y auditor ven el panorama completo; el supervisor solo
// las instancias bajo su supervisión y el responsable las suyas. Los
// bloques del tablero se consultan en paralelo al backend.
package handlers

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
	"github.com/dcastellanosr/sirec-portal/internal/domain/roles"
	"github.com/dcastellanosr/sirec-portal/internal/service"
	uimiddleware "github.com/dcastellanosr/sirec-portal/internal/ui/middleware"
)

// mesesTendencia — ventana del gráfico de tendencia mensual.
const mesesTendencia = 6

// dashboardVista — view-model del tablero.
type dashboardVista struct {
	Rol            string                      `json:"rol"`
	Estadisticas   *model.Estadisticas         `json:"estadisticas"`
	ProximosVencer []model.ReporteProximo      `json:"proximosVencer"`
	Vencidos       []model.ReporteVencido      `json:"vencidos"`
	Resumen        service.ResumenCumplimiento `json:"resumen"`
	PorEntidad     []service.GrupoCumplimiento `json:"porEntidad"`
	PorResponsable []service.GrupoCumplimiento `json:"porResponsable"`
	Tendencia      []service.PuntoTendencia    `json:"tendencia"`
}

// Dashboard — GET /dashboard.
func (h *Portal) Dashboard(w http.ResponseWriter, r *http.Request) {
	ses := uimiddleware.SesionDeContexto(r.Context())

	var (
		estadisticas *model.Estadisticas
		proximos     *model.ProximosVencer
		vencidos     *model.Vencidos
		instancias   []model.InstanciaReporte
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		estadisticas, err = h.estadisticasPorRol(ctx, ses.Rol, ses.UsuarioID)
		return err
	})
	g.Go(func() error {
		var err error
		proximos, err = h.proximosPorRol(ctx, ses.Rol, ses.UsuarioID)
		return err
	})
	g.Go(func() error {
		var err error
		vencidos, err = h.vencidosPorRol(ctx, ses.Rol, ses.UsuarioID)
		return err
	})
	g.Go(func() error {
		var err error
		instancias, err = h.api.ListarInstancias(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.responderErrorBackend(w, r, err, "Error armando el tablero")
		return
	}

	if ses.Rol == roles.Supervisor {
		instancias = soloSupervisadas(instancias, ses.UsuarioID)
	}

	vista := dashboardVista{
		Rol:            ses.Rol,
		Estadisticas:   estadisticas,
		ProximosVencer: proximos.Reportes,
		Vencidos:       vencidos.Reportes,
		Resumen:        service.Resumir(instancias),
		PorEntidad:     service.CumplimientoPorEntidad(instancias),
		PorResponsable: service.CumplimientoPorResponsable(instancias),
		Tendencia:      service.TendenciaMensual(instancias, time.Now(), mesesTendencia),
	}
	writeJSON(w, http.StatusOK, vista)
}

// estadisticasPorRol consulta las cifras del tablero con el alcance del rol.
func (h *Portal) estadisticasPorRol(ctx context.Context, rol string, usuarioID int) (*model.Estadisticas, error) {
	switch rol {
	case roles.Supervisor:
		return h.api.DashboardSupervisor(ctx, usuarioID)
	case roles.Responsable:
		return h.api.DashboardResponsable(ctx, usuarioID)
	default:
		return h.api.Dashboard(ctx)
	}
}

func (h *Portal) proximosPorRol(ctx context.Context, rol string, usuarioID int) (*model.ProximosVencer, error) {
	switch rol {
	case roles.Supervisor:
		return h.api.ProximosVencerSupervisor(ctx, usuarioID, h.diasAlerta)
	case roles.Responsable:
		return h.api.ProximosVencerResponsable(ctx, usuarioID, h.diasAlerta)
	default:
		return h.api.ProximosVencer(ctx, h.diasAlerta)
	}
}

func (h *Portal) vencidosPorRol(ctx context.Context, rol string, usuarioID int) (*model.Vencidos, error) {
	if rol == roles.Supervisor {
		return h.api.VencidosSupervisor(ctx, usuarioID)
	}
	return h.api.VencidosStats(ctx)
}

// soloSupervisadas filtra las instancias asignadas al supervisor dado.
func soloSupervisadas(instancias []model.InstanciaReporte, supervisorID int) []model.InstanciaReporte {
	filtradas := make([]model.InstanciaReporte, 0, len(instancias))
	for _, inst := range instancias {
		if inst.ResponsableSupervisionID == supervisorID {
			filtradas = append(filtradas, inst)
		}
	}
	return filtradas
}
