package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// Dashboard — GET /estadisticas/dashboard (alcance global, administrador).
func (c *Client) Dashboard(ctx context.Context) (*model.Estadisticas, error) {
	var stats model.Estadisticas
	if err := c.getJSON(ctx, "/estadisticas/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProximosVencer — GET /estadisticas/proximos-vencer?dias=N.
func (c *Client) ProximosVencer(ctx context.Context, dias int) (*model.ProximosVencer, error) {
	var resp model.ProximosVencer
	path := fmt.Sprintf("/estadisticas/proximos-vencer?dias=%d", dias)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VencidosStats — GET /estadisticas/vencidos.
func (c *Client) VencidosStats(ctx context.Context) (*model.Vencidos, error) {
	var resp model.Vencidos
	if err := c.getJSON(ctx, "/estadisticas/vencidos", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardSupervisor — GET /estadisticas/dashboard/supervisor/{id},
// con fallback al endpoint general cuando la variante por rol no existe
// en el backend desplegado (404).
func (c *Client) DashboardSupervisor(ctx context.Context, supervisorID int) (*model.Estadisticas, error) {
	var stats model.Estadisticas
	path := fmt.Sprintf("/estadisticas/dashboard/supervisor/%d", supervisorID)
	err := c.getJSON(ctx, path, &stats)
	if err == nil {
		return &stats, nil
	}
	if CodigoHTTP(err) != http.StatusNotFound {
		return nil, err
	}
	return c.Dashboard(ctx)
}

// ProximosVencerSupervisor — variante por supervisor con fallback 404.
func (c *Client) ProximosVencerSupervisor(ctx context.Context, supervisorID, dias int) (*model.ProximosVencer, error) {
	var resp model.ProximosVencer
	path := fmt.Sprintf("/estadisticas/proximos-vencer/supervisor/%d?dias=%d", supervisorID, dias)
	err := c.getJSON(ctx, path, &resp)
	if err == nil {
		return &resp, nil
	}
	if CodigoHTTP(err) != http.StatusNotFound {
		return nil, err
	}
	return c.ProximosVencer(ctx, dias)
}

// VencidosSupervisor — variante por supervisor con fallback 404.
func (c *Client) VencidosSupervisor(ctx context.Context, supervisorID int) (*model.Vencidos, error) {
	var resp model.Vencidos
	path := fmt.Sprintf("/estadisticas/vencidos/supervisor/%d", supervisorID)
	err := c.getJSON(ctx, path, &resp)
	if err == nil {
		return &resp, nil
	}
	if CodigoHTTP(err) != http.StatusNotFound {
		return nil, err
	}
	return c.VencidosStats(ctx)
}

// DashboardResponsable — GET /estadisticas/dashboard/responsable/{id},
// con fallback 404 al endpoint general.
func (c *Client) DashboardResponsable(ctx context.Context, responsableID int) (*model.Estadisticas, error) {
	var stats model.Estadisticas
	path := fmt.Sprintf("/estadisticas/dashboard/responsable/%d", responsableID)
	err := c.getJSON(ctx, path, &stats)
	if err == nil {
		return &stats, nil
	}
	if CodigoHTTP(err) != http.StatusNotFound {
		return nil, err
	}
	return c.Dashboard(ctx)
}

// ProximosVencerResponsable — variante por responsable con fallback 404.
func (c *Client) ProximosVencerResponsable(ctx context.Context, responsableID, dias int) (*model.ProximosVencer, error) {
	var resp model.ProximosVencer
	path := fmt.Sprintf("/estadisticas/proximos-vencer/responsable/%d?dias=%d", responsableID, dias)
	err := c.getJSON(ctx, path, &resp)
	if err == nil {
		return &resp, nil
	}
	if CodigoHTTP(err) != http.StatusNotFound {
		return nil, err
	}
	return c.ProximosVencer(ctx, dias)
}
