package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// MisAlertas — GET /alertas/mis-alertas (alcance según rol del token).
func (c *Client) MisAlertas(ctx context.Context) ([]model.Alerta, error) {
	var alertas []model.Alerta
	if err := c.getJSON(ctx, "/alertas/mis-alertas", &alertas); err != nil {
		return nil, err
	}
	return alertas, nil
}

// MisAlertasNoLeidas — GET /alertas/mis-alertas/no-leidas.
func (c *Client) MisAlertasNoLeidas(ctx context.Context) ([]model.Alerta, error) {
	var alertas []model.Alerta
	if err := c.getJSON(ctx, "/alertas/mis-alertas/no-leidas", &alertas); err != nil {
		return nil, err
	}
	return alertas, nil
}

// ContarNoLeidas — GET /alertas/mis-alertas/contador.
func (c *Client) ContarNoLeidas(ctx context.Context) (int, error) {
	var contador model.ContadorAlertas
	if err := c.getJSON(ctx, "/alertas/mis-alertas/contador", &contador); err != nil {
		return 0, err
	}
	return contador.NoLeidas, nil
}

// MarcarLeida — PATCH /alertas/{id}/marcar-leida.
func (c *Client) MarcarLeida(ctx context.Context, alertaID int) (*model.Alerta, error) {
	var alerta model.Alerta
	err := c.enviarJSON(ctx, http.MethodPatch,
		fmt.Sprintf("/alertas/%d/marcar-leida", alertaID), nil, &alerta)
	if err != nil {
		return nil, err
	}
	return &alerta, nil
}

// MarcarTodasLeidas — PATCH /alertas/mis-alertas/marcar-todas-leidas.
func (c *Client) MarcarTodasLeidas(ctx context.Context) (*model.ResultadoMarcarTodas, error) {
	var resultado model.ResultadoMarcarTodas
	err := c.enviarJSON(ctx, http.MethodPatch,
		"/alertas/mis-alertas/marcar-todas-leidas", nil, &resultado)
	if err != nil {
		return nil, err
	}
	return &resultado, nil
}

// TodasLasAlertas — GET /alertas/todas (solo administrador).
func (c *Client) TodasLasAlertas(ctx context.Context) ([]model.Alerta, error) {
	var alertas []model.Alerta
	if err := c.getJSON(ctx, "/alertas/todas", &alertas); err != nil {
		return nil, err
	}
	return alertas, nil
}

// TodasLasAlertasNoLeidas — GET /alertas/todas/no-leidas (solo administrador).
func (c *Client) TodasLasAlertasNoLeidas(ctx context.Context) ([]model.Alerta, error) {
	var alertas []model.Alerta
	if err := c.getJSON(ctx, "/alertas/todas/no-leidas", &alertas); err != nil {
		return nil, err
	}
	return alertas, nil
}
