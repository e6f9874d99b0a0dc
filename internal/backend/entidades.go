package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// ListarEntidades — GET /entidades.
func (c *Client) ListarEntidades(ctx context.Context) ([]model.Entidad, error) {
	var entidades []model.Entidad
	if err := c.getJSON(ctx, "/entidades", &entidades); err != nil {
		return nil, err
	}
	return entidades, nil
}

// ObtenerEntidad — GET /entidades/{id}.
func (c *Client) ObtenerEntidad(ctx context.Context, id int) (*model.Entidad, error) {
	var e model.Entidad
	if err := c.getJSON(ctx, fmt.Sprintf("/entidades/%d", id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CrearEntidad — POST /entidades.
func (c *Client) CrearEntidad(ctx context.Context, e model.Entidad) (*model.Entidad, error) {
	var creada model.Entidad
	if err := c.enviarJSON(ctx, http.MethodPost, "/entidades", e, &creada); err != nil {
		return nil, err
	}
	return &creada, nil
}

// ActualizarEntidad — PUT /entidades/{id}.
func (c *Client) ActualizarEntidad(ctx context.Context, id int, e model.Entidad) (*model.Entidad, error) {
	var actualizada model.Entidad
	if err := c.enviarJSON(ctx, http.MethodPut, fmt.Sprintf("/entidades/%d", id), e, &actualizada); err != nil {
		return nil, err
	}
	return &actualizada, nil
}

// EliminarEntidad — DELETE /entidades/{id}.
func (c *Client) EliminarEntidad(ctx context.Context, id int) error {
	return c.hacer(ctx, http.MethodDelete, fmt.Sprintf("/entidades/%d", id), nil, "", nil)
}
