package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// ListarUsuarios — GET /usuarios.
func (c *Client) ListarUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	if err := c.getJSON(ctx, "/usuarios", &usuarios); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// ObtenerUsuario — GET /usuarios/{id}.
func (c *Client) ObtenerUsuario(ctx context.Context, id int) (*model.Usuario, error) {
	var u model.Usuario
	if err := c.getJSON(ctx, fmt.Sprintf("/usuarios/%d", id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CrearUsuario — POST /usuarios. Devuelve el registro creado con ID.
func (c *Client) CrearUsuario(ctx context.Context, req model.UsuarioRequest) (*model.Usuario, error) {
	var u model.Usuario
	if err := c.enviarJSON(ctx, http.MethodPost, "/usuarios", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ActualizarUsuario — PUT /usuarios/{id}.
func (c *Client) ActualizarUsuario(ctx context.Context, id int, req model.UsuarioRequest) (*model.Usuario, error) {
	var u model.Usuario
	if err := c.enviarJSON(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EliminarUsuario — DELETE /usuarios/{id}.
func (c *Client) EliminarUsuario(ctx context.Context, id int) error {
	return c.hacer(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, "", nil)
}

// ListarRoles — GET /roles. Catálogo de referencia para el formulario de
// usuarios.
func (c *Client) ListarRoles(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	if err := c.getJSON(ctx, "/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ObtenerRol — GET /roles/{id}.
func (c *Client) ObtenerRol(ctx context.Context, id int) (*model.Rol, error) {
	var r model.Rol
	if err := c.getJSON(ctx, fmt.Sprintf("/roles/%d", id), &r); err != nil {
		return nil, err
	}
	return &r, nil
}
