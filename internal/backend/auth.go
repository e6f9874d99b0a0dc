package backend

import (
	"context"
	"net/http"
)

// CredencialesLogin — cuerpo de POST /auth/login.
type CredencialesLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RespuestaLogin — respuesta exitosa del login: token opaco más los
// datos mínimos del usuario. El rol llega con la etiqueta cruda del
// backend; normalizarlo es responsabilidad del portal.
type RespuestaLogin struct {
	Token     string `json:"token"`
	Rol       string `json:"rol"`
	Nombre    string `json:"nombre"`
	UsuarioID int    `json:"usuarioId"`
}

// IniciarSesion envía las credenciales al backend.
// POST /auth/login — no lleva Authorization.
func (c *Client) IniciarSesion(ctx context.Context, cred CredencialesLogin) (*RespuestaLogin, error) {
	var resp RespuestaLogin
	err := c.enviarJSON(ctx, http.MethodPost, "/auth/login", cred, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
