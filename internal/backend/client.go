// Paquete backend — cliente HTTP tipado hacia el API de reportería.
// Un método por operación remota; cada método mapea una operación de
// dominio a una llamada HTTP con forma de respuesta tipada. El API es la
// única frontera externa del portal y la fuente autoritativa de todos
// los datos.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenProvider — función que devuelve el bearer token de la sesión
// actual para autorizar requests. Puede devolver cadena vacía para
// operaciones sin sesión (login).
type TokenProvider func(ctx context.Context) (string, error)

// ErrNoAlcanzable — el backend no respondió (fallo de red, timeout).
// Se distingue de una respuesta HTTP de error para que la capa de
// autenticación muestre el mensaje correcto.
var ErrNoAlcanzable = errors.New("backend no alcanzable")

// ErrorHTTP — el backend respondió con un estado de error.
type ErrorHTTP struct {
	// Status — código HTTP devuelto.
	Status int
	// Mensaje — mensaje del cuerpo de error del backend, si lo hubo.
	Mensaje string
}

func (e *ErrorHTTP) Error() string {
	if e.Mensaje != "" {
		return fmt.Sprintf("backend respondió %d: %s", e.Status, e.Mensaje)
	}
	return fmt.Sprintf("backend respondió %d", e.Status)
}

// CodigoHTTP devuelve el código de estado si err es un *ErrorHTTP, o 0.
func CodigoHTTP(err error) int {
	var eh *ErrorHTTP
	if errors.As(err, &eh) {
		return eh.Status
	}
	return 0
}

// MensajeBackend devuelve el mensaje del backend si err es un *ErrorHTTP.
func MensajeBackend(err error) string {
	var eh *ErrorHTTP
	if errors.As(err, &eh) {
		return eh.Mensaje
	}
	return ""
}

// cuerpoError — forma flexible del cuerpo de error del backend.
type cuerpoError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client — cliente HTTP hacia el API de reportería.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	tokenProvider TokenProvider
	logger        *slog.Logger
}

// New crea el cliente del API.
// baseURL — URL base del backend (se normaliza el trailing slash).
// tokenProvider puede ser nil: ningún request llevará Authorization.
func New(baseURL string, timeout time.Duration, tokenProvider TokenProvider, logger *slog.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       normalizarURL(baseURL),
		tokenProvider: tokenProvider,
		logger:        logger.With(slog.String("component", "backend_client")),
	}
}

// BaseURL devuelve la URL base normalizada (para health checks).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// normalizarURL quita el trailing slash de la URL.
func normalizarURL(rawURL string) string {
	return strings.TrimRight(rawURL, "/")
}

// getJSON ejecuta GET path y decodifica la respuesta en out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.hacer(ctx, http.MethodGet, path, nil, "", out)
}

// enviarJSON ejecuta method path con body JSON y decodifica en out (out
// puede ser nil cuando la respuesta no interesa).
func (c *Client) enviarJSON(ctx context.Context, method, path string, body, out any) error {
	var lector io.Reader
	if body != nil {
		datos, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializando cuerpo de %s %s: %w", method, path, err)
		}
		lector = bytes.NewReader(datos)
	}
	return c.hacer(ctx, method, path, lector, "application/json", out)
}

// hacer arma el request, agrega autorización y clasifica la respuesta.
// Fallos de transporte se envuelven en ErrNoAlcanzable; estados >= 400
// producen *ErrorHTTP con el mensaje del backend cuando está disponible.
func (c *Client) hacer(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creando request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokenProvider != nil {
		token, err := c.tokenProvider(ctx)
		if err != nil {
			return fmt.Errorf("obteniendo token de sesión: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNoAlcanzable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorDeRespuesta(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificando respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// errorDeRespuesta construye el *ErrorHTTP leyendo el cuerpo de error.
func (c *Client) errorDeRespuesta(resp *http.Response) error {
	cuerpo, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var ce cuerpoError
	mensaje := ""
	if err := json.Unmarshal(cuerpo, &ce); err == nil {
		if ce.Message != "" {
			mensaje = ce.Message
		} else if ce.Error != "" {
			mensaje = ce.Error
		}
	}

	c.logger.Debug("respuesta de error del backend",
		slog.Int("status", resp.StatusCode),
		slog.String("mensaje", mensaje),
	)

	return &ErrorHTTP{Status: resp.StatusCode, Mensaje: mensaje}
}
