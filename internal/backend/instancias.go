package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// ListarInstancias — GET /instancias.
func (c *Client) ListarInstancias(ctx context.Context) ([]model.InstanciaReporte, error) {
	var instancias []model.InstanciaReporte
	if err := c.getJSON(ctx, "/instancias", &instancias); err != nil {
		return nil, err
	}
	return instancias, nil
}

// ListarPendientes — GET /instancias/pendientes.
func (c *Client) ListarPendientes(ctx context.Context) ([]model.InstanciaReporte, error) {
	var instancias []model.InstanciaReporte
	if err := c.getJSON(ctx, "/instancias/pendientes", &instancias); err != nil {
		return nil, err
	}
	return instancias, nil
}

// ListarVencidos — GET /instancias/vencidos.
func (c *Client) ListarVencidos(ctx context.Context) ([]model.InstanciaReporte, error) {
	var instancias []model.InstanciaReporte
	if err := c.getJSON(ctx, "/instancias/vencidos", &instancias); err != nil {
		return nil, err
	}
	return instancias, nil
}

// ListarHistorico — GET /instancias/historico?entidadId&year&mes.
// Filtros en cero se omiten del query string.
func (c *Client) ListarHistorico(ctx context.Context, filtros model.FiltrosHistorico) ([]model.InstanciaReporte, error) {
	params := url.Values{}
	if filtros.EntidadID != 0 {
		params.Set("entidadId", strconv.Itoa(filtros.EntidadID))
	}
	if filtros.Year != 0 {
		params.Set("year", strconv.Itoa(filtros.Year))
	}
	if filtros.Mes != 0 {
		params.Set("mes", strconv.Itoa(filtros.Mes))
	}

	path := "/instancias/historico"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var instancias []model.InstanciaReporte
	if err := c.getJSON(ctx, path, &instancias); err != nil {
		return nil, err
	}
	return instancias, nil
}

// EnvioReporte — datos de un envío con archivo adjunto.
type EnvioReporte struct {
	NombreArchivo string
	Archivo       io.Reader
	Observaciones string
	LinkEvidencia string
}

// EnviarReporte — POST /instancias/{id}/enviar (multipart).
// Transiciona la instancia a enviada subiendo el archivo del reporte.
func (c *Client) EnviarReporte(ctx context.Context, instanciaID int, envio EnvioReporte) (*model.InstanciaReporte, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		parte, err := form.CreateFormFile("archivo", envio.NombreArchivo)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(parte, envio.Archivo); err != nil {
			pw.CloseWithError(err)
			return
		}
		if envio.Observaciones != "" {
			if err := form.WriteField("observaciones", envio.Observaciones); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		if envio.LinkEvidencia != "" {
			if err := form.WriteField("linkEvidenciaEnvio", envio.LinkEvidencia); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(form.Close())
	}()

	var instancia model.InstanciaReporte
	err := c.hacer(ctx, http.MethodPost,
		fmt.Sprintf("/instancias/%d/enviar", instanciaID),
		pr, form.FormDataContentType(), &instancia)
	if err != nil {
		return nil, err
	}
	return &instancia, nil
}

// EnviarReporteConLink — POST /instancias/{id}/enviar-link.
// Variante de envío referenciando el reporte por URL; los parámetros van
// en el query string tal como los espera el backend.
func (c *Client) EnviarReporteConLink(ctx context.Context, instanciaID int, linkReporte, observaciones, linkEvidencia string) (*model.InstanciaReporte, error) {
	params := url.Values{}
	params.Set("linkReporteFinal", linkReporte)
	if observaciones != "" {
		params.Set("observaciones", observaciones)
	}
	if linkEvidencia != "" {
		params.Set("linkEvidenciaEnvio", linkEvidencia)
	}

	var instancia model.InstanciaReporte
	err := c.hacer(ctx, http.MethodPost,
		fmt.Sprintf("/instancias/%d/enviar-link?%s", instanciaID, params.Encode()),
		nil, "", &instancia)
	if err != nil {
		return nil, err
	}
	return &instancia, nil
}

// observacionSupervisor — cuerpo de las decisiones del supervisor.
type observacionSupervisor struct {
	Observacion string `json:"observacionSupervisor,omitempty"`
}

// AprobarInstancia — PATCH /instancias/{id}/aprobar.
func (c *Client) AprobarInstancia(ctx context.Context, instanciaID int, observacion string) (*model.InstanciaReporte, error) {
	var instancia model.InstanciaReporte
	err := c.enviarJSON(ctx, http.MethodPatch,
		fmt.Sprintf("/instancias/%d/aprobar", instanciaID),
		observacionSupervisor{Observacion: observacion}, &instancia)
	if err != nil {
		return nil, err
	}
	return &instancia, nil
}

// RechazarInstancia — PATCH /instancias/{id}/rechazar.
// Devuelve la instancia para corrección; la observación es obligatoria
// para el rechazo (validado en el handler).
func (c *Client) RechazarInstancia(ctx context.Context, instanciaID int, observacion string) (*model.InstanciaReporte, error) {
	var instancia model.InstanciaReporte
	err := c.enviarJSON(ctx, http.MethodPatch,
		fmt.Sprintf("/instancias/%d/rechazar", instanciaID),
		observacionSupervisor{Observacion: observacion}, &instancia)
	if err != nil {
		return nil, err
	}
	return &instancia, nil
}
