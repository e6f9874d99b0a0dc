// instancias.go — gestión de instancias de reporte: listados de trabajo
// y envío del reporte (con archivo adjunto o referenciado por link).
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/dcastellanosr/sirec-portal/internal/api/errors"
	"github.com/dcastellanosr/sirec-portal/internal/backend"
)

// maxTamanoArchivo — límite del archivo de reporte adjunto (20 MB).
const maxTamanoArchivo = 20 << 20

// ListarInstancias — GET /instancias. Todas las instancias programadas.
func (h *Portal) ListarInstancias(w http.ResponseWriter, r *http.Request) {
	instancias, err := h.api.ListarInstancias(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando instancias")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, instancias))
}

// ListarPendientes — GET /instancias/pendientes. Instancias sin enviar
// con ventana de envío abierta; la bandeja de trabajo del responsable.
func (h *Portal) ListarPendientes(w http.ResponseWriter, r *http.Request) {
	instancias, err := h.api.ListarPendientes(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando pendientes")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, instancias))
}

// ListarVencidos — GET /instancias/vencidos.
func (h *Portal) ListarVencidos(w http.ResponseWriter, r *http.Request) {
	instancias, err := h.api.ListarVencidos(r.Context())
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error listando vencidos")
		return
	}
	writeJSON(w, http.StatusOK, paginar(r, instancias))
}

// EnviarReporte — POST /instancias/{id}/enviar.
// Recibe el archivo del reporte como multipart (campo archivo) junto
// con observaciones y link de evidencia opcionales, y lo reenvía al
// backend en streaming.
func (h *Portal) EnviarReporte(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de instancia inválido.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxTamanoArchivo)
	if err := r.ParseMultipartForm(maxTamanoArchivo); err != nil {
		apierrors.ValidationError(w, "El formulario de envío es inválido o el archivo supera el límite de 20 MB.")
		return
	}

	archivo, encabezado, err := r.FormFile("archivo")
	if err != nil {
		apierrors.ValidationError(w, "El archivo del reporte es obligatorio.")
		return
	}
	defer archivo.Close()

	instancia, err := h.api.EnviarReporte(r.Context(), id, backend.EnvioReporte{
		NombreArchivo: encabezado.Filename,
		Archivo:       archivo,
		Observaciones: strings.TrimSpace(r.FormValue("observaciones")),
		LinkEvidencia: strings.TrimSpace(r.FormValue("linkEvidenciaEnvio")),
	})
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error enviando reporte")
		return
	}
	writeJSON(w, http.StatusOK, instancia)
}

// envioConLink — cuerpo de POST /instancias/{id}/enviar-link.
type envioConLink struct {
	LinkReporteFinal   string `json:"linkReporteFinal"`
	Observaciones      string `json:"observaciones,omitempty"`
	LinkEvidenciaEnvio string `json:"linkEvidenciaEnvio,omitempty"`
}

// EnviarReporteConLink — POST /instancias/{id}/enviar-link.
// Variante de envío que referencia el reporte por URL en lugar de
// adjuntar el archivo.
func (h *Portal) EnviarReporteConLink(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r)
	if !ok {
		apierrors.ValidationError(w, "Identificador de instancia inválido.")
		return
	}

	var envio envioConLink
	if err := json.NewDecoder(r.Body).Decode(&envio); err != nil {
		apierrors.ValidationError(w, "Cuerpo JSON inválido: "+err.Error())
		return
	}

	envio.LinkReporteFinal = strings.TrimSpace(envio.LinkReporteFinal)
	if !esURLValida(envio.LinkReporteFinal) {
		apierrors.ValidationError(w, "El link del reporte es obligatorio y debe ser una URL http o https.")
		return
	}

	instancia, err := h.api.EnviarReporteConLink(r.Context(), id,
		envio.LinkReporteFinal,
		strings.TrimSpace(envio.Observaciones),
		strings.TrimSpace(envio.LinkEvidenciaEnvio))
	if err != nil {
		h.responderErrorBackend(w, r, err, "Error enviando reporte por link")
		return
	}
	writeJSON(w, http.StatusOK, instancia)
}

// esURLValida acepta solo URLs absolutas http o https.
func esURLValida(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
