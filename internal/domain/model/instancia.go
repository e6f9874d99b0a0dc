package model

// InstanciaReporte — una ocurrencia programada de una obligación de
// reporte recurrente. El ciclo de vida (pendiente → enviado/vencido,
// enviado → aprobado/devuelto) lo administra el backend; el portal solo
// lee y dispara transiciones remotas.
type InstanciaReporte struct {
	ID               int    `json:"id"`
	ReporteID        string `json:"reporteId"`
	ReporteNombre    string `json:"reporteNombre"`
	EntidadNombre    string `json:"entidadNombre"`
	PeriodoReportado string `json:"periodoReportado"`
	// FechaVencimientoCalculada en formato YYYY-MM-DD o RFC3339 según el
	// endpoint; normalizar con fechas.ParseFecha antes de aritmética.
	FechaVencimientoCalculada string `json:"fechaVencimientoCalculada"`
	FechaEnvioReal            string `json:"fechaEnvioReal,omitempty"`
	Estado                    string `json:"estado"`
	Prioridad                 string `json:"prioridad,omitempty"`
	DiasHastaVencimiento      int    `json:"diasHastaVencimiento"`
	// DiasDesviacion: nil mientras no se haya enviado; <=0 envío a tiempo,
	// >0 días de retraso.
	DiasDesviacion           *int   `json:"diasDesviacion"`
	Enviado                  bool   `json:"enviado"`
	Vencido                  bool   `json:"vencido"`
	ResponsableElaboracion   string `json:"responsableElaboracion"`
	ResponsableSupervision   string `json:"responsableSupervision"`
	ResponsableSupervisionID int    `json:"responsableSupervisionId,omitempty"`
	Frecuencia               string `json:"frecuencia,omitempty"`
	FormatoRequerido         string `json:"formatoRequerido,omitempty"`
	BaseLegal                string `json:"baseLegal,omitempty"`
	// EstadoRevision: PENDIENTE_REVISION, APROBADO o RECHAZADO una vez
	// enviada la instancia a supervisión.
	EstadoRevision        string `json:"estadoRevision,omitempty"`
	ObservacionSupervisor string `json:"observacionSupervisor,omitempty"`
	LinkReporteFinal      string `json:"linkReporteFinal,omitempty"`
	LinkEvidenciaEnvio    string `json:"linkEvidenciaEnvio,omitempty"`
	NombreArchivo         string `json:"nombreArchivo,omitempty"`
	Observaciones         string `json:"observaciones,omitempty"`
	EnviadoPorNombre      string `json:"enviadoPorNombre,omitempty"`
}

// EnviadoATiempo indica si la instancia fue enviada en o antes de la
// fecha de vencimiento (desviación ausente o no positiva).
func (i *InstanciaReporte) EnviadoATiempo() bool {
	return i.Enviado && (i.DiasDesviacion == nil || *i.DiasDesviacion <= 0)
}

// EnviadoTarde indica si la instancia fue enviada después del vencimiento.
func (i *InstanciaReporte) EnviadoTarde() bool {
	return i.Enviado && i.DiasDesviacion != nil && *i.DiasDesviacion > 0
}

// VencidoSinEnviar indica si la instancia venció sin envío.
func (i *InstanciaReporte) VencidoSinEnviar() bool {
	return i.Vencido && !i.Enviado
}

// FiltrosHistorico — filtros del listado histórico de instancias.
// Campos en cero se omiten del query string.
type FiltrosHistorico struct {
	EntidadID int `json:"entidadId"`
	Year      int `json:"year"`
	Mes       int `json:"mes"`
}
