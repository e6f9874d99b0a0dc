package model

// Alerta — notificación generada por el backend para una instancia de
// reporte. El portal solo la lee y la marca como leída.
type Alerta struct {
	ID               int    `json:"id"`
	InstanciaID      *int   `json:"instanciaId"`
	ReporteNombre    string `json:"reporteNombre,omitempty"`
	PeriodoReportado string `json:"periodoReportado,omitempty"`
	TipoAlertaID     *int   `json:"tipoAlertaId"`
	TipoAlertaNombre string `json:"tipoAlertaNombre,omitempty"`
	TipoAlertaColor  string `json:"tipoAlertaColor,omitempty"`
	UsuarioDestinoID *int   `json:"usuarioDestinoId"`
	UsuarioDestino   string `json:"usuarioDestinoNombre,omitempty"`
	FechaProgramada  string `json:"fechaProgramada"`
	FechaEnviada     string `json:"fechaEnviada,omitempty"`
	Enviada          bool   `json:"enviada"`
	Mensaje          string `json:"mensaje,omitempty"`
	Leida            bool   `json:"leida"`
}

// ContadorAlertas — respuesta del contador de alertas no leídas.
type ContadorAlertas struct {
	NoLeidas int `json:"noLeidas"`
}

// ResultadoMarcarTodas — respuesta al marcar todas las alertas como leídas.
type ResultadoMarcarTodas struct {
	Mensaje  string `json:"mensaje"`
	Cantidad int    `json:"cantidad"`
}
