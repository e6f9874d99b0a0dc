package model

// Estadisticas — métricas agregadas del dashboard, pre-calculadas por el
// backend (GET /estadisticas/dashboard y variantes por rol).
type Estadisticas struct {
	TotalObligaciones              int    `json:"totalObligaciones"`
	TotalEnviadosATiempo           int    `json:"totalEnviadosATiempo"`
	TotalVencidos                  int    `json:"totalVencidos"`
	TotalPendientes                int    `json:"totalPendientes"`
	PorcentajeCumplimientoATiempo  int    `json:"porcentajeCumplimientoATiempo"`
	ReportesProximosVencer7Dias    int    `json:"reportesProximosVencer7Dias"`
	EntidadMayorIncumplimiento     string `json:"entidadMayorIncumplimiento,omitempty"`
	IncumplimientosEntidad         int    `json:"incumplimientosEntidadProblema,omitempty"`
	ResponsableMayorIncumplimiento string `json:"responsableMayorIncumplimiento,omitempty"`
	IncumplimientosResponsable     int    `json:"incumplimientosResponsableProblema,omitempty"`
}

// ReporteProximo — reporte próximo a vencer (GET /estadisticas/proximos-vencer).
type ReporteProximo struct {
	ID               int    `json:"id"`
	ReporteNombre    string `json:"reporteNombre"`
	EntidadNombre    string `json:"entidadNombre"`
	PeriodoReportado string `json:"periodoReportado"`
	FechaVencimiento string `json:"fechaVencimiento"`
	DiasRestantes    int    `json:"diasRestantes"`
	Responsable      string `json:"responsable"`
}

// ProximosVencer — respuesta del listado de próximos a vencer.
type ProximosVencer struct {
	Reportes []ReporteProximo `json:"reportes"`
}

// ReporteVencido — reporte vencido sin envío (GET /estadisticas/vencidos).
type ReporteVencido struct {
	ID               int    `json:"id"`
	ReporteNombre    string `json:"reporteNombre"`
	EntidadNombre    string `json:"entidadNombre"`
	PeriodoReportado string `json:"periodoReportado"`
	FechaVencimiento string `json:"fechaVencimiento"`
	DiasVencido      int    `json:"diasVencido"`
	Responsable      string `json:"responsable"`
}

// Vencidos — respuesta del listado de vencidos.
type Vencidos struct {
	Reportes []ReporteVencido `json:"reportes"`
}
