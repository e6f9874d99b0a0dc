package model

// Entidad — organización regulada dueña de obligaciones de reporte.
type Entidad struct {
	ID          int    `json:"id"`
	NIT         string `json:"nit"`
	RazonSocial string `json:"razonSocial"`
	Sigla       string `json:"sigla,omitempty"`
	TipoEntidad string `json:"tipoEntidad"`
	Direccion   string `json:"direccion,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
	Activo      bool   `json:"activo"`
}
