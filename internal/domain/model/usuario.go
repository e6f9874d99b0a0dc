// Paquete model — modelos de dominio del Portal de Cumplimiento.
// Los structs reflejan los DTOs del API de reportería; el portal no es
// dueño de ninguno de estos datos, solo mantiene copias descartables.
package model

// Rol — rol de aplicación administrado en el backend.
type Rol struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Usuario — cuenta de usuario del sistema de reportería.
type Usuario struct {
	ID             int    `json:"id,omitempty"`
	Cedula         string `json:"cedula"`
	NombreCompleto string `json:"nombreCompleto"`
	Correo         string `json:"correo"`
	// Contrasena solo se envía al crear o cambiar la clave; el backend
	// nunca la devuelve.
	Contrasena string `json:"contrasena,omitempty"`
	Proceso    string `json:"proceso"`
	Cargo      string `json:"cargo"`
	Telefono   string `json:"telefono,omitempty"`
	Rol        Rol    `json:"rol"`
	Activo     bool   `json:"activo"`
	// Fechas en formato RFC3339, asignadas por el backend.
	FechaCreacion      string `json:"fechaCreacion,omitempty"`
	FechaActualizacion string `json:"fechaActualizacion,omitempty"`
}

// UsuarioRequest — cuerpo para crear/actualizar un usuario.
// El rol se referencia solo por ID.
type UsuarioRequest struct {
	Cedula         string `json:"cedula"`
	NombreCompleto string `json:"nombreCompleto"`
	Correo         string `json:"correo"`
	Contrasena     string `json:"contrasena,omitempty"`
	Proceso        string `json:"proceso"`
	Cargo          string `json:"cargo"`
	Telefono       string `json:"telefono,omitempty"`
	Rol            RolRef `json:"rol"`
	Activo         bool   `json:"activo"`
}

// RolRef — referencia a un rol por ID en requests.
type RolRef struct {
	ID int `json:"id"`
}
