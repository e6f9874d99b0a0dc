// Paquete roles define la enumeración cerrada de roles del portal y
// la normalización de las etiquetas de rol que entrega el backend.
// La normalización es total: toda cadena de entrada produce exactamente
// uno de los cuatro roles, con responsable como valor por defecto.
package roles

import "strings"

// Roles reconocidos por el portal.
const (
	Administrador = "administrador"
	Supervisor    = "supervisor"
	Responsable   = "responsable"
	Auditor       = "auditor"
)

// PorDefecto es el rol asignado cuando la etiqueta del backend no se
// reconoce: el acceso más restringido con permiso de envío.
const PorDefecto = Responsable

// etiquetasConocidas mapea exactamente las etiquetas que el backend
// emite hoy (claims estilo Spring Security y nombres con mayúscula).
var etiquetasConocidas = map[string]string{
	"ROLE_ADMINISTRADOR": Administrador,
	"ROLE_SUPERVISOR":    Supervisor,
	"ROLE_RESPONSABLE":   Responsable,
	"ROLE_AUDITOR":       Auditor,
	"Administrador":      Administrador,
	"Supervisor":         Supervisor,
	"Responsable":        Responsable,
	"Auditor":            Auditor,
}

// palabrasClave se busca por contención, en orden de prioridad fijo.
// Cubre variantes no listadas en etiquetasConocidas (ADMIN, admin_general...).
var palabrasClave = []struct {
	clave string
	rol   string
}{
	{"admin", Administrador},
	{"supervis", Supervisor},
	{"responsab", Responsable},
	{"audit", Auditor},
}

// Normalizar convierte una etiqueta arbitraria del backend en un rol del
// portal. Primero el mapeo exacto, luego contención de palabras clave
// (sin distinguir mayúsculas), y si nada coincide, PorDefecto.
func Normalizar(etiqueta string) string {
	etiqueta = strings.TrimSpace(etiqueta)
	if rol, ok := etiquetasConocidas[etiqueta]; ok {
		return rol
	}

	minuscula := strings.ToLower(etiqueta)
	if EsValido(minuscula) {
		return minuscula
	}
	for _, pc := range palabrasClave {
		if strings.Contains(minuscula, pc.clave) {
			return pc.rol
		}
	}
	return PorDefecto
}

// EsValido indica si la cadena es uno de los cuatro roles del portal.
func EsValido(rol string) bool {
	switch rol {
	case Administrador, Supervisor, Responsable, Auditor:
		return true
	}
	return false
}

// Permitido indica si rol está dentro del conjunto permitido.
func Permitido(rol string, permitidos ...string) bool {
	for _, p := range permitidos {
		if rol == p {
			return true
		}
	}
	return false
}
