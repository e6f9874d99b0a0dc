// Paquete errors — constructores de errores estándar del portal.
// Formato único: {"error": {"code": "...", "message": "..."}}.
// Todas las respuestas HTTP de error deben usar WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Códigos de error del portal.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeAPIUnavailable  = "API_NO_DISPONIBLE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// errorBody — estructura del cuerpo de la respuesta de error.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — detalle del error.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError escribe la respuesta de error en el formato estándar.
// statusCode — código HTTP, code — código legible por máquina,
// message — descripción.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Constructores para los errores típicos ---

// ValidationError — 400 entrada inválida.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound — 404 recurso inexistente.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// Unauthorized — 401 se requiere autenticación.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden — 403 permisos insuficientes.
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, CodeForbidden, message)
}

// Conflict — 409 conflicto (recurso duplicado).
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, CodeConflict, message)
}

// APIUnavailable — 502 el backend de reportería no responde.
func APIUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, CodeAPIUnavailable, message)
}

// InternalError — 500 error interno.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
