// fechas.go — normalización y aritmética de fechas de vencimiento.
//
// El backend entrega fechas en varios formatos según el endpoint
// (YYYY-MM-DD, YYYY-MM, RFC3339). Toda la aritmética de plazos se hace
// sobre el fin del día local: un reporte vence al terminar el día de su
// fecha de vencimiento, no a medianoche del inicio.
package service

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// formatosFecha — formatos aceptados, en orden de prueba.
var formatosFecha = []string{
	"2006-01-02",
	"2006-01",
	time.RFC3339,
}

// ParseFecha interpreta una fecha del backend como fecha local.
// Cadenas YYYY-MM se interpretan como el primer día del mes.
func ParseFecha(valor string) (time.Time, error) {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}

	for _, formato := range formatosFecha {
		if t, err := time.ParseInLocation(formato, valor, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no reconocida: %q", valor)
}

// FinDelDia devuelve el último instante del día de t en hora local.
func FinDelDia(t time.Time) time.Time {
	año, mes, dia := t.Date()
	return time.Date(año, mes, dia, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
}

// DiasVencido calcula cuántos días lleva vencido un plazo respecto de
// ahora. El plazo se cumple al fin del día; el resultado se redondea
// hacia arriba para que cualquier fracción de día vencido cuente como
// un día completo. Devuelve 0 si el plazo aún no vence.
func DiasVencido(fechaVencimiento, ahora time.Time) int {
	limite := FinDelDia(fechaVencimiento)
	if !ahora.After(limite) {
		return 0
	}
	dias := int(math.Ceil(ahora.Sub(limite).Hours() / 24))
	if dias < 1 {
		dias = 1
	}
	return dias
}

// DiasRestantes calcula los días que faltan hasta el fin del día del
// vencimiento. Devuelve 0 si el plazo vence hoy y un valor negativo si
// ya venció.
func DiasRestantes(fechaVencimiento, ahora time.Time) int {
	inicioHoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.Local)
	inicioVenc := time.Date(fechaVencimiento.Year(), fechaVencimiento.Month(), fechaVencimiento.Day(), 0, 0, 0, 0, time.Local)
	return int(math.Round(inicioVenc.Sub(inicioHoy).Hours() / 24))
}

// MesDe devuelve el año y el mes de una fecha del backend, o cero si la
// fecha no se puede interpretar.
func MesDe(valor string) (int, time.Month) {
	t, err := ParseFecha(valor)
	if err != nil {
		return 0, 0
	}
	return t.Year(), t.Month()
}
