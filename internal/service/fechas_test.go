package service

import (
	"testing"
	"time"
)

func TestParseFecha(t *testing.T) {
	tests := []struct {
		nombre  string
		entrada string
		año     int
		mes     time.Month
		dia     int
		falla   bool
	}{
		{"fecha completa", "2025-03-15", 2025, time.March, 15, false},
		{"solo año y mes", "2025-03", 2025, time.March, 1, false},
		{"RFC3339", "2025-03-15T10:30:00Z", 2025, time.March, 15, false},
		{"con espacios", "  2025-03-15  ", 2025, time.March, 15, false},
		{"vacía", "", 0, 0, 0, true},
		{"basura", "mañana", 0, 0, 0, true},
		{"formato invertido", "15/03/2025", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			f, err := ParseFecha(tt.entrada)
			if tt.falla {
				if err == nil {
					t.Fatalf("ParseFecha(%q) no devolvió error", tt.entrada)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFecha(%q) devolvió error: %v", tt.entrada, err)
			}
			if f.Year() != tt.año || f.Month() != tt.mes || f.Day() != tt.dia {
				t.Errorf("ParseFecha(%q) = %v, se espera %d-%02d-%02d",
					tt.entrada, f, tt.año, tt.mes, tt.dia)
			}
		})
	}
}

func TestFinDelDia(t *testing.T) {
	f := FinDelDia(time.Date(2025, time.March, 15, 10, 30, 0, 0, time.Local))

	if f.Hour() != 23 || f.Minute() != 59 || f.Second() != 59 {
		t.Errorf("FinDelDia = %v, se espera 23:59:59", f)
	}
	if f.Day() != 15 || f.Month() != time.March {
		t.Errorf("FinDelDia cambió el día: %v", f)
	}
}

func TestDiasVencido(t *testing.T) {
	vencimiento := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		nombre   string
		ahora    time.Time
		esperado int
	}{
		{"mismo día por la mañana", time.Date(2025, time.March, 15, 9, 0, 0, 0, time.Local), 0},
		{"mismo día al final", time.Date(2025, time.March, 15, 23, 59, 0, 0, time.Local), 0},
		{"antes del vencimiento", time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local), 0},
		{"madrugada siguiente", time.Date(2025, time.March, 16, 0, 30, 0, 0, time.Local), 1},
		{"un día después", time.Date(2025, time.March, 16, 23, 0, 0, 0, time.Local), 1},
		{"día y medio después", time.Date(2025, time.March, 17, 12, 0, 0, 0, time.Local), 2},
		{"una semana después", time.Date(2025, time.March, 22, 23, 59, 59, 0, time.Local), 7},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if dias := DiasVencido(vencimiento, tt.ahora); dias != tt.esperado {
				t.Errorf("DiasVencido = %d, se espera %d", dias, tt.esperado)
			}
		})
	}
}

func TestDiasRestantes(t *testing.T) {
	ahora := time.Date(2025, time.March, 15, 14, 0, 0, 0, time.Local)

	tests := []struct {
		nombre      string
		vencimiento time.Time
		esperado    int
	}{
		{"vence hoy", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local), 0},
		{"vence mañana", time.Date(2025, time.March, 16, 0, 0, 0, 0, time.Local), 1},
		{"vence en una semana", time.Date(2025, time.March, 22, 8, 0, 0, 0, time.Local), 7},
		{"venció ayer", time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local), -1},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if dias := DiasRestantes(tt.vencimiento, ahora); dias != tt.esperado {
				t.Errorf("DiasRestantes = %d, se espera %d", dias, tt.esperado)
			}
		})
	}
}

func TestMesDe(t *testing.T) {
	año, mes := MesDe("2025-07-20")
	if año != 2025 || mes != time.July {
		t.Errorf("MesDe = (%d, %v), se espera (2025, July)", año, mes)
	}

	año, mes = MesDe("no es fecha")
	if año != 0 || mes != 0 {
		t.Errorf("MesDe con entrada inválida = (%d, %v), se espera (0, 0)", año, mes)
	}
}
