// dashboard.go — agregación en memoria de instancias de reporte para
// los tableros de auditoría y supervisión.
//
// El backend pre-calcula las métricas del administrador; los tableros
// de auditor y supervisor se arman en el portal a partir de los
// listados de instancias. Todas las funciones de este archivo son puras
// y operan sobre slices ya obtenidos del backend.
package service

import (
	"math"
	"sort"
	"time"

	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

// ResumenCumplimiento — partición de un conjunto de instancias por
// estado de cumplimiento.
type ResumenCumplimiento struct {
	Total                  int `json:"total"`
	EnviadosATiempo        int `json:"enviadosATiempo"`
	EnviadosTarde          int `json:"enviadosTarde"`
	VencidosSinEnviar      int `json:"vencidosSinEnviar"`
	Pendientes             int `json:"pendientes"`
	PorcentajeCumplimiento int `json:"porcentajeCumplimiento"`
}

// GrupoCumplimiento — cumplimiento agregado de una entidad o un
// responsable.
type GrupoCumplimiento struct {
	Nombre          string `json:"nombre"`
	Total           int    `json:"total"`
	EnviadosATiempo int    `json:"enviadosATiempo"`
	Incumplimientos int    `json:"incumplimientos"`
	Porcentaje      int    `json:"porcentaje"`
}

// PuntoTendencia — cumplimiento de un mes calendario.
type PuntoTendencia struct {
	Año        int        `json:"anio"`
	Mes        time.Month `json:"mes"`
	Etiqueta   string     `json:"etiqueta"`
	Total      int        `json:"total"`
	ATiempo    int        `json:"aTiempo"`
	Porcentaje int        `json:"porcentaje"`
}

// PorcentajeCumplimiento calcula el porcentaje de envíos a tiempo sobre
// el total, redondeado al entero más cercano. Un conjunto vacío es 0%,
// no una división por cero.
func PorcentajeCumplimiento(aTiempo, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(aTiempo) / float64(total)))
}

// Resumir particiona las instancias por estado de cumplimiento.
// Cada instancia cae exactamente en una categoría.
func Resumir(instancias []model.InstanciaReporte) ResumenCumplimiento {
	r := ResumenCumplimiento{Total: len(instancias)}
	for i := range instancias {
		inst := &instancias[i]
		switch {
		case inst.EnviadoATiempo():
			r.EnviadosATiempo++
		case inst.EnviadoTarde():
			r.EnviadosTarde++
		case inst.VencidoSinEnviar():
			r.VencidosSinEnviar++
		default:
			r.Pendientes++
		}
	}
	r.PorcentajeCumplimiento = PorcentajeCumplimiento(r.EnviadosATiempo, r.Total)
	return r
}

// CumplimientoPorEntidad agrupa las instancias por entidad y calcula el
// cumplimiento de cada grupo, ordenado de mejor a peor porcentaje (a
// igual porcentaje, menos incumplimientos primero).
func CumplimientoPorEntidad(instancias []model.InstanciaReporte) []GrupoCumplimiento {
	return agruparPor(instancias, func(i *model.InstanciaReporte) string {
		return i.EntidadNombre
	})
}

// CumplimientoPorResponsable agrupa por responsable de elaboración con
// el mismo orden que CumplimientoPorEntidad.
func CumplimientoPorResponsable(instancias []model.InstanciaReporte) []GrupoCumplimiento {
	return agruparPor(instancias, func(i *model.InstanciaReporte) string {
		return i.ResponsableElaboracion
	})
}

// agruparPor agrega las instancias por la clave dada. Instancias sin
// clave se ignoran.
func agruparPor(instancias []model.InstanciaReporte, clave func(*model.InstanciaReporte) string) []GrupoCumplimiento {
	grupos := map[string]*GrupoCumplimiento{}
	for i := range instancias {
		inst := &instancias[i]
		nombre := clave(inst)
		if nombre == "" {
			continue
		}
		g, ok := grupos[nombre]
		if !ok {
			g = &GrupoCumplimiento{Nombre: nombre}
			grupos[nombre] = g
		}
		g.Total++
		if inst.EnviadoATiempo() {
			g.EnviadosATiempo++
		}
		if inst.EnviadoTarde() || inst.VencidoSinEnviar() {
			g.Incumplimientos++
		}
	}

	resultado := make([]GrupoCumplimiento, 0, len(grupos))
	for _, g := range grupos {
		g.Porcentaje = PorcentajeCumplimiento(g.EnviadosATiempo, g.Total)
		resultado = append(resultado, *g)
	}

	sort.Slice(resultado, func(a, b int) bool {
		if resultado[a].Porcentaje != resultado[b].Porcentaje {
			return resultado[a].Porcentaje > resultado[b].Porcentaje
		}
		if resultado[a].Incumplimientos != resultado[b].Incumplimientos {
			return resultado[a].Incumplimientos < resultado[b].Incumplimientos
		}
		return resultado[a].Nombre < resultado[b].Nombre
	})
	return resultado
}

// etiquetasMes — nombres cortos de mes para las series del tablero.
var etiquetasMes = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// TendenciaMensual construye la serie de cumplimiento de los últimos
// meses meses calendario terminando en el mes de ahora. Cada instancia
// se asigna al mes de su fecha de vencimiento; los meses sin
// instancias aparecen con 0%.
func TendenciaMensual(instancias []model.InstanciaReporte, ahora time.Time, meses int) []PuntoTendencia {
	if meses < 1 {
		meses = 1
	}

	claveMes := func(año int, mes time.Month) int { return año*12 + int(mes) - 1 }

	// Anclar al primer día del mes: AddDate desde un fin de mes
	// normaliza hacia el mes siguiente y saltaría meses de la serie.
	base := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())

	puntos := make([]PuntoTendencia, meses)
	indice := map[int]*PuntoTendencia{}
	for i := 0; i < meses; i++ {
		m := base.AddDate(0, i-(meses-1), 0)
		p := &puntos[i]
		p.Año, p.Mes = m.Year(), m.Month()
		p.Etiqueta = etiquetasMes[p.Mes-1]
		indice[claveMes(p.Año, p.Mes)] = p
	}

	for i := range instancias {
		inst := &instancias[i]
		año, mes := MesDe(inst.FechaVencimientoCalculada)
		if año == 0 {
			continue
		}
		p, ok := indice[claveMes(año, mes)]
		if !ok {
			continue
		}
		p.Total++
		if inst.EnviadoATiempo() {
			p.ATiempo++
		}
	}

	for i := range puntos {
		puntos[i].Porcentaje = PorcentajeCumplimiento(puntos[i].ATiempo, puntos[i].Total)
	}
	return puntos
}
