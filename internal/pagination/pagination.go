// Paquete pagination — paginación en memoria de los listados del
// portal. Los listados del backend llegan completos; el recorte por
// página y la serie de números visibles se calculan acá para que todas
// las tablas pagineen igual.
package pagination

// ElementosPorDefecto — tamaño de página por defecto de las tablas.
const ElementosPorDefecto = 10

// maxVisibles — números de página mostrados antes de usar elipsis.
const maxVisibles = 5

// Elipsis — marcador de tramo omitido en la serie de páginas visibles.
const Elipsis = -1

// Pagina — una página de un listado, con los metadatos que pinta el
// componente de paginación.
type Pagina struct {
	// Actual — número de página, base 1.
	Actual int `json:"actual"`
	// TotalPaginas calculado con redondeo hacia arriba.
	TotalPaginas int `json:"totalPaginas"`
	// TotalElementos del listado completo.
	TotalElementos int `json:"totalElementos"`
	// PorPagina — tamaño de página vigente.
	PorPagina int `json:"porPagina"`
	// Desde y Hasta — rango mostrado, base 1, recortado al total.
	Desde int `json:"desde"`
	Hasta int `json:"hasta"`
}

// Paginar recorta el listado a la página pedida. Una página fuera de
// rango se recorta a la última; porPagina no positivo usa el valor por
// defecto.
func Paginar[T any](elementos []T, pagina, porPagina int) ([]T, Pagina) {
	if porPagina < 1 {
		porPagina = ElementosPorDefecto
	}

	total := len(elementos)
	totalPaginas := (total + porPagina - 1) / porPagina
	if totalPaginas < 1 {
		totalPaginas = 1
	}

	if pagina < 1 {
		pagina = 1
	}
	if pagina > totalPaginas {
		pagina = totalPaginas
	}

	desde := (pagina - 1) * porPagina
	hasta := desde + porPagina
	if hasta > total {
		hasta = total
	}

	meta := Pagina{
		Actual:         pagina,
		TotalPaginas:   totalPaginas,
		TotalElementos: total,
		PorPagina:      porPagina,
		Desde:          desde + 1,
		Hasta:          hasta,
	}
	if total == 0 {
		meta.Desde = 0
	}
	return elementos[desde:hasta], meta
}

// PaginasVisibles construye la serie de números de página a mostrar.
// Con pocas páginas se muestran todas; con muchas, la primera, la
// última y una ventana alrededor de la actual, con Elipsis en los
// tramos omitidos.
func PaginasVisibles(actual, totalPaginas int) []int {
	if totalPaginas <= maxVisibles+2 {
		paginas := make([]int, 0, totalPaginas)
		for i := 1; i <= totalPaginas; i++ {
			paginas = append(paginas, i)
		}
		return paginas
	}

	paginas := []int{1}

	if actual > 3 {
		paginas = append(paginas, Elipsis)
	}

	inicio := actual - 1
	if inicio < 2 {
		inicio = 2
	}
	fin := actual + 1
	if fin > totalPaginas-1 {
		fin = totalPaginas - 1
	}
	for i := inicio; i <= fin; i++ {
		paginas = append(paginas, i)
	}

	if actual < totalPaginas-2 {
		paginas = append(paginas, Elipsis)
	}

	return append(paginas, totalPaginas)
}
