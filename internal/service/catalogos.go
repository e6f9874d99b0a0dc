// catalogos.go — caché LRU con TTL de los catálogos del backend.
//
// Los catálogos (roles, entidades) cambian poco y se consultan en cada
// formulario del portal. CatalogosService los sirve desde un caché
// in-memory por instancia; una escritura de CRUD invalida la entrada
// afectada.
//
// Métricas Prometheus:
//   - portal_catalogos_cache_hits_total — aciertos del caché
//   - portal_catalogos_cache_misses_total — fallos del caché
package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
)

var (
	catalogosCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_catalogos_cache_hits_total",
		Help: "Aciertos del caché LRU de catálogos.",
	})
	catalogosCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_catalogos_cache_misses_total",
		Help: "Fallos del caché LRU de catálogos.",
	})
)

// Claves de las entradas del caché.
const (
	claveRoles     = "roles"
	claveEntidades = "entidades"
)

// entradaCatalogo — valor cacheado; el tipo concreto depende de la clave.
type entradaCatalogo struct {
	roles     []model.Rol
	entidades []model.Entidad
}

// CatalogosService — catálogos del backend detrás de un caché LRU.
type CatalogosService struct {
	api   *backend.Client
	cache *expirable.LRU[string, *entradaCatalogo]
}

// NewCatalogosService crea el servicio con el tamaño y TTL dados.
func NewCatalogosService(api *backend.Client, maxSize int, ttl time.Duration) *CatalogosService {
	return &CatalogosService{
		api:   api,
		cache: expirable.NewLRU[string, *entradaCatalogo](maxSize, nil, ttl),
	}
}

// Roles devuelve el catálogo de roles, del caché si está vigente.
func (c *CatalogosService) Roles(ctx context.Context) ([]model.Rol, error) {
	if e, ok := c.cache.Get(claveRoles); ok {
		catalogosCacheHits.Inc()
		return e.roles, nil
	}
	catalogosCacheMisses.Inc()

	roles, err := c.api.ListarRoles(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(claveRoles, &entradaCatalogo{roles: roles})
	return roles, nil
}

// Entidades devuelve el catálogo de entidades, del caché si está vigente.
func (c *CatalogosService) Entidades(ctx context.Context) ([]model.Entidad, error) {
	if e, ok := c.cache.Get(claveEntidades); ok {
		catalogosCacheHits.Inc()
		return e.entidades, nil
	}
	catalogosCacheMisses.Inc()

	entidades, err := c.api.ListarEntidades(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Add(claveEntidades, &entradaCatalogo{entidades: entidades})
	return entidades, nil
}

// EntidadesActivas filtra el catálogo de entidades por Activo.
func (c *CatalogosService) EntidadesActivas(ctx context.Context) ([]model.Entidad, error) {
	entidades, err := c.Entidades(ctx)
	if err != nil {
		return nil, err
	}
	activas := make([]model.Entidad, 0, len(entidades))
	for _, e := range entidades {
		if e.Activo {
			activas = append(activas, e)
		}
	}
	return activas, nil
}

// InvalidarEntidades descarta la entrada de entidades tras un CRUD.
func (c *CatalogosService) InvalidarEntidades() {
	c.cache.Remove(claveEntidades)
}

// InvalidarRoles descarta la entrada de roles.
func (c *CatalogosService) InvalidarRoles() {
	c.cache.Remove(claveRoles)
}
