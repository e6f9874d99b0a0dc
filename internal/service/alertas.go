// alertas.go — sondeo periódico del contador de alertas no leídas.
//
// AlertasService mantiene en memoria el último contador conocido por
// usuario para que la campana de alertas del portal no golpee el
// backend en cada request. El sondeo usa un ticker con el intervalo
// PC_ALERT_POLL_INTERVAL; los fallos se registran y se reintenta en el
// siguiente tick sin propagar el error a la interfaz.
//
// Métricas Prometheus:
//   - portal_alertas_poll_total — sondeos ejecutados, por resultado
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dcastellanosr/sirec-portal/internal/backend"
	"github.com/dcastellanosr/sirec-portal/internal/domain/model"
	"github.com/dcastellanosr/sirec-portal/internal/session"
)

var alertasPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "portal_alertas_poll_total",
	Help: "Sondeos del contador de alertas no leídas, por resultado",
}, []string{"resultado"})

// contadorCacheado — última lectura del contador de un usuario.
type contadorCacheado struct {
	NoLeidas    int
	Actualizado time.Time
}

// suscriptor — usuario registrado en el sondeo, con el contexto que
// lleva el token de su sesión.
type suscriptor struct {
	ctx context.Context
	ses *session.Sesion
}

// AlertasService — sondeo de alertas y operaciones de lectura.
type AlertasService struct {
	api      *backend.Client
	interval time.Duration
	logger   *slog.Logger

	mu           sync.RWMutex
	contadores   map[int]contadorCacheado
	suscriptores map[int]suscriptor

	cancel context.CancelFunc
	done   chan struct{}
}

// NewAlertasService crea el servicio de alertas.
func NewAlertasService(api *backend.Client, interval time.Duration, logger *slog.Logger) *AlertasService {
	return &AlertasService{
		api:          api,
		interval:     interval,
		logger:       logger.With(slog.String("component", "alertas")),
		contadores:   map[int]contadorCacheado{},
		suscriptores: map[int]suscriptor{},
	}
}

// Suscribir registra al usuario de la sesión en el sondeo periódico.
// El contexto debe llevar el token de la sesión. El usuario se da de
// baja cuando el contexto muere, cuando su token expira o con
// Desuscribir en el logout.
func (s *AlertasService) Suscribir(ctx context.Context, ses *session.Sesion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suscriptores[ses.UsuarioID] = suscriptor{ctx: ctx, ses: ses}
}

// Desuscribir saca al usuario del sondeo y descarta su contador.
func (s *AlertasService) Desuscribir(usuarioID int) {
	s.darDeBaja(usuarioID)
}

// ContadorNoLeidas devuelve la última lectura cacheada del contador del
// usuario. Si nunca se ha sondeado consulta el backend una vez.
func (s *AlertasService) ContadorNoLeidas(ctx context.Context, usuarioID int) (int, error) {
	s.mu.RLock()
	c, ok := s.contadores[usuarioID]
	s.mu.RUnlock()
	if ok {
		return c.NoLeidas, nil
	}

	noLeidas, err := s.api.ContarNoLeidas(ctx)
	if err != nil {
		return 0, err
	}
	s.guardarContador(usuarioID, noLeidas)
	return noLeidas, nil
}

// MisAlertas lista las alertas del usuario de la sesión del contexto.
func (s *AlertasService) MisAlertas(ctx context.Context, soloNoLeidas bool) ([]model.Alerta, error) {
	if soloNoLeidas {
		return s.api.MisAlertasNoLeidas(ctx)
	}
	return s.api.MisAlertas(ctx)
}

// MarcarLeida marca una alerta como leída y refresca el contador
// cacheado del usuario.
func (s *AlertasService) MarcarLeida(ctx context.Context, usuarioID, alertaID int) error {
	if _, err := s.api.MarcarLeida(ctx, alertaID); err != nil {
		return err
	}
	s.refrescarContador(ctx, usuarioID)
	return nil
}

// MarcarTodasLeidas marca todas las alertas del usuario como leídas.
func (s *AlertasService) MarcarTodasLeidas(ctx context.Context, usuarioID int) (*model.ResultadoMarcarTodas, error) {
	resultado, err := s.api.MarcarTodasLeidas(ctx)
	if err != nil {
		return nil, err
	}
	s.guardarContador(usuarioID, 0)
	return resultado, nil
}

// Start lanza la goroutine de sondeo periódico.
func (s *AlertasService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		s.logger.Info("Sondeo de alertas iniciado",
			slog.String("interval", s.interval.String()),
		)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Sondeo de alertas detenido")
				return
			case <-ticker.C:
				s.sondear()
			}
		}
	}()
}

// Stop detiene la goroutine de sondeo y espera su salida.
func (s *AlertasService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.done != nil {
		<-s.done
	}
}

// sondear refresca el contador de cada suscriptor vivo y da de baja a
// los de contexto muerto o token expirado.
func (s *AlertasService) sondear() {
	s.mu.RLock()
	pendientes := make(map[int]suscriptor, len(s.suscriptores))
	for id, sus := range s.suscriptores {
		pendientes[id] = sus
	}
	s.mu.RUnlock()

	for usuarioID, sus := range pendientes {
		if sus.ctx.Err() != nil || sus.ses.Expirada() {
			s.darDeBaja(usuarioID)
			continue
		}
		s.refrescarContador(sus.ctx, usuarioID)
	}
}

// refrescarContador consulta el backend y actualiza el caché. Un fallo
// se registra y conserva la última lectura conocida.
func (s *AlertasService) refrescarContador(ctx context.Context, usuarioID int) {
	noLeidas, err := s.api.ContarNoLeidas(ctx)
	if err != nil {
		alertasPollTotal.WithLabelValues("error").Inc()
		s.logger.Warn("Error sondeando alertas",
			slog.Int("usuario_id", usuarioID),
			slog.String("error", err.Error()),
		)
		return
	}
	alertasPollTotal.WithLabelValues("ok").Inc()
	s.guardarContador(usuarioID, noLeidas)
}

func (s *AlertasService) guardarContador(usuarioID, noLeidas int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contadores[usuarioID] = contadorCacheado{NoLeidas: noLeidas, Actualizado: time.Now()}
}

func (s *AlertasService) darDeBaja(usuarioID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suscriptores, usuarioID)
	delete(s.contadores, usuarioID)
}
