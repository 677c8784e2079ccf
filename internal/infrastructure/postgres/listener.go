package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// Canales de notificación publicados por los triggers de la migración inicial.
const (
	ChannelProducts = "products_changed"
	ChannelComandas = "comandas_changed"
	ChannelOrders   = "orders_changed"
)

// Watcher abre suscripciones LISTEN/NOTIFY sobre conexiones dedicadas del pool.
// Cada notificación señala "algo cambió": el consumidor vuelve a consultar el
// snapshot completo (mismo modelo que un stream de fotos de la colección).
type Watcher struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewWatcher construye el watcher.
func NewWatcher(pool *pgxpool.Pool, log *logger.Logger) *Watcher {
	return &Watcher{pool: pool, log: log}
}

// Subscription es una suscripción viva a un canal. Events se cierra al
// cancelar el contexto o llamar Close; las señales se coalescen (un consumidor
// lento recibe una sola señal por ráfaga de cambios).
type Subscription struct {
	Events <-chan struct{}
	cancel context.CancelFunc
}

// Close termina la suscripción y libera la conexión dedicada.
func (s *Subscription) Close() {
	s.cancel()
}

// Subscribe abre la escucha del canal dado. La conexión queda dedicada a la
// suscripción hasta Close.
func (w *Watcher) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", channel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	events := make(chan struct{}, 1)

	go func() {
		defer close(events)
		defer conn.Release()
		for {
			if _, err := conn.Conn().WaitForNotification(subCtx); err != nil {
				if subCtx.Err() == nil {
					w.log.Warn().Err(err).Str("channel", channel).Msg("suscripción interrumpida")
				}
				return
			}
			// Señal coalescida: si el consumidor aún no drenó la anterior, no acumula.
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()

	return &Subscription{Events: events, cancel: cancel}, nil
}
