package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

var _ appinv.Locker = (*Locker)(nil)

// Locker implementa inventory.Locker con redislock. La clave expira sola tras ttl si el
// proceso muere con el bloqueo tomado.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	log    *logger.Logger
}

// NewLocker construye el locker. wait es cuánto se reintenta antes de rendirse con ErrConflict.
func NewLocker(client goredis.UniversalClient, ttl, wait time.Duration, log *logger.Logger) *Locker {
	return &Locker{client: redislock.New(client), ttl: ttl, wait: wait, log: log}
}

// Lock obtiene la clave; domain.ErrConflict si otro la mantiene durante todo el tiempo de espera.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	opts := &redislock.Options{}
	if l.wait > 0 {
		attempts := int(l.wait / (50 * time.Millisecond))
		opts.RetryStrategy = redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), attempts)
	}
	lock, err := l.client.Obtain(ctx, key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("obtener bloqueo %s: %w", key, err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("liberación de bloqueo fallida, expira por TTL")
		}
	}, nil
}
