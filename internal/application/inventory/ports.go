package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// StartLockKey clave del bloqueo que serializa la creación de inventarios.
const StartLockKey = "inventory:start"

// Locker serializa secciones críticas entre réplicas (p.ej. Redis) o dentro del proceso.
// Lock devuelve domain.ErrConflict si el bloqueo está tomado por otro.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ProgressRecomputer recalcula y persiste el progreso de un inventario.
// El libro de conteos lo invoca tras cada mutación.
type ProgressRecomputer interface {
	Recompute(ctx context.Context, inventoryID string) (entity.Progress, error)
}

// MutexLocker implementación local de Locker para una sola instancia.
type MutexLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMutexLocker construye el locker en proceso.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{locks: map[string]*sync.Mutex{}}
}

// Lock bloquea hasta obtener la clave o hasta que ctx termine.
func (l *MutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()
	select {
	case <-acquired:
		return m.Unlock, nil
	case <-ctx.Done():
		// Libera el mutex cuando la goroutine lo obtenga.
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}
