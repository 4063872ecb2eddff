// Package storage abre el adaptador de persistencia elegido por STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ciclos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ciclos/pkg/config"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// Repositories los cuatro puertos de persistencia sobre un mismo backend.
type Repositories struct {
	Driver      string
	Inventories repository.InventoryRepository
	Counts      repository.CountEntryRepository
	Transits    repository.TransitRecordRepository
	Reports     repository.ReportRepository
	close       func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open construye los repositorios. Con postgres y AutoMigrate aplica el esquema antes de devolver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Repositories{
			Driver:      config.StorageMemory,
			Inventories: store.Inventories(),
			Counts:      store.Counts(),
			Transits:    store.Transits(),
			Reports:     store.Reports(),
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("aplicar esquema: %w", err)
			}
			log.Info().Msg("esquema aplicado")
		}
		return &Repositories{
			Driver:      config.StoragePostgres,
			Inventories: postgres.NewInventoryRepository(pool),
			Counts:      postgres.NewCountEntryRepository(pool),
			Transits:    postgres.NewTransitRecordRepository(pool),
			Reports:     postgres.NewReportRepository(pool),
			close:       pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}
}
