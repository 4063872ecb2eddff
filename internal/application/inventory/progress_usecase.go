package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

var _ ProgressRecomputer = (*ProgressUseCase)(nil)

// ProgressUseCase deriva el progreso del inventario a partir del libro de conteos.
type ProgressUseCase struct {
	invRepo   repository.InventoryRepository
	countRepo repository.CountEntryRepository
	catalog   *catalog.Catalog
}

// NewProgressUseCase construye el caso de uso.
func NewProgressUseCase(invRepo repository.InventoryRepository, countRepo repository.CountEntryRepository, c *catalog.Catalog) *ProgressUseCase {
	return &ProgressUseCase{invRepo: invRepo, countRepo: countRepo, catalog: c}
}

// Live calcula el progreso sin persistirlo (lectura para tableros en vivo).
func (uc *ProgressUseCase) Live(ctx context.Context, inventoryID string) (entity.Progress, error) {
	const op = "progress.live"
	inv, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return entity.Progress{}, domain.Storage(op, inventoryID, err)
	}
	if inv == nil {
		return entity.Progress{}, domain.NotFound(op, "inventario", inventoryID)
	}
	return uc.compute(ctx, op, inventoryID)
}

// Recompute calcula el progreso y lo guarda en el snapshot del inventario.
func (uc *ProgressUseCase) Recompute(ctx context.Context, inventoryID string) (entity.Progress, error) {
	const op = "progress.recompute"
	progress, err := uc.compute(ctx, op, inventoryID)
	if err != nil {
		return entity.Progress{}, err
	}
	if err := uc.invRepo.UpdateProgress(ctx, inventoryID, progress); err != nil {
		return entity.Progress{}, domain.Storage(op, inventoryID, err)
	}
	return progress, nil
}

func (uc *ProgressUseCase) compute(ctx context.Context, op, inventoryID string) (entity.Progress, error) {
	entries, err := uc.countRepo.List(ctx, repository.CountFilter{InventoryID: inventoryID})
	if err != nil {
		return entity.Progress{}, domain.Storage(op, inventoryID, err)
	}
	flat := make([]entity.CountEntry, 0, len(entries))
	for _, e := range entries {
		flat = append(flat, *e)
	}
	return dominv.ComputeProgress(flat, uc.catalog), nil
}
