package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para ciclos de inventario.
// GetByID y GetActive devuelven (nil, nil) cuando no hay fila.
type InventoryRepository interface {
	// Create devuelve domain.ErrConflict si ya existe un inventario activo.
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	GetActive(ctx context.Context) (*entity.Inventory, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error)
	UpdateProgress(ctx context.Context, id string, progress entity.Progress) error
	// Finalize marca el inventario como finalizado solo si sigue activo.
	Finalize(ctx context.Context, id string, endedAt time.Time) error
	// Reactivate revierte Finalize (status=active, ended_at=NULL).
	Reactivate(ctx context.Context, id string) error
}
