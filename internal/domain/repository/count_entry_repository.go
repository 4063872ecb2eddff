package repository

import (
	"context"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// CountFilter filtros opcionales del listado de conteos.
type CountFilter struct {
	InventoryID string
	Category    string
}

// CountEntryRepository define el puerto de persistencia del libro de conteos.
// Las escrituras devuelven domain.ErrInvalidState si el inventario dueño ya no está activo.
type CountEntryRepository interface {
	Create(ctx context.Context, entry *entity.CountEntry) error
	// CreateMany inserta todas las entradas o ninguna.
	CreateMany(ctx context.Context, entries []*entity.CountEntry) error
	GetByID(ctx context.Context, id string) (*entity.CountEntry, error)
	Update(ctx context.Context, entry *entity.CountEntry) error
	Delete(ctx context.Context, id string) error
	// List ordena por fecha de conteo descendente.
	List(ctx context.Context, filter CountFilter) ([]*entity.CountEntry, error)
}
