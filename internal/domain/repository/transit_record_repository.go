package repository

import (
	"context"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// TransitRecordRepository define el puerto de persistencia del libro de tránsitos.
type TransitRecordRepository interface {
	Create(ctx context.Context, record *entity.TransitRecord) error
	CreateMany(ctx context.Context, records []*entity.TransitRecord) error
	GetByID(ctx context.Context, id string) (*entity.TransitRecord, error)
	Update(ctx context.Context, record *entity.TransitRecord) error
	Delete(ctx context.Context, id string) error
	// ListByInventory ordena por fecha de envío descendente.
	ListByInventory(ctx context.Context, inventoryID string) ([]*entity.TransitRecord, error)
}
