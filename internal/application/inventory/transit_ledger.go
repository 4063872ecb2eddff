package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// AddTransitInput entrada de un registro de tránsito. Status vacío = sent.
type AddTransitInput struct {
	InventoryID string
	Origin      string
	Destination string
	AssetType   string
	Quantity    int
	Status      string
}

// TransitItem ítem de una carga masiva de tránsitos.
type TransitItem struct {
	AssetType string
	Quantity  int
}

// BulkTransitInput carga masiva con el mismo par origen/destino.
type BulkTransitInput struct {
	InventoryID string
	Origin      string
	Destination string
	Status      string
	Items       []TransitItem
}

// TransitPatch campos editables de un tránsito; el origen y el inventario son inmutables.
type TransitPatch struct {
	InventoryID *string
	Origin      *string
	Destination *string
	AssetType   *string
	Quantity    *int
}

// TransitLedger libro de envíos entre centros de distribución.
type TransitLedger struct {
	invRepo     repository.InventoryRepository
	transitRepo repository.TransitRecordRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewTransitLedger construye el libro.
func NewTransitLedger(invRepo repository.InventoryRepository, transitRepo repository.TransitRecordRepository, log *logger.Logger) *TransitLedger {
	return &TransitLedger{invRepo: invRepo, transitRepo: transitRepo, log: log, now: time.Now}
}

// WithNow reemplaza el reloj para pruebas deterministas.
func (l *TransitLedger) WithNow(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

func defaultStatus(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return entity.TransitStatusSent
	}
	return s
}

func (l *TransitLedger) newRecord(inventoryID, origin, destination, assetType string, qty int, status string, now time.Time) *entity.TransitRecord {
	rec := &entity.TransitRecord{
		ID:          uuid.New().String(),
		InventoryID: inventoryID,
		Origin:      origin,
		Destination: destination,
		AssetType:   strings.TrimSpace(assetType),
		Quantity:    qty,
		SentAt:      now,
	}
	rec.SetStatus(status, now)
	return rec
}

// AddEntry registra un envío.
func (l *TransitLedger) AddEntry(ctx context.Context, in AddTransitInput) (*entity.TransitRecord, error) {
	const op = "transit.add"
	in.Status = defaultStatus(in.Status)
	in.Origin, in.Destination = strings.TrimSpace(in.Origin), strings.TrimSpace(in.Destination)
	if err := dominv.ValidateTransit(op, in.Origin, in.Destination, in.AssetType, in.Quantity, in.Status); err != nil {
		return nil, err
	}
	if _, err := requireActive(ctx, l.invRepo, op, in.InventoryID); err != nil {
		return nil, err
	}
	rec := l.newRecord(in.InventoryID, in.Origin, in.Destination, in.AssetType, in.Quantity, in.Status, l.now())
	if err := l.transitRepo.Create(ctx, rec); err != nil {
		return nil, writeError(op, in.InventoryID, err)
	}
	return rec, nil
}

// AddEntriesBulk registra todos los ítems o ninguno.
func (l *TransitLedger) AddEntriesBulk(ctx context.Context, in BulkTransitInput) ([]*entity.TransitRecord, error) {
	const op = "transit.add_bulk"
	if len(in.Items) == 0 {
		return nil, domain.Validation(op, "se requiere al menos un ítem")
	}
	in.Status = defaultStatus(in.Status)
	in.Origin, in.Destination = strings.TrimSpace(in.Origin), strings.TrimSpace(in.Destination)
	for _, item := range in.Items {
		if err := dominv.ValidateTransit(op, in.Origin, in.Destination, item.AssetType, item.Quantity, in.Status); err != nil {
			return nil, err
		}
	}
	if _, err := requireActive(ctx, l.invRepo, op, in.InventoryID); err != nil {
		return nil, err
	}
	now := l.now()
	records := make([]*entity.TransitRecord, 0, len(in.Items))
	for _, item := range in.Items {
		records = append(records, l.newRecord(in.InventoryID, in.Origin, in.Destination, item.AssetType, item.Quantity, in.Status, now))
	}
	if err := l.transitRepo.CreateMany(ctx, records); err != nil {
		return nil, writeError(op, in.InventoryID, err)
	}
	return records, nil
}

// UpdateStatus cambia el estado; received sella la fecha de recepción, otro estado la limpia.
func (l *TransitLedger) UpdateStatus(ctx context.Context, id, status string) (*entity.TransitRecord, error) {
	const op = "transit.status"
	if !entity.ValidTransitStatus(status) {
		return nil, domain.Validation(op, "estado inválido: "+status)
	}
	rec, err := l.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireActive(ctx, l.invRepo, op, rec.InventoryID); err != nil {
		return nil, err
	}
	rec.SetStatus(status, l.now())
	if err := l.transitRepo.Update(ctx, rec); err != nil {
		return nil, writeError(op, id, err)
	}
	return rec, nil
}

// EditEntry edita destino, tipo de activo o cantidad.
func (l *TransitLedger) EditEntry(ctx context.Context, id string, patch TransitPatch) (*entity.TransitRecord, error) {
	const op = "transit.edit"
	rec, err := l.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if patch.InventoryID != nil && *patch.InventoryID != rec.InventoryID {
		return nil, domain.Validation(op, "el inventario de un tránsito no se puede cambiar")
	}
	if patch.Origin != nil && strings.TrimSpace(*patch.Origin) != rec.Origin {
		return nil, domain.Validation(op, "el origen de un tránsito no se puede cambiar")
	}
	if patch.Destination != nil {
		rec.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.AssetType != nil {
		rec.AssetType = strings.TrimSpace(*patch.AssetType)
	}
	if patch.Quantity != nil {
		rec.Quantity = *patch.Quantity
	}
	if err := dominv.ValidateTransit(op, rec.Origin, rec.Destination, rec.AssetType, rec.Quantity, rec.Status); err != nil {
		return nil, err
	}
	if _, err := requireActive(ctx, l.invRepo, op, rec.InventoryID); err != nil {
		return nil, err
	}
	if err := l.transitRepo.Update(ctx, rec); err != nil {
		return nil, writeError(op, id, err)
	}
	return rec, nil
}

// RemoveEntry elimina un tránsito mientras el inventario siga activo y devuelve la fila eliminada.
func (l *TransitLedger) RemoveEntry(ctx context.Context, id string) (*entity.TransitRecord, error) {
	const op = "transit.remove"
	rec, err := l.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireActive(ctx, l.invRepo, op, rec.InventoryID); err != nil {
		return nil, err
	}
	if err := l.transitRepo.Delete(ctx, id); err != nil {
		return nil, writeError(op, id, err)
	}
	return rec, nil
}

// ListEntries lista los tránsitos de un inventario.
func (l *TransitLedger) ListEntries(ctx context.Context, inventoryID string) ([]*entity.TransitRecord, error) {
	list, err := l.transitRepo.ListByInventory(ctx, inventoryID)
	if err != nil {
		return nil, domain.Storage("transit.list", inventoryID, err)
	}
	return list, nil
}

func (l *TransitLedger) load(ctx context.Context, op, id string) (*entity.TransitRecord, error) {
	rec, err := l.transitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(op, id, err)
	}
	if rec == nil {
		return nil, domain.NotFound(op, "tránsito", id)
	}
	return rec, nil
}
