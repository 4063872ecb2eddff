package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// AddCountInput entrada de un conteo individual.
type AddCountInput struct {
	InventoryID string
	Category    string
	Origin      string
	Destination string
	AssetType   string
	Quantity    int
	Responsible string
	Transit     *entity.CountCompanion
}

// BulkCountInput carga masiva: mismo origen y categoría para todos los ítems.
type BulkCountInput struct {
	InventoryID string
	Category    string
	Origin      string
	Destination string
	Responsible string
	Items       []dominv.CountItem
}

// CountPatch campos editables de un conteo; nil = sin cambio.
// InventoryID, Origin y CountedAt se aceptan solo si no cambian el valor persistido.
type CountPatch struct {
	InventoryID *string
	Origin      *string
	CountedAt   *time.Time
	Category    *string
	Destination *string
	AssetType   *string
	Quantity    *int
	Responsible *string
	Transit     *entity.CountCompanion
}

// CountLedger libro de conteos. Cada escritura verifica en el momento que el inventario esté
// activo y dispara el recálculo de progreso.
type CountLedger struct {
	invRepo   repository.InventoryRepository
	countRepo repository.CountEntryRepository
	catalog   *catalog.Catalog
	progress  ProgressRecomputer
	log       *logger.Logger
	now       func() time.Time
}

// NewCountLedger construye el libro; progress puede ser nil si no se quiere recálculo.
func NewCountLedger(
	invRepo repository.InventoryRepository,
	countRepo repository.CountEntryRepository,
	c *catalog.Catalog,
	progress ProgressRecomputer,
	log *logger.Logger,
) *CountLedger {
	return &CountLedger{invRepo: invRepo, countRepo: countRepo, catalog: c, progress: progress, log: log, now: time.Now}
}

// WithNow reemplaza el reloj para pruebas deterministas.
func (l *CountLedger) WithNow(now func() time.Time) {
	if now != nil {
		l.now = now
	}
}

// AddEntry registra un conteo.
func (l *CountLedger) AddEntry(ctx context.Context, in AddCountInput) (*entity.CountEntry, error) {
	const op = "count.add"
	in.Origin = strings.TrimSpace(in.Origin)
	if err := dominv.ValidateCount(op, in.Category, in.Origin, in.AssetType, in.Quantity, in.Responsible); err != nil {
		return nil, err
	}
	companion, err := dominv.NormalizeCompanion(op, in.Category, in.Origin, in.Responsible, in.Transit, l.catalog)
	if err != nil {
		return nil, err
	}
	if _, err := requireActive(ctx, l.invRepo, op, in.InventoryID); err != nil {
		return nil, err
	}
	entry := &entity.CountEntry{
		ID:          uuid.New().String(),
		InventoryID: in.InventoryID,
		Category:    in.Category,
		Origin:      in.Origin,
		Destination: strings.TrimSpace(in.Destination),
		AssetType:   strings.TrimSpace(in.AssetType),
		Quantity:    in.Quantity,
		CountedAt:   l.now(),
		Responsible: strings.TrimSpace(in.Responsible),
		Transit:     companion,
	}
	if err := l.countRepo.Create(ctx, entry); err != nil {
		return nil, writeError(op, in.InventoryID, err)
	}
	l.refresh(ctx, in.InventoryID)
	return entry, nil
}

// AddEntriesBulk registra todos los ítems o ninguno.
func (l *CountLedger) AddEntriesBulk(ctx context.Context, in BulkCountInput) ([]*entity.CountEntry, error) {
	const op = "count.add_bulk"
	if len(in.Items) == 0 {
		return nil, domain.Validation(op, "se requiere al menos un ítem")
	}
	in.Origin = strings.TrimSpace(in.Origin)
	for _, item := range in.Items {
		if err := dominv.ValidateCount(op, in.Category, in.Origin, item.AssetType, item.Quantity, in.Responsible); err != nil {
			return nil, err
		}
	}
	if _, err := requireActive(ctx, l.invRepo, op, in.InventoryID); err != nil {
		return nil, err
	}
	now := l.now()
	entries := make([]*entity.CountEntry, 0, len(in.Items))
	for _, item := range in.Items {
		entries = append(entries, &entity.CountEntry{
			ID:          uuid.New().String(),
			InventoryID: in.InventoryID,
			Category:    in.Category,
			Origin:      in.Origin,
			Destination: strings.TrimSpace(in.Destination),
			AssetType:   strings.TrimSpace(item.AssetType),
			Quantity:    item.Quantity,
			CountedAt:   now,
			Responsible: strings.TrimSpace(in.Responsible),
		})
	}
	if err := l.countRepo.CreateMany(ctx, entries); err != nil {
		return nil, writeError(op, in.InventoryID, err)
	}
	l.refresh(ctx, in.InventoryID)
	return entries, nil
}

// EditEntry aplica un parche. Rechaza cambios de inventario, origen o fecha de conteo.
func (l *CountLedger) EditEntry(ctx context.Context, id string, patch CountPatch) (*entity.CountEntry, error) {
	const op = "count.edit"
	entry, err := l.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(op, id, err)
	}
	if entry == nil {
		return nil, domain.NotFound(op, "conteo", id)
	}
	if patch.InventoryID != nil && *patch.InventoryID != entry.InventoryID {
		return nil, domain.Validation(op, "el inventario de un conteo no se puede cambiar")
	}
	if patch.Origin != nil && strings.TrimSpace(*patch.Origin) != entry.Origin {
		return nil, domain.Validation(op, "el origen de un conteo no se puede cambiar")
	}
	if patch.CountedAt != nil && !patch.CountedAt.Equal(entry.CountedAt) {
		return nil, domain.Validation(op, "la fecha de conteo no se puede cambiar")
	}

	updated := *entry
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Destination != nil {
		updated.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.AssetType != nil {
		updated.AssetType = strings.TrimSpace(*patch.AssetType)
	}
	if patch.Quantity != nil {
		updated.Quantity = *patch.Quantity
	}
	if patch.Responsible != nil {
		updated.Responsible = strings.TrimSpace(*patch.Responsible)
	}
	if err := dominv.ValidateCount(op, updated.Category, updated.Origin, updated.AssetType, updated.Quantity, updated.Responsible); err != nil {
		return nil, err
	}
	comp := updated.Transit
	if patch.Transit != nil {
		comp = patch.Transit
	}
	if updated.Transit, err = dominv.NormalizeCompanion(op, updated.Category, updated.Origin, updated.Responsible, comp, l.catalog); err != nil {
		return nil, err
	}

	if _, err := requireActive(ctx, l.invRepo, op, entry.InventoryID); err != nil {
		return nil, err
	}
	if err := l.countRepo.Update(ctx, &updated); err != nil {
		return nil, writeError(op, id, err)
	}
	l.refresh(ctx, entry.InventoryID)
	return &updated, nil
}

// RemoveEntry elimina un conteo mientras el inventario siga activo y devuelve la fila eliminada.
func (l *CountLedger) RemoveEntry(ctx context.Context, id string) (*entity.CountEntry, error) {
	const op = "count.remove"
	entry, err := l.countRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(op, id, err)
	}
	if entry == nil {
		return nil, domain.NotFound(op, "conteo", id)
	}
	if _, err := requireActive(ctx, l.invRepo, op, entry.InventoryID); err != nil {
		return nil, err
	}
	if err := l.countRepo.Delete(ctx, id); err != nil {
		return nil, writeError(op, id, err)
	}
	l.refresh(ctx, entry.InventoryID)
	return entry, nil
}

// ListEntries lista conteos por inventario y/o categoría, del más reciente al más antiguo.
func (l *CountLedger) ListEntries(ctx context.Context, filter repository.CountFilter) ([]*entity.CountEntry, error) {
	const op = "count.list"
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, domain.Validation(op, "categoría inválida: "+filter.Category)
	}
	list, err := l.countRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage(op, filter.InventoryID, err)
	}
	return list, nil
}

// refresh recalcula el progreso; un fallo deja el snapshot desactualizado hasta la próxima mutación.
func (l *CountLedger) refresh(ctx context.Context, inventoryID string) {
	if l.progress == nil {
		return
	}
	if _, err := l.progress.Recompute(ctx, inventoryID); err != nil {
		l.log.Warn().Err(err).Str("inventory_id", inventoryID).Msg("recálculo de progreso fallido")
	}
}

// requireActive vuelve a leer el inventario justo antes de escribir.
func requireActive(ctx context.Context, invRepo repository.InventoryRepository, op, inventoryID string) (*entity.Inventory, error) {
	if strings.TrimSpace(inventoryID) == "" {
		return nil, domain.Validation(op, "inventario es requerido")
	}
	inv, err := invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, domain.Storage(op, inventoryID, err)
	}
	if inv == nil {
		return nil, domain.NotFound(op, "inventario", inventoryID)
	}
	if !inv.IsActive() {
		return nil, domain.State(op, inventoryID, "el inventario "+inv.Code+" está finalizado")
	}
	return inv, nil
}

// writeError traduce errores del repositorio en escrituras condicionadas.
func writeError(op, id string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return domain.State(op, id, "el inventario dejó de estar activo")
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(op, "registro", id)
	}
	return domain.Storage(op, id, err)
}
