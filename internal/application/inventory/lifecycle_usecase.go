package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/logger"
)

// LifecycleUseCase administra la creación y finalización de ciclos de inventario.
// Mantiene el invariante de un único inventario activo: bloqueo + verificación + índice único en BD.
type LifecycleUseCase struct {
	invRepo repository.InventoryRepository
	gate    *FinalizationGate
	locker  Locker
	log     *logger.Logger
	now     func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	invRepo repository.InventoryRepository,
	gate *FinalizationGate,
	locker Locker,
	log *logger.Logger,
) *LifecycleUseCase {
	if locker == nil {
		locker = NewMutexLocker()
	}
	return &LifecycleUseCase{invRepo: invRepo, gate: gate, locker: locker, log: log, now: time.Now}
}

// WithNow reemplaza el reloj para pruebas deterministas.
func (uc *LifecycleUseCase) WithNow(now func() time.Time) {
	if now != nil {
		uc.now = now
	}
}

// StartInventory crea un inventario activo.
// ErrInvalidInput si responsible está vacío; ErrConflict si ya hay uno activo.
func (uc *LifecycleUseCase) StartInventory(ctx context.Context, responsible string) (*entity.Inventory, error) {
	const op = "inventory.start"
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return nil, domain.Validation(op, "responsable es requerido")
	}

	unlock, err := uc.locker.Lock(ctx, StartLockKey)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(op, "otro inventario se está creando en este momento")
		}
		return nil, domain.Storage(op, "", err)
	}
	defer unlock()

	active, err := uc.invRepo.GetActive(ctx)
	if err != nil {
		return nil, domain.Storage(op, "", err)
	}
	if active != nil {
		return nil, domain.Conflict(op, "ya existe un inventario activo: "+active.Code)
	}

	now := uc.now()
	inv := &entity.Inventory{
		ID:          uuid.New().String(),
		Code:        dominv.GenerateCode(now),
		Responsible: responsible,
		Status:      entity.InventoryStatusActive,
		StartedAt:   now,
	}
	if err := uc.invRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(op, "ya existe un inventario activo")
		}
		return nil, domain.Storage(op, inv.ID, err)
	}
	uc.log.Info().Str("inventory_id", inv.ID).Str("code", inv.Code).Str("responsible", responsible).
		Msg("inventario iniciado")
	return inv, nil
}

// GetActiveInventory devuelve el inventario activo o nil si no hay ninguno.
func (uc *LifecycleUseCase) GetActiveInventory(ctx context.Context) (*entity.Inventory, error) {
	inv, err := uc.invRepo.GetActive(ctx)
	if err != nil {
		return nil, domain.Storage("inventory.active", "", err)
	}
	return inv, nil
}

// GetByID obtiene un inventario; ErrNotFound si no existe.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	const op = "inventory.get"
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage(op, id, err)
	}
	if inv == nil {
		return nil, domain.NotFound(op, "inventario", id)
	}
	return inv, nil
}

// List lista inventarios del más reciente al más antiguo.
func (uc *LifecycleUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	list, err := uc.invRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.Storage("inventory.list", "", err)
	}
	return list, nil
}

// RequestFinalization cierra el inventario aprobando su informe (ver FinalizationGate).
func (uc *LifecycleUseCase) RequestFinalization(ctx context.Context, inventoryID, reportID, approver string) (*FinalizationResult, error) {
	return uc.gate.Finalize(ctx, inventoryID, reportID, approver)
}
