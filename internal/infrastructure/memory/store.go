// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory y como doble de prueba: FailOn inyecta errores por operación.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

// Operaciones que admiten inyección de fallas.
const (
	OpInventoryCreate     = "inventory.create"
	OpInventoryFinalize   = "inventory.finalize"
	OpInventoryReactivate = "inventory.reactivate"
	OpInventoryProgress   = "inventory.progress"
	OpCountCreate         = "count.create"
	OpCountCreateMany     = "count.create_many"
	OpCountUpdate         = "count.update"
	OpCountDelete         = "count.delete"
	OpCountList           = "count.list"
	OpTransitCreate       = "transit.create"
	OpTransitCreateMany   = "transit.create_many"
	OpTransitUpdate       = "transit.update"
	OpTransitDelete       = "transit.delete"
	OpReportUpsert        = "report.upsert"
	OpReportApprove       = "report.approve"
)

// Store almacena las cuatro colecciones bajo un único mutex.
type Store struct {
	mu          sync.RWMutex
	inventories map[string]entity.Inventory
	counts      map[string]entity.CountEntry
	transits    map[string]entity.TransitRecord
	reports     map[string]entity.FinalizationReport
	failures    map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		inventories: map[string]entity.Inventory{},
		counts:      map[string]entity.CountEntry{},
		transits:    map[string]entity.TransitRecord{},
		reports:     map[string]entity.FinalizationReport{},
		failures:    map[string]error{},
	}
}

// FailOn hace que la operación op devuelva err hasta que se limpie con FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// activeLocked replica la escritura condicionada del adaptador PostgreSQL.
func (s *Store) activeLocked(inventoryID string) error {
	inv, ok := s.inventories[inventoryID]
	if !ok || inv.Status != entity.InventoryStatusActive {
		return domain.ErrInvalidState
	}
	return nil
}

// Inventories, Counts, Transits y Reports exponen los repositorios sobre el mismo almacén.
func (s *Store) Inventories() *InventoryRepo { return &InventoryRepo{s: s} }
func (s *Store) Counts() *CountEntryRepo     { return &CountEntryRepo{s: s} }
func (s *Store) Transits() *TransitRepo      { return &TransitRepo{s: s} }
func (s *Store) Reports() *ReportRepo        { return &ReportRepo{s: s} }

// ── Inventarios ──────────────────────────────────────────────────────────────

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementa repository.InventoryRepository en memoria.
type InventoryRepo struct{ s *Store }

func (r *InventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpInventoryCreate); err != nil {
		return err
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == entity.InventoryStatusActive {
		for _, other := range r.s.inventories {
			if other.Status == entity.InventoryStatusActive {
				return domain.ErrConflict
			}
		}
	}
	r.s.inventories[inv.ID] = *inv
	return nil
}

func (r *InventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InventoryRepo) GetActive(_ context.Context) (*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.inventories {
		if inv.Status == entity.InventoryStatusActive {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *InventoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Inventory, 0, len(r.s.inventories))
	for _, inv := range r.s.inventories {
		out := inv
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartedAt.After(list[j].StartedAt) })
	return page(list, limit, offset), nil
}

func (r *InventoryRepo) UpdateProgress(_ context.Context, id string, progress entity.Progress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpInventoryProgress); err != nil {
		return err
	}
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil
	}
	inv.Progress = progress
	r.s.inventories[id] = inv
	return nil
}

func (r *InventoryRepo) Finalize(_ context.Context, id string, endedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpInventoryFinalize); err != nil {
		return err
	}
	inv, ok := r.s.inventories[id]
	if !ok || inv.Status != entity.InventoryStatusActive {
		return domain.ErrInvalidState
	}
	inv.Status = entity.InventoryStatusFinalized
	inv.EndedAt = &endedAt
	r.s.inventories[id] = inv
	return nil
}

func (r *InventoryRepo) Reactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpInventoryReactivate); err != nil {
		return err
	}
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = entity.InventoryStatusActive
	inv.EndedAt = nil
	r.s.inventories[id] = inv
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
