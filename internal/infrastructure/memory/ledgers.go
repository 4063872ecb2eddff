package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

// ── Conteos ──────────────────────────────────────────────────────────────────

var _ repository.CountEntryRepository = (*CountEntryRepo)(nil)

// CountEntryRepo implementa repository.CountEntryRepository en memoria.
type CountEntryRepo struct{ s *Store }

func cloneCount(e entity.CountEntry) *entity.CountEntry {
	if e.Transit != nil {
		comp := *e.Transit
		e.Transit = &comp
	}
	return &e
}

func (r *CountEntryRepo) Create(ctx context.Context, entry *entity.CountEntry) error {
	return r.createMany(OpCountCreate, []*entity.CountEntry{entry})
}

func (r *CountEntryRepo) CreateMany(_ context.Context, entries []*entity.CountEntry) error {
	return r.createMany(OpCountCreateMany, entries)
}

func (r *CountEntryRepo) createMany(op string, entries []*entity.CountEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return err
	}
	for _, e := range entries {
		if err := r.s.activeLocked(e.InventoryID); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		r.s.counts[e.ID] = *cloneCount(*e)
	}
	return nil
}

func (r *CountEntryRepo) GetByID(_ context.Context, id string) (*entity.CountEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.counts[id]
	if !ok {
		return nil, nil
	}
	return cloneCount(e), nil
}

func (r *CountEntryRepo) Update(_ context.Context, entry *entity.CountEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpCountUpdate); err != nil {
		return err
	}
	if _, ok := r.s.counts[entry.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.s.activeLocked(entry.InventoryID); err != nil {
		return err
	}
	r.s.counts[entry.ID] = *cloneCount(*entry)
	return nil
}

func (r *CountEntryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpCountDelete); err != nil {
		return err
	}
	e, ok := r.s.counts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.s.activeLocked(e.InventoryID); err != nil {
		return err
	}
	delete(r.s.counts, id)
	return nil
}

func (r *CountEntryRepo) List(_ context.Context, filter repository.CountFilter) ([]*entity.CountEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.fail(OpCountList); err != nil {
		return nil, err
	}
	list := make([]*entity.CountEntry, 0)
	for _, e := range r.s.counts {
		if filter.InventoryID != "" && e.InventoryID != filter.InventoryID {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		list = append(list, cloneCount(e))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CountedAt.Equal(list[j].CountedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CountedAt.After(list[j].CountedAt)
	})
	return list, nil
}

// ── Tránsitos ────────────────────────────────────────────────────────────────

var _ repository.TransitRecordRepository = (*TransitRepo)(nil)

// TransitRepo implementa repository.TransitRecordRepository en memoria.
type TransitRepo struct{ s *Store }

func cloneTransit(t entity.TransitRecord) *entity.TransitRecord {
	if t.ReceivedAt != nil {
		at := *t.ReceivedAt
		t.ReceivedAt = &at
	}
	return &t
}

func (r *TransitRepo) Create(_ context.Context, record *entity.TransitRecord) error {
	return r.createMany(OpTransitCreate, []*entity.TransitRecord{record})
}

func (r *TransitRepo) CreateMany(_ context.Context, records []*entity.TransitRecord) error {
	return r.createMany(OpTransitCreateMany, records)
}

func (r *TransitRepo) createMany(op string, records []*entity.TransitRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return err
	}
	for _, t := range records {
		if err := r.s.activeLocked(t.InventoryID); err != nil {
			return err
		}
	}
	for _, t := range records {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		r.s.transits[t.ID] = *cloneTransit(*t)
	}
	return nil
}

func (r *TransitRepo) GetByID(_ context.Context, id string) (*entity.TransitRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transits[id]
	if !ok {
		return nil, nil
	}
	return cloneTransit(t), nil
}

func (r *TransitRepo) Update(_ context.Context, record *entity.TransitRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpTransitUpdate); err != nil {
		return err
	}
	if _, ok := r.s.transits[record.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.s.activeLocked(record.InventoryID); err != nil {
		return err
	}
	r.s.transits[record.ID] = *cloneTransit(*record)
	return nil
}

func (r *TransitRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpTransitDelete); err != nil {
		return err
	}
	t, ok := r.s.transits[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.s.activeLocked(t.InventoryID); err != nil {
		return err
	}
	delete(r.s.transits, id)
	return nil
}

func (r *TransitRepo) ListByInventory(_ context.Context, inventoryID string) ([]*entity.TransitRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.TransitRecord, 0)
	for _, t := range r.s.transits {
		if inventoryID != "" && t.InventoryID != inventoryID {
			continue
		}
		list = append(list, cloneTransit(t))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SentAt.Equal(list[j].SentAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].SentAt.After(list[j].SentAt)
	})
	return list, nil
}

// ── Informes ─────────────────────────────────────────────────────────────────

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementa repository.ReportRepository en memoria.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) Upsert(_ context.Context, report *entity.FinalizationReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpReportUpsert); err != nil {
		return err
	}
	for id, existing := range r.s.reports {
		if existing.InventoryID == report.InventoryID {
			if existing.Status == entity.ReportStatusApproved {
				return domain.ErrInvalidState
			}
			report.ID = id
			break
		}
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	r.s.reports[report.ID] = *report
	return nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.FinalizationReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	return &rep, nil
}

func (r *ReportRepo) GetByInventory(_ context.Context, inventoryID string) (*entity.FinalizationReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rep := range r.s.reports {
		if rep.InventoryID == inventoryID {
			out := rep
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ReportRepo) Approve(_ context.Context, id, approver string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(OpReportApprove); err != nil {
		return err
	}
	rep, ok := r.s.reports[id]
	if !ok {
		return domain.ErrNotFound
	}
	if rep.Status != entity.ReportStatusDraft {
		return domain.ErrInvalidState
	}
	rep.Status = entity.ReportStatusApproved
	rep.ApprovedBy = approver
	rep.ApprovedAt = &at
	r.s.reports[id] = rep
	return nil
}
