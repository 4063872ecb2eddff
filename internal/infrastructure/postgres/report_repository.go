package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación de ReportRepository sobre PostgreSQL; los resúmenes van en JSONB.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

const reportSelect = `
	SELECT id, inventory_id, pending_stores_by_region, suppliers_missing, has_transit,
		store_summary, dc_summary, family_summary, status, COALESCE(approved_by, ''), approved_at, generated_at
	FROM finalization_reports`

func scanReport(row pgx.Row) (*entity.FinalizationReport, error) {
	var rep entity.FinalizationReport
	if err := row.Scan(&rep.ID, &rep.InventoryID, &rep.PendingStoresByRegion, &rep.SuppliersMissing, &rep.HasTransit,
		&rep.StoreSummary, &rep.DCSummary, &rep.FamilySummary, &rep.Status, &rep.ApprovedBy, &rep.ApprovedAt,
		&rep.GeneratedAt); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Upsert reemplaza el informe del inventario conservando su ID. Un informe aprobado no se
// reemplaza: domain.ErrInvalidState.
func (r *ReportRepo) Upsert(ctx context.Context, rep *entity.FinalizationReport) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	query := `
		INSERT INTO finalization_reports (id, inventory_id, pending_stores_by_region, suppliers_missing,
			has_transit, store_summary, dc_summary, family_summary, status, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (inventory_id) DO UPDATE SET
			pending_stores_by_region = EXCLUDED.pending_stores_by_region,
			suppliers_missing        = EXCLUDED.suppliers_missing,
			has_transit              = EXCLUDED.has_transit,
			store_summary            = EXCLUDED.store_summary,
			dc_summary               = EXCLUDED.dc_summary,
			family_summary           = EXCLUDED.family_summary,
			status                   = EXCLUDED.status,
			generated_at             = EXCLUDED.generated_at
		WHERE finalization_reports.status = 'draft'
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query, rep.ID, rep.InventoryID, rep.PendingStoresByRegion, rep.SuppliersMissing,
		rep.HasTransit, rep.StoreSummary, rep.DCSummary, rep.FamilySummary, rep.Status, rep.GeneratedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("upsert report: %w", err)
	}
	rep.ID = id
	return nil
}

// GetByID obtiene un informe; (nil, nil) si no existe.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.FinalizationReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, reportSelect+` WHERE id = $1`, id)
}

// GetByInventory obtiene el informe del inventario; (nil, nil) si no existe.
func (r *ReportRepo) GetByInventory(ctx context.Context, inventoryID string) (*entity.FinalizationReport, error) {
	if _, err := uuid.Parse(inventoryID); err != nil {
		return nil, nil
	}
	return r.getOne(ctx, reportSelect+` WHERE inventory_id = $1`, inventoryID)
}

func (r *ReportRepo) getOne(ctx context.Context, query, arg string) (*entity.FinalizationReport, error) {
	rep, err := scanReport(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// Approve pasa el informe de draft a approved.
func (r *ReportRepo) Approve(ctx context.Context, id, approver string, at time.Time) error {
	query := `
		UPDATE finalization_reports SET status = 'approved', approved_by = $2, approved_at = $3
		WHERE id = $1 AND status = 'draft'`
	tag, err := r.q.Exec(ctx, query, id, approver, at)
	if err != nil {
		return fmt.Errorf("approve report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return missingOrInactive(ctx, r.q, "finalization_reports", id)
	}
	return nil
}
