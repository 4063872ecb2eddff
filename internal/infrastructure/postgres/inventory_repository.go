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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, code, responsible, status, started_at, ended_at,
	progress_stores, progress_sectors, progress_suppliers`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.Code, &inv.Responsible, &inv.Status, &inv.StartedAt, &inv.EndedAt,
		&inv.Progress.Stores, &inv.Progress.Sectors, &inv.Progress.Suppliers)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserta el inventario. El índice parcial ux_inventories_single_active convierte un
// segundo activo en domain.ErrConflict.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventories (id, code, responsible, status, started_at, ended_at,
			progress_stores, progress_sectors, progress_suppliers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.Code, inv.Responsible, inv.Status, inv.StartedAt, inv.EndedAt,
		inv.Progress.Stores, inv.Progress.Sectors, inv.Progress.Suppliers)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un inventario; (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	inv, err := scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetActive devuelve el inventario activo; (nil, nil) si no hay.
func (r *InventoryRepo) GetActive(ctx context.Context) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE status = 'active'`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active inventory: %w", err)
	}
	return inv, nil
}

// List lista inventarios del más reciente al más antiguo.
func (r *InventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Inventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateProgress guarda el snapshot de progreso.
func (r *InventoryRepo) UpdateProgress(ctx context.Context, id string, p entity.Progress) error {
	query := `
		UPDATE inventories SET progress_stores = $2, progress_sectors = $3, progress_suppliers = $4
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, p.Stores, p.Sectors, p.Suppliers); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// Finalize pasa el inventario a finalized solo si sigue activo.
func (r *InventoryRepo) Finalize(ctx context.Context, id string, endedAt time.Time) error {
	query := `
		UPDATE inventories SET status = 'finalized', ended_at = $2
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query, id, endedAt)
	return guardedResult(tag, err, "finalize inventory")
}

// Reactivate revierte Finalize (compensación de la saga de cierre).
func (r *InventoryRepo) Reactivate(ctx context.Context, id string) error {
	query := `UPDATE inventories SET status = 'active', ended_at = NULL WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("reactivate inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
