package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

var _ repository.CountEntryRepository = (*CountEntryRepo)(nil)

// CountEntryRepo implementación de CountEntryRepository sobre PostgreSQL.
// Filas heredadas pueden traer el origen solo dentro de raw (loja, setor_cd, fornecedor...).
type CountEntryRepo struct {
	q Querier
}

// NewCountEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountEntryRepository(q Querier) *CountEntryRepo {
	return &CountEntryRepo{q: q}
}

var countColumns = []string{
	"id", "inventory_id", "category", "origin", "destination", "asset_type",
	"quantity", "counted_at", "responsible", "transit",
}

func scanCount(row pgx.Row) (*entity.CountEntry, error) {
	var (
		e   entity.CountEntry
		raw map[string]any
	)
	err := row.Scan(&e.ID, &e.InventoryID, &e.Category, &e.Origin, &e.Destination, &e.AssetType,
		&e.Quantity, &e.CountedAt, &e.Responsible, &e.Transit, &raw)
	if err != nil {
		return nil, err
	}
	if e.Origin == "" && raw != nil {
		e.Origin = dominv.ResolveOrigin(raw)
	}
	return &e, nil
}

const countSelect = `
	SELECT id, inventory_id, category, origin, destination, asset_type,
		quantity, counted_at, responsible, transit, raw
	FROM count_entries`

// Create inserta el conteo solo si el inventario sigue activo.
func (r *CountEntryRepo) Create(ctx context.Context, e *entity.CountEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO count_entries (inventory_id, id, category, origin, destination, asset_type,
			quantity, counted_at, responsible, transit)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::text,
			$7::int, $8::timestamptz, $9::text, $10::jsonb
		WHERE ` + activeGuard
	tag, err := r.q.Exec(ctx, query, e.InventoryID, e.ID, e.Category, e.Origin, e.Destination, e.AssetType,
		e.Quantity, e.CountedAt, e.Responsible, e.Transit)
	return guardedResult(tag, err, "create count entry")
}

// CreateMany inserta el lote con COPY dentro de una transacción que bloquea el inventario:
// todo o nada.
func (r *CountEntryRepo) CreateMany(ctx context.Context, entries []*entity.CountEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		locked := map[string]struct{}{}
		for _, e := range entries {
			if _, ok := locked[e.InventoryID]; ok {
				continue
			}
			if err := lockActive(ctx, tx, e.InventoryID); err != nil {
				return err
			}
			locked[e.InventoryID] = struct{}{}
		}
		rows := make([][]any, 0, len(entries))
		for _, e := range entries {
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			rows = append(rows, []any{e.ID, e.InventoryID, e.Category, e.Origin, e.Destination, e.AssetType,
				e.Quantity, e.CountedAt, e.Responsible, e.Transit})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"count_entries"}, countColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy count entries: %w", err)
		}
		return nil
	})
}

// GetByID obtiene un conteo; (nil, nil) si no existe.
func (r *CountEntryRepo) GetByID(ctx context.Context, id string) (*entity.CountEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	e, err := scanCount(r.q.QueryRow(ctx, countSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count entry: %w", err)
	}
	return e, nil
}

// Update reescribe los campos editables mientras el inventario siga activo.
func (r *CountEntryRepo) Update(ctx context.Context, e *entity.CountEntry) error {
	query := `
		UPDATE count_entries t SET category = $2, destination = $3, asset_type = $4,
			quantity = $5, responsible = $6, transit = $7
		WHERE t.id = $1 AND ` + activeParent
	tag, err := r.q.Exec(ctx, query, e.ID, e.Category, e.Destination, e.AssetType, e.Quantity, e.Responsible, e.Transit)
	if err != nil {
		return fmt.Errorf("update count entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return missingOrInactive(ctx, r.q, "count_entries", e.ID)
	}
	return nil
}

// Delete elimina el conteo mientras el inventario siga activo.
func (r *CountEntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM count_entries t WHERE t.id = $1 AND `+activeParent, id)
	if err != nil {
		return fmt.Errorf("delete count entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return missingOrInactive(ctx, r.q, "count_entries", id)
	}
	return nil
}

// List lista conteos filtrados, del más reciente al más antiguo.
func (r *CountEntryRepo) List(ctx context.Context, filter repository.CountFilter) ([]*entity.CountEntry, error) {
	query := countSelect + ` WHERE TRUE`
	args := []any{}
	if filter.InventoryID != "" {
		if _, err := uuid.Parse(filter.InventoryID); err != nil {
			return []*entity.CountEntry{}, nil
		}
		args = append(args, filter.InventoryID)
		query += fmt.Sprintf(" AND inventory_id = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += ` ORDER BY counted_at DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list count entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.CountEntry, 0)
	for rows.Next() {
		e, err := scanCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan count entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
