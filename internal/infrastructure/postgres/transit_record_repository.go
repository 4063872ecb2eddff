package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

var _ repository.TransitRecordRepository = (*TransitRecordRepo)(nil)

// TransitRecordRepo implementación de TransitRecordRepository sobre PostgreSQL.
type TransitRecordRepo struct {
	q Querier
}

// NewTransitRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransitRecordRepository(q Querier) *TransitRecordRepo {
	return &TransitRecordRepo{q: q}
}

var transitColumns = []string{
	"id", "inventory_id", "origin", "destination", "asset_type", "quantity", "status", "sent_at", "received_at",
}

const transitSelect = `
	SELECT id, inventory_id, origin, destination, asset_type, quantity, status, sent_at, received_at
	FROM transit_records`

func scanTransit(row pgx.Row) (*entity.TransitRecord, error) {
	var t entity.TransitRecord
	if err := row.Scan(&t.ID, &t.InventoryID, &t.Origin, &t.Destination, &t.AssetType,
		&t.Quantity, &t.Status, &t.SentAt, &t.ReceivedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta el tránsito solo si el inventario sigue activo.
func (r *TransitRecordRepo) Create(ctx context.Context, t *entity.TransitRecord) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transit_records (inventory_id, id, origin, destination, asset_type, quantity,
			status, sent_at, received_at)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text, $6::int,
			$7::text, $8::timestamptz, $9::timestamptz
		WHERE ` + activeGuard
	tag, err := r.q.Exec(ctx, query, t.InventoryID, t.ID, t.Origin, t.Destination, t.AssetType, t.Quantity,
		t.Status, t.SentAt, t.ReceivedAt)
	return guardedResult(tag, err, "create transit record")
}

// CreateMany inserta el lote con COPY: todo o nada.
func (r *TransitRecordRepo) CreateMany(ctx context.Context, records []*entity.TransitRecord) error {
	if len(records) == 0 {
		return nil
	}
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		locked := map[string]struct{}{}
		rows := make([][]any, 0, len(records))
		for _, t := range records {
			if _, ok := locked[t.InventoryID]; !ok {
				if err := lockActive(ctx, tx, t.InventoryID); err != nil {
					return err
				}
				locked[t.InventoryID] = struct{}{}
			}
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			rows = append(rows, []any{t.ID, t.InventoryID, t.Origin, t.Destination, t.AssetType,
				t.Quantity, t.Status, t.SentAt, t.ReceivedAt})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"transit_records"}, transitColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy transit records: %w", err)
		}
		return nil
	})
}

// GetByID obtiene un tránsito; (nil, nil) si no existe.
func (r *TransitRecordRepo) GetByID(ctx context.Context, id string) (*entity.TransitRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	t, err := scanTransit(r.q.QueryRow(ctx, transitSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transit record: %w", err)
	}
	return t, nil
}

// Update reescribe destino, activo, cantidad y estado mientras el inventario siga activo.
func (r *TransitRecordRepo) Update(ctx context.Context, t *entity.TransitRecord) error {
	query := `
		UPDATE transit_records t SET destination = $2, asset_type = $3, quantity = $4,
			status = $5, received_at = $6
		WHERE t.id = $1 AND ` + activeParent
	tag, err := r.q.Exec(ctx, query, t.ID, t.Destination, t.AssetType, t.Quantity, t.Status, t.ReceivedAt)
	if err != nil {
		return fmt.Errorf("update transit record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return missingOrInactive(ctx, r.q, "transit_records", t.ID)
	}
	return nil
}

// Delete elimina el tránsito mientras el inventario siga activo.
func (r *TransitRecordRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transit_records t WHERE t.id = $1 AND `+activeParent, id)
	if err != nil {
		return fmt.Errorf("delete transit record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return missingOrInactive(ctx, r.q, "transit_records", id)
	}
	return nil
}

// ListByInventory lista los tránsitos del inventario, del más reciente al más antiguo.
func (r *TransitRecordRepo) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.TransitRecord, error) {
	if _, err := uuid.Parse(inventoryID); err != nil {
		return []*entity.TransitRecord{}, nil
	}
	rows, err := r.q.Query(ctx, transitSelect+` WHERE inventory_id = $1 ORDER BY sent_at DESC, id`, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list transit records: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.TransitRecord, 0)
	for rows.Next() {
		t, err := scanTransit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transit record: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
