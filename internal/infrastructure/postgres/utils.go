package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// activeGuard condición de escritura: el inventario referenciado sigue activo.
const activeGuard = `EXISTS (SELECT 1 FROM inventories i WHERE i.id = $1 AND i.status = 'active')`

// activeParent versión correlacionada de activeGuard para UPDATE/DELETE sobre la tabla alias t.
const activeParent = `EXISTS (SELECT 1 FROM inventories i WHERE i.id = t.inventory_id AND i.status = 'active')`

// guardedResult traduce el resultado de una escritura condicionada por activeGuard.
// Cero filas afectadas = el inventario dejó de estar activo.
func guardedResult(tag pgconn.CommandTag, err error, what string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// missingOrInactive distingue, tras cero filas afectadas, un registro inexistente de un
// inventario que dejó de estar activo.
func missingOrInactive(ctx context.Context, q Querier, table, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

// inTx ejecuta fn dentro de una transacción; Rollback salvo Commit exitoso.
func inTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// lockActive bloquea la fila del inventario en modo compartido y verifica que esté activo.
func lockActive(ctx context.Context, tx pgx.Tx, inventoryID string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM inventories WHERE id = $1 FOR SHARE`, inventoryID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("lock inventory: %w", err)
	}
	if status != "active" {
		return domain.ErrInvalidState
	}
	return nil
}
