package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
	"github.com/jhoicas/inventario-ciclos/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

func TestGuardedResult(t *testing.T) {
	assert.NoError(t, guardedResult(pgconn.NewCommandTag("INSERT 0 1"), nil, "x"))
	assert.ErrorIs(t, guardedResult(pgconn.NewCommandTag("INSERT 0 0"), nil, "x"), domain.ErrInvalidState)

	cause := errors.New("boom")
	err := guardedResult(pgconn.CommandTag{}, cause, "create")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrInvalidState)
}

// Pruebas de integración: requieren TEST_DATABASE_URL apuntando a una base desechable.

func testPool(t *testing.T) Querier {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE finalization_reports, transit_records, count_entries, inventories`)
	require.NoError(t, err)
	return pool
}

func TestIntegration_CicloCompleto(t *testing.T) {
	q := testPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	invs := NewInventoryRepository(q)
	counts := NewCountEntryRepository(q)
	reports := NewReportRepository(q)

	inv := &entity.Inventory{Code: "INV-TST-1", Responsible: "Ana", Status: entity.InventoryStatusActive, StartedAt: now}
	require.NoError(t, invs.Create(ctx, inv))
	second := &entity.Inventory{Code: "INV-TST-2", Responsible: "Bruno", Status: entity.InventoryStatusActive, StartedAt: now}
	assert.ErrorIs(t, invs.Create(ctx, second), domain.ErrConflict)

	require.NoError(t, counts.CreateMany(ctx, []*entity.CountEntry{
		{InventoryID: inv.ID, Category: entity.CategoryStore, Origin: "Loja 1", AssetType: "HB 623", Quantity: 2, CountedAt: now, Responsible: "Ana"},
		{InventoryID: inv.ID, Category: entity.CategoryStore, Origin: "CD São Paulo", AssetType: "Dolly", Quantity: 1, CountedAt: now, Responsible: "Ana",
			Transit: &entity.CountCompanion{AssetType: "Dolly", Quantity: 3, Responsible: "Ana"}},
	}))
	list, err := counts.List(ctx, repository.CountFilter{InventoryID: inv.ID, Category: entity.CategoryStore})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	rep := &entity.FinalizationReport{
		InventoryID:           inv.ID,
		PendingStoresByRegion: map[string][]string{"Capital SP": {"Loja 2"}},
		StoreSummary:          map[string]entity.AssetQuantities{"Loja 1": {"HB 623": 2}},
		DCSummary:             map[string]*entity.DCSummary{"CD São Paulo": entity.NewDCSummary()},
		FamilySummary:         map[string]*entity.FamilySummary{"Caixas HB": {Store: 2, Total: 2}},
		Status:                entity.ReportStatusDraft,
		GeneratedAt:           now,
	}
	require.NoError(t, reports.Upsert(ctx, rep))
	firstID := rep.ID
	regen := *rep
	regen.ID = uuid.New().String()
	require.NoError(t, reports.Upsert(ctx, &regen))
	assert.Equal(t, firstID, regen.ID)

	require.NoError(t, invs.Finalize(ctx, inv.ID, now))
	require.NoError(t, reports.Approve(ctx, firstID, "Carla", now))
	assert.ErrorIs(t, reports.Upsert(ctx, &regen), domain.ErrInvalidState)
	assert.ErrorIs(t, reports.Approve(ctx, firstID, "Carla", now), domain.ErrInvalidState)

	err = counts.Create(ctx, &entity.CountEntry{InventoryID: inv.ID, Category: entity.CategoryStore, Origin: "Loja 2",
		AssetType: "HB 623", Quantity: 1, CountedAt: now, Responsible: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, counts.Delete(ctx, list[0].ID), domain.ErrInvalidState)

	got, err := reports.GetByInventory(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusApproved, got.Status)
	assert.Equal(t, 2, got.StoreSummary["Loja 1"]["HB 623"])
}
