package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
)

func TestExportReportXLSX(t *testing.T) {
	c := catalog.Default()
	now := time.Date(2026, time.March, 12, 18, 0, 0, 0, time.UTC)
	s := dominv.Aggregate([]entity.CountEntry{
		{Category: entity.CategoryStore, Origin: "Loja 1", AssetType: "HB 623", Quantity: 5},
		{Category: entity.CategoryStore, Origin: "Loja 1", AssetType: "Dolly", Quantity: 2},
		{Category: entity.CategorySupplier, Origin: "Logibox", AssetType: "Palete PBR", Quantity: 9},
	}, nil, c)
	doc := report.Document{
		Catalog:   c,
		Inventory: &entity.Inventory{Code: "INV-MAR-20260310-00001", Responsible: "Ana", StartedAt: now},
		Report: &entity.FinalizationReport{
			PendingStoresByRegion: s.PendingStoresByRegion,
			SuppliersMissing:      !s.HasSupplier,
			HasTransit:            s.HasTransit,
			StoreSummary:          s.StoreSummary,
			DCSummary:             s.DCSummary,
			FamilySummary:         s.FamilySummary,
			Status:                entity.ReportStatusDraft,
			GeneratedAt:           now,
		},
	}

	b, err := NewReportExporter().ExportReportXLSX(context.Background(), doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetSummary, SheetFamilies, SheetDCs, SheetStores, SheetPending}, f.GetSheetList())

	code, err := f.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "INV-MAR-20260310-00001", code)

	rows, err := f.GetRows(SheetStores)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Loja 1", "HB 623", "5"}, rows[1])
	assert.Equal(t, []string{"Loja 1", "Dolly", "2"}, rows[2])

	pending, err := f.GetRows(SheetPending)
	require.NoError(t, err)
	assert.Equal(t, []string{"Capital SP", "Loja 2, Loja 3, Loja 4, Loja 5, Loja 6, Loja 7, Loja 8, Loja 9, Loja 10, Loja 11, Loja 12, Loja 13, Loja 14, Loja 15", "14"}, pending[1])
}
