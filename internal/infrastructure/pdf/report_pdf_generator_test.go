package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
	dominv "github.com/jhoicas/inventario-ciclos/internal/domain/inventory"
)

func sampleDocument() report.Document {
	c := catalog.Default()
	now := time.Date(2026, time.March, 12, 18, 0, 0, 0, time.UTC)
	s := dominv.Aggregate([]entity.CountEntry{
		{Category: entity.CategoryStore, Origin: "Loja 1", AssetType: "HB 623", Quantity: 1200},
		{Category: entity.CategorySector, Origin: "CD RJ - Expedição", AssetType: "Palete PBR", Quantity: 40},
	}, []entity.TransitRecord{
		{ID: "t1", Origin: "CD São Paulo", Destination: "CD Rio de Janeiro", AssetType: "Dolly", Quantity: 3},
	}, c)
	return report.Document{
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
}

func TestGenerateReportPDF(t *testing.T) {
	b, err := NewMarotoReportGenerator().GenerateReportPDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "999", formatQty(999))
	assert.Equal(t, "25.000", formatQty(25000))
	assert.Equal(t, "1.000.000", formatQty(1000000))
	assert.Equal(t, "-1.500", formatQty(-1500))
}
