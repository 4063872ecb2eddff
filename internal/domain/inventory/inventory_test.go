package inventory

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// ── Código ───────────────────────────────────────────────────────────────────

func TestFormatCode(t *testing.T) {
	now := time.Date(2026, time.February, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-FEV-20260207-00042", formatCode(now, 42))
}

func TestGenerateCode_Patron(t *testing.T) {
	code := GenerateCode(time.Now())
	assert.Regexp(t, regexp.MustCompile(`^INV-[A-Z]{3}-\d{8}-\d{5}$`), code)
}

// ── Origen ───────────────────────────────────────────────────────────────────

func TestResolveOrigin_Prioridad(t *testing.T) {
	assert.Equal(t, "Loja 1", ResolveOrigin(map[string]any{"origin": "Loja 1", "loja": "Loja 2"}))
	assert.Equal(t, "Loja 2", ResolveOrigin(map[string]any{"origin": nil, "loja": "Loja 2"}))
	assert.Equal(t, "CD SP - Expedição", ResolveOrigin(map[string]any{"origin": "  ", "setorCd": "CD SP - Expedição"}))
	assert.Equal(t, "Logibox", ResolveOrigin(map[string]any{"fornecedor": "Logibox", "cd_origem": "CD São Paulo"}))
	assert.Equal(t, "CD São Paulo", ResolveOrigin(map[string]any{"cdOrigem": "CD São Paulo"}))
	assert.Equal(t, "", ResolveOrigin(map[string]any{"destino": "x"}))
}

// ── Progreso ─────────────────────────────────────────────────────────────────

func storeEntry(origin, asset string, qty int) entity.CountEntry {
	return entity.CountEntry{Category: entity.CategoryStore, Origin: origin, AssetType: asset, Quantity: qty}
}

func TestComputeProgress_UnaTiendaDeCincuenta(t *testing.T) {
	p := ComputeProgress([]entity.CountEntry{storeEntry("Loja 10", "HB 623", 5)}, catalog.Default())
	assert.Equal(t, 2, p.Stores)
	assert.Equal(t, 0, p.Sectors)
	assert.Equal(t, 0, p.Suppliers)
}

func TestComputeProgress_OrigenRepetidoCuentaUnaVez(t *testing.T) {
	c := catalog.Default()
	entries := []entity.CountEntry{
		storeEntry("Loja 1", "HB 623", 5),
		storeEntry("Loja 1", "HB 618", 3),
		storeEntry("Loja 1", "Dolly", 1),
	}
	before := ComputeProgress(entries[:1], c)
	after := ComputeProgress(entries, c)
	assert.Equal(t, before, after)
}

func TestComputeProgress_MonotonoYAcotado(t *testing.T) {
	c := catalog.Default()
	var entries []entity.CountEntry
	prev := entity.Progress{}
	for _, r := range c.Regions {
		for _, s := range r.Stores {
			entries = append(entries, storeEntry(s, "HB 623", 1))
			p := ComputeProgress(entries, c)
			assert.GreaterOrEqual(t, p.Stores, prev.Stores)
			assert.LessOrEqual(t, p.Stores, 100)
			prev = p
		}
	}
	assert.Equal(t, 100, prev.Stores)

	// Orígenes desconocidos no superan el 100%.
	entries = append(entries, storeEntry("Loja 999", "HB 623", 1))
	assert.Equal(t, 100, ComputeProgress(entries, c).Stores)
}

func TestComputeProgress_Proveedores(t *testing.T) {
	c := catalog.Default()
	p := ComputeProgress([]entity.CountEntry{
		{Category: entity.CategorySupplier, Origin: "Plastimax", AssetType: "HB 623", Quantity: 1},
		{Category: entity.CategorySupplier, Origin: "Logibox", AssetType: "HB 623", Quantity: 1},
	}, c)
	assert.Equal(t, 67, p.Suppliers)
}

func TestPercent_RedondeoMitadArriba(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 50))
	assert.Equal(t, 2, Percent(1, 50))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 13, Percent(1, 8)) // 12.5 → 13
	assert.Equal(t, 100, Percent(9, 8))
	assert.Equal(t, 0, Percent(3, 0))
}

// ── Validación ───────────────────────────────────────────────────────────────

func TestValidateCount(t *testing.T) {
	assert.NoError(t, ValidateCount("op", "store", "Loja 1", "HB 623", 1, "Ana"))
	for name, err := range map[string]error{
		"categoria":   ValidateCount("op", "warehouse", "Loja 1", "HB 623", 1, "Ana"),
		"origen":      ValidateCount("op", "store", " ", "HB 623", 1, "Ana"),
		"cantidad":    ValidateCount("op", "store", "Loja 1", "HB 623", 0, "Ana"),
		"responsable": ValidateCount("op", "store", "Loja 1", "HB 623", 1, ""),
		"activo":      ValidateCount("op", "store", "Loja 1", "", 1, "Ana"),
	} {
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestValidateTransit_OrigenIgualDestino(t *testing.T) {
	err := ValidateTransit("op", "CD São Paulo", "CD São Paulo", "HB 623", 1, entity.TransitStatusSent)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "origin and destination cannot be equal")

	assert.ErrorIs(t, ValidateTransit("op", "A", "B", "HB 623", 1, "lost"), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateTransit("op", "A", "B", "HB 623", -1, "sent"), domain.ErrInvalidInput)
}

func TestNormalizeCompanion(t *testing.T) {
	c := catalog.Default()
	comp := &entity.CountCompanion{AssetType: "HB 623", Quantity: 4}

	out, err := NormalizeCompanion("op", entity.CategoryStore, "CD São Paulo", "Ana", comp, c)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Ana", out.Responsible)

	out, err = NormalizeCompanion("op", entity.CategoryStore, "CD São Paulo", "Ana", &entity.CountCompanion{AssetType: " ", Quantity: 4}, c)
	require.NoError(t, err)
	assert.Nil(t, out, "tipo de activo vacío descarta el tránsito en silencio")

	out, err = NormalizeCompanion("op", entity.CategoryStore, "Loja 1", "Ana", comp, c)
	require.NoError(t, err)
	assert.Nil(t, out, "solo alias de CD admiten tránsito")

	_, err = NormalizeCompanion("op", entity.CategoryStore, "CD Rio de Janeiro", "Ana", &entity.CountCompanion{AssetType: "HB 623"}, c)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Agregación ───────────────────────────────────────────────────────────────

func TestAggregate_ResumenesYValidaciones(t *testing.T) {
	c := catalog.Default()
	counts := []entity.CountEntry{
		storeEntry("Loja 1", "HB 623", 5),
		storeEntry("Loja 1", "HB 623", 2),
		storeEntry("Loja 2", "Engradado Madeira", 1),
		{Category: entity.CategoryStore, Origin: "CD São Paulo", AssetType: "Dolly", Quantity: 3,
			Transit: &entity.CountCompanion{AssetType: "Dolly", Quantity: 2}},
		{Category: entity.CategorySector, Origin: "CD ES - Armazenagem", AssetType: "Palete PBR", Quantity: 10},
		{Category: entity.CategorySector, Origin: "CD SP - Recebimento", AssetType: "Palete PBR", Quantity: 4},
		{Category: entity.CategorySupplier, Origin: "Plastimax", AssetType: "HB 618", Quantity: 7},
	}
	transits := []entity.TransitRecord{
		{ID: "t1", Origin: "CD Rio de Janeiro", Destination: "CD São Paulo", AssetType: "HB 623", Quantity: 6},
		{ID: "t2", Origin: "CD Curitiba", Destination: "CD São Paulo", AssetType: "HB 623", Quantity: 9},
	}

	s := Aggregate(counts, transits, c)

	assert.True(t, s.HasSupplier)
	assert.True(t, s.HasTransit)
	assert.False(t, s.AllStoresCounted)
	assert.Len(t, s.PendingStoresByRegion["Capital SP"], 13)
	assert.NotContains(t, s.PendingStoresByRegion["Capital SP"], "Loja 1")

	assert.Equal(t, 7, s.StoreSummary["Loja 1"]["HB 623"])
	assert.Equal(t, 10, s.DCSummary["CD Espírito Santo"].Stock["Palete PBR"])
	assert.Equal(t, 4, s.DCSummary["CD São Paulo"].Stock["Palete PBR"])
	assert.Equal(t, 7, s.DCSummary["CD São Paulo"].Supplier["HB 618"])
	assert.Equal(t, 6, s.DCSummary["CD Rio de Janeiro"].Transit["HB 623"])
	assert.Equal(t, 2, s.DCSummary["CD São Paulo"].Transit["Dolly"])
	assert.Equal(t, []string{"t2"}, s.UnmatchedTransit)

	hb := s.FamilySummary[string(catalog.FamilyHB)]
	assert.Equal(t, entity.FamilySummary{Store: 7, Supplier: 7, Transit: 6, Total: 20}, *hb)
	pallets := s.FamilySummary[string(catalog.FamilyPallets)]
	assert.Equal(t, entity.FamilySummary{DC: 14, Total: 14}, *pallets)
	handling := s.FamilySummary[string(catalog.FamilyHandling)]
	assert.Equal(t, entity.FamilySummary{Store: 3, Transit: 2, Total: 5}, *handling)
	assert.Equal(t, 1, s.FamilySummary[string(catalog.FamilyOther)].Store)
	assert.Equal(t, []string{"Engradado Madeira"}, s.Unclassified)
}

func TestAggregate_TodasLasTiendas(t *testing.T) {
	c := catalog.Default()
	var counts []entity.CountEntry
	for _, r := range c.Regions {
		for _, s := range r.Stores {
			counts = append(counts, storeEntry(s, "HB 623", 1))
		}
	}
	s := Aggregate(counts, nil, c)
	assert.True(t, s.AllStoresCounted)
	assert.Empty(t, s.PendingStoresByRegion)
	assert.False(t, s.HasSupplier)
	assert.False(t, s.HasTransit)
}

func TestAggregate_Determinista(t *testing.T) {
	c := catalog.Default()
	counts := []entity.CountEntry{storeEntry("Loja 3", "HB 623", 1), storeEntry("Loja 4", "Gaiola", 2)}
	assert.Equal(t, Aggregate(counts, nil, c), Aggregate(counts, nil, c))
}
