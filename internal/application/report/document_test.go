package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

func TestDocument_OrdenDeCatalogo(t *testing.T) {
	d := Document{
		Catalog: catalog.Default(),
		Report: &entity.FinalizationReport{
			StoreSummary: map[string]entity.AssetQuantities{
				"Loja 10":      {"Gaiola": 1, "HB 623": 2, "Engradado": 1},
				"Loja 2":       {"HB 623": 1},
				"CD São Paulo": {"Dolly": 1},
			},
			FamilySummary: map[string]*entity.FamilySummary{
				"Outros": {}, "Paletes": {}, "Caixas HB": {},
			},
			PendingStoresByRegion: map[string][]string{"Espírito Santo": {"Loja 45"}, "Capital SP": {"Loja 1"}},
		},
	}
	assert.Equal(t, []string{"Loja 2", "Loja 10", "CD São Paulo"}, d.Stores())
	assert.Equal(t, []string{"Caixas HB", "Paletes", "Outros"}, d.Families())
	assert.Equal(t, []string{"Capital SP", "Espírito Santo"}, d.Regions())
	assert.Equal(t, []string{"HB 623", "Gaiola", "Engradado"}, d.Assets(d.Report.StoreSummary["Loja 10"]))
}
