package inventory

import (
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// ComputeProgress calcula el porcentaje de orígenes distintos contados por categoría.
// Un origen cuenta una sola vez sin importar cuántos tipos de activo registró; solo los
// orígenes presentes en el catálogo suman al numerador, así el resultado queda en [0, 100].
func ComputeProgress(entries []entity.CountEntry, c *catalog.Catalog) entity.Progress {
	seen := map[string]map[string]struct{}{
		entity.CategoryStore:    {},
		entity.CategorySector:   {},
		entity.CategorySupplier: {},
	}
	for _, e := range entries {
		origins, ok := seen[e.Category]
		if !ok || !c.Known(e.Category, e.Origin) {
			continue
		}
		origins[e.Origin] = struct{}{}
	}
	return entity.Progress{
		Stores:    Percent(len(seen[entity.CategoryStore]), c.StoreTotal()),
		Sectors:   Percent(len(seen[entity.CategorySector]), c.SectorTotal()),
		Suppliers: Percent(len(seen[entity.CategorySupplier]), catalog.SupplierTotal),
	}
}

// Percent redondea n/total*100 al entero más cercano (mitad hacia arriba), acotado a [0, 100].
func Percent(n, total int) int {
	if total <= 0 || n <= 0 {
		return 0
	}
	p := (n*200 + total) / (2 * total)
	if p > 100 {
		return 100
	}
	return p
}
