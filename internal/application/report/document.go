package report

import (
	"sort"

	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// Document datos que necesitan los exportadores; nunca recalculan agregados.
// Los métodos de orden dan a PDF y XLSX el mismo orden de catálogo.
type Document struct {
	Inventory *entity.Inventory
	Report    *entity.FinalizationReport
	Catalog   *catalog.Catalog
}

// Families familias presentes en el informe: primero las del catálogo, luego el resto ordenado.
func (d Document) Families() []string {
	known := make([]string, 0, len(d.Catalog.Families)+1)
	for _, g := range d.Catalog.Families {
		known = append(known, string(g.Family))
	}
	return catalogFirst(known, keys(d.Report.FamilySummary))
}

// DCs nombres de CD en orden de catálogo.
func (d Document) DCs() []string {
	known := make([]string, 0, len(d.Catalog.DCs))
	for _, dc := range d.Catalog.DCs {
		known = append(known, dc.Name)
	}
	return catalogFirst(known, keys(d.Report.DCSummary))
}

// Stores tiendas con conteos, en orden de catálogo.
func (d Document) Stores() []string {
	return catalogFirst(d.Catalog.Origins(entity.CategoryStore), keys(d.Report.StoreSummary))
}

// Regions regiones con tiendas pendientes, en orden de catálogo.
func (d Document) Regions() []string {
	known := make([]string, 0, len(d.Catalog.Regions))
	for _, r := range d.Catalog.Regions {
		known = append(known, r.Name)
	}
	return catalogFirst(known, keys(d.Report.PendingStoresByRegion))
}

// Assets tipos de activo de q en orden de catálogo.
func (d Document) Assets(q entity.AssetQuantities) []string {
	return catalogFirst(d.Catalog.AssetTypes, keys(q))
}

// DCAssets unión de tipos de activo de los tres buckets de un CD.
func (d Document) DCAssets(s *entity.DCSummary) []string {
	all := entity.AssetQuantities{}
	for _, q := range []entity.AssetQuantities{s.Stock, s.Supplier, s.Transit} {
		for a := range q {
			all[a] = 0
		}
	}
	return d.Assets(all)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// catalogFirst ordena present según known y agrega al final los desconocidos en orden alfabético.
func catalogFirst(known, present []string) []string {
	set := make(map[string]struct{}, len(present))
	for _, p := range present {
		set[p] = struct{}{}
	}
	out := make([]string, 0, len(present))
	for _, k := range known {
		if _, ok := set[k]; ok {
			out = append(out, k)
			delete(set, k)
		}
	}
	rest := keys(set)
	sort.Strings(rest)
	return append(out, rest...)
}
