package inventory

import (
	"sort"

	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// Summaries resultado de la agregación del informe de cierre.
type Summaries struct {
	PendingStoresByRegion map[string][]string
	AllStoresCounted      bool
	HasSupplier           bool
	HasTransit            bool
	StoreSummary          map[string]entity.AssetQuantities
	DCSummary             map[string]*entity.DCSummary
	FamilySummary         map[string]*entity.FamilySummary

	// UnmatchedTransit IDs de tránsitos cuyo origen no corresponde a ninguna ciudad de CD.
	UnmatchedTransit []string
	// Unclassified tipos de activo sin familia (ordenados, sin repetidos).
	Unclassified []string
}

// Aggregate recorre conteos y tránsitos una sola vez y arma los tres resúmenes del informe
// junto con las validaciones. Es determinista: mismas entradas, mismas salidas.
func Aggregate(counts []entity.CountEntry, transits []entity.TransitRecord, c *catalog.Catalog) Summaries {
	s := Summaries{
		PendingStoresByRegion: map[string][]string{},
		StoreSummary:          map[string]entity.AssetQuantities{},
		DCSummary:             map[string]*entity.DCSummary{},
		FamilySummary:         map[string]*entity.FamilySummary{},
		HasTransit:            len(transits) > 0,
	}
	for _, dc := range c.DCs {
		s.DCSummary[dc.Name] = entity.NewDCSummary()
	}
	for _, g := range c.Families {
		s.FamilySummary[string(g.Family)] = &entity.FamilySummary{}
	}
	unclassified := map[string]struct{}{}
	family := func(assetType string) *entity.FamilySummary {
		f, ok := c.Classify(assetType)
		if !ok {
			unclassified[assetType] = struct{}{}
		}
		fs, exists := s.FamilySummary[string(f)]
		if !exists {
			fs = &entity.FamilySummary{}
			s.FamilySummary[string(f)] = fs
		}
		return fs
	}

	countedStores := map[string]struct{}{}
	for _, e := range counts {
		switch e.Category {
		case entity.CategoryStore:
			countedStores[e.Origin] = struct{}{}
			byAsset, ok := s.StoreSummary[e.Origin]
			if !ok {
				byAsset = entity.AssetQuantities{}
				s.StoreSummary[e.Origin] = byAsset
			}
			byAsset.Add(e.AssetType, e.Quantity)
			fs := family(e.AssetType)
			fs.Store += e.Quantity
			fs.Total += e.Quantity
			if e.Transit != nil {
				if dc, ok := c.DCByCity(e.Origin); ok {
					s.DCSummary[dc.Name].Transit.Add(e.Transit.AssetType, e.Transit.Quantity)
					tf := family(e.Transit.AssetType)
					tf.Transit += e.Transit.Quantity
					tf.Total += e.Transit.Quantity
				}
			}
		case entity.CategorySector:
			dc := c.DCBySector(e.Origin)
			s.DCSummary[dc.Name].Stock.Add(e.AssetType, e.Quantity)
			fs := family(e.AssetType)
			fs.DC += e.Quantity
			fs.Total += e.Quantity
		case entity.CategorySupplier:
			if e.Quantity > 0 {
				s.HasSupplier = true
			}
			dc := c.DCBySector(e.Origin)
			s.DCSummary[dc.Name].Supplier.Add(e.AssetType, e.Quantity)
			fs := family(e.AssetType)
			fs.Supplier += e.Quantity
			fs.Total += e.Quantity
		}
	}
	for _, t := range transits {
		dc, ok := c.DCByCity(t.Origin)
		if !ok {
			s.UnmatchedTransit = append(s.UnmatchedTransit, t.ID)
			continue
		}
		s.DCSummary[dc.Name].Transit.Add(t.AssetType, t.Quantity)
		fs := family(t.AssetType)
		fs.Transit += t.Quantity
		fs.Total += t.Quantity
	}

	for _, r := range c.Regions {
		var pending []string
		for _, store := range r.Stores {
			if _, ok := countedStores[store]; !ok {
				pending = append(pending, store)
			}
		}
		if len(pending) > 0 {
			s.PendingStoresByRegion[r.Name] = pending
		}
	}
	s.AllStoresCounted = len(s.PendingStoresByRegion) == 0

	for a := range unclassified {
		s.Unclassified = append(s.Unclassified, a)
	}
	sort.Strings(s.Unclassified)
	return s
}
