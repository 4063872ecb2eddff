package entity

import "time"

// Categorías de conteo.
const (
	CategoryStore    = "store"
	CategorySector   = "sector"
	CategorySupplier = "supplier"
)

// ValidCategory indica si la categoría pertenece al enum permitido.
func ValidCategory(c string) bool {
	switch c {
	case CategoryStore, CategorySector, CategorySupplier:
		return true
	}
	return false
}

// CountCompanion datos de tránsito que acompañan un conteo de tienda cuando el origen
// es uno de los alias de CD habilitados para tránsito.
type CountCompanion struct {
	AssetType   string
	Quantity    int
	Responsible string
}

// CountEntry cantidad contada de un tipo de activo en un origen dentro de un inventario.
type CountEntry struct {
	ID          string
	InventoryID string
	Category    string
	Origin      string
	Destination string // opcional
	AssetType   string
	Quantity    int
	CountedAt   time.Time
	Responsible string
	Transit     *CountCompanion // nil salvo tiendas alias de CD
}
