package entity

import "time"

// Estados del ciclo de inventario.
const (
	InventoryStatusActive    = "active"
	InventoryStatusFinalized = "finalized"
)

// Progress porcentaje de orígenes distintos contados por categoría (0–100).
type Progress struct {
	Stores    int `json:"stores"`
	Sectors   int `json:"sectors"`
	Suppliers int `json:"suppliers"`
}

// Inventory representa un ciclo de conteo completo; activo hasta su finalización.
// Como máximo un inventario puede estar activo en todo el sistema.
type Inventory struct {
	ID          string
	Code        string
	Responsible string
	Status      string
	StartedAt   time.Time
	EndedAt     *time.Time // nil hasta finalizar
	Progress    Progress
}

// IsActive indica si el inventario admite escrituras en los libros de conteo y tránsito.
func (i *Inventory) IsActive() bool {
	return i != nil && i.Status == InventoryStatusActive
}
