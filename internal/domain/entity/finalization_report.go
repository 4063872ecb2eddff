package entity

import "time"

// Estados del informe de cierre.
const (
	ReportStatusDraft    = "draft"
	ReportStatusApproved = "approved"
)

// AssetQuantities cantidad acumulada por tipo de activo.
type AssetQuantities map[string]int

// Add suma qty al tipo de activo.
func (a AssetQuantities) Add(assetType string, qty int) {
	a[assetType] += qty
}

// DCSummary desglose de un centro de distribución.
type DCSummary struct {
	Stock    AssetQuantities `json:"stock"`
	Supplier AssetQuantities `json:"supplier"`
	Transit  AssetQuantities `json:"transit"`
}

// NewDCSummary crea un resumen con los tres buckets vacíos.
func NewDCSummary() *DCSummary {
	return &DCSummary{Stock: AssetQuantities{}, Supplier: AssetQuantities{}, Transit: AssetQuantities{}}
}

// FamilySummary totales de una familia de activos por fuente.
type FamilySummary struct {
	Store    int `json:"store"`
	DC       int `json:"dc"`
	Supplier int `json:"supplier"`
	Transit  int `json:"transit"`
	Total    int `json:"total"`
}

// ReportValidation resumen de validaciones del informe.
type ReportValidation struct {
	AllStoresCounted      bool                `json:"all_stores_counted"`
	HasSupplier           bool                `json:"has_supplier"`
	HasTransit            bool                `json:"has_transit"`
	PendingStoresByRegion map[string][]string `json:"pending_stores_by_region"`
}

// Complete indica si las tres validaciones de cierre se cumplen.
func (v ReportValidation) Complete() bool {
	return v.AllStoresCounted && v.HasSupplier && v.HasTransit
}

// FinalizationReport informe de cierre de un inventario (uno por inventario, upsert).
type FinalizationReport struct {
	ID                    string
	InventoryID           string
	PendingStoresByRegion map[string][]string
	SuppliersMissing      bool
	HasTransit            bool
	StoreSummary          map[string]AssetQuantities
	DCSummary             map[string]*DCSummary
	FamilySummary         map[string]*FamilySummary
	Status                string
	ApprovedBy            string
	ApprovedAt            *time.Time
	GeneratedAt           time.Time
}

// Validation reconstruye el resumen de validación a partir del informe persistido.
func (r *FinalizationReport) Validation() ReportValidation {
	return ReportValidation{
		AllStoresCounted:      len(r.PendingStoresByRegion) == 0,
		HasSupplier:           !r.SuppliersMissing,
		HasTransit:            r.HasTransit,
		PendingStoresByRegion: r.PendingStoresByRegion,
	}
}
