package dto

import "time"

// StartInventoryRequest body para POST /api/inventories.
type StartInventoryRequest struct {
	Responsible string `json:"responsible" validate:"required"`
}

// ProgressDTO porcentaje de orígenes contados por categoría.
type ProgressDTO struct {
	Stores    int `json:"stores"`
	Sectors   int `json:"sectors"`
	Suppliers int `json:"suppliers"`
}

// InventoryResponse ciclo de inventario.
type InventoryResponse struct {
	ID          string      `json:"id"`
	Code        string      `json:"code"`
	Responsible string      `json:"responsible"`
	Status      string      `json:"status"`
	StartedAt   time.Time   `json:"started_at"`
	EndedAt     *time.Time  `json:"ended_at,omitempty"`
	Progress    ProgressDTO `json:"progress"`
}

// InventoryListResponse listado paginado de inventarios.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// FinalizeInventoryRequest body para POST /api/inventories/:id/finalize.
type FinalizeInventoryRequest struct {
	ReportID string `json:"report_id" validate:"required"`
	Approver string `json:"approver" validate:"required"`
}

// FinalizeInventoryResponse inventario finalizado con su informe aprobado.
type FinalizeInventoryResponse struct {
	Inventory InventoryResponse `json:"inventory"`
	Report    ReportResponse    `json:"report"`
}

// TestDataRequest body para POST /api/dev/test-data.
type TestDataRequest struct {
	InventoryID    string   `json:"inventory_id" validate:"required"`
	Category       string   `json:"category" validate:"required,oneof=store sector supplier"`
	Origins        []string `json:"origins,omitempty"`
	ItemsPerOrigin int      `json:"items_per_origin,omitempty" validate:"omitempty,min=1,max=20"`
	Responsible    string   `json:"responsible,omitempty"`
}

// OriginFailureDTO origen que no se pudo generar.
type OriginFailureDTO struct {
	Origin string `json:"origin"`
	Error  string `json:"error"`
}

// TestDataResponse resultado de la generación de datos de prueba.
type TestDataResponse struct {
	Created  int                `json:"created"`
	Origins  []string           `json:"origins"`
	Skipped  []string           `json:"skipped"`
	Failures []OriginFailureDTO `json:"failures,omitempty"`
}
