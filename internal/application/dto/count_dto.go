package dto

import "time"

// CountCompanionDTO tránsito que acompaña un conteo de tienda alias de CD.
type CountCompanionDTO struct {
	AssetType   string `json:"asset_type"`
	Quantity    int    `json:"quantity"`
	Responsible string `json:"responsible,omitempty"`
}

// CreateCountRequest body para POST /api/counts. El origen admite los nombres heredados
// (loja, setor_cd, fornecedor, cd_origem); el handler los resuelve antes de validar.
type CreateCountRequest struct {
	InventoryID string             `json:"inventory_id" validate:"required"`
	Category    string             `json:"category" validate:"required,oneof=store sector supplier"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination,omitempty"`
	AssetType   string             `json:"asset_type" validate:"required"`
	Quantity    int                `json:"quantity" validate:"gt=0"`
	Responsible string             `json:"responsible" validate:"required"`
	Transit     *CountCompanionDTO `json:"transit,omitempty"`
}

// CountItemDTO ítem de una carga masiva.
type CountItemDTO struct {
	AssetType string `json:"asset_type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// BulkCountRequest body para POST /api/counts/bulk.
type BulkCountRequest struct {
	InventoryID string         `json:"inventory_id" validate:"required"`
	Category    string         `json:"category" validate:"required,oneof=store sector supplier"`
	Origin      string         `json:"origin"`
	Destination string         `json:"destination,omitempty"`
	Responsible string         `json:"responsible" validate:"required"`
	Items       []CountItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateCountRequest body para PATCH /api/counts/:id; campos ausentes no cambian.
type UpdateCountRequest struct {
	InventoryID *string            `json:"inventory_id,omitempty"`
	Origin      *string            `json:"origin,omitempty"`
	CountedAt   *time.Time         `json:"counted_at,omitempty"`
	Category    *string            `json:"category,omitempty" validate:"omitempty,oneof=store sector supplier"`
	Destination *string            `json:"destination,omitempty"`
	AssetType   *string            `json:"asset_type,omitempty"`
	Quantity    *int               `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Responsible *string            `json:"responsible,omitempty"`
	Transit     *CountCompanionDTO `json:"transit,omitempty"`
}

// CountEntryResponse conteo persistido.
type CountEntryResponse struct {
	ID          string             `json:"id"`
	InventoryID string             `json:"inventory_id"`
	Category    string             `json:"category"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination,omitempty"`
	AssetType   string             `json:"asset_type"`
	Quantity    int                `json:"quantity"`
	CountedAt   time.Time          `json:"counted_at"`
	Responsible string             `json:"responsible"`
	Transit     *CountCompanionDTO `json:"transit,omitempty"`
}
