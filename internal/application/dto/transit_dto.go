package dto

import "time"

// CreateTransitRequest body para POST /api/transits. Sin status se asume "sent".
type CreateTransitRequest struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	AssetType   string `json:"asset_type" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=sent received pending"`
}

// BulkTransitRequest body para POST /api/transits/bulk.
type BulkTransitRequest struct {
	InventoryID string         `json:"inventory_id" validate:"required"`
	Origin      string         `json:"origin" validate:"required"`
	Destination string         `json:"destination" validate:"required"`
	Status      string         `json:"status,omitempty" validate:"omitempty,oneof=sent received pending"`
	Items       []CountItemDTO `json:"items" validate:"required,min=1,dive"`
}

// UpdateTransitRequest body para PATCH /api/transits/:id.
type UpdateTransitRequest struct {
	InventoryID *string `json:"inventory_id,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
	AssetType   *string `json:"asset_type,omitempty"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// UpdateTransitStatusRequest body para PATCH /api/transits/:id/status.
type UpdateTransitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=sent received pending"`
}

// TransitRecordResponse tránsito persistido.
type TransitRecordResponse struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	AssetType   string     `json:"asset_type"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	SentAt      time.Time  `json:"sent_at"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
}
