package dto

import (
	"time"

	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// ReportResponse informe de cierre.
type ReportResponse struct {
	ID                    string                            `json:"id"`
	InventoryID           string                            `json:"inventory_id"`
	PendingStoresByRegion map[string][]string               `json:"pending_stores_by_region"`
	SuppliersMissing      bool                              `json:"suppliers_missing"`
	HasTransit            bool                              `json:"has_transit"`
	StoreSummary          map[string]entity.AssetQuantities `json:"store_summary"`
	DCSummary             map[string]*entity.DCSummary      `json:"dc_summary"`
	FamilySummary         map[string]*entity.FamilySummary  `json:"family_summary"`
	Status                string                            `json:"status"`
	ApprovedBy            string                            `json:"approved_by,omitempty"`
	ApprovedAt            *time.Time                        `json:"approved_at,omitempty"`
	GeneratedAt           time.Time                         `json:"generated_at"`
}

// GenerateReportResponse informe recién generado y sus validaciones.
type GenerateReportResponse struct {
	Report     ReportResponse          `json:"report"`
	Validation entity.ReportValidation `json:"validation"`
	Complete   bool                    `json:"complete"`
}
