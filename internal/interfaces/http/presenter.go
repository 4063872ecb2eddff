package http

import (
	"github.com/jhoicas/inventario-ciclos/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ciclos/internal/application/inventory"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

func toInventoryResponse(inv *entity.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:          inv.ID,
		Code:        inv.Code,
		Responsible: inv.Responsible,
		Status:      inv.Status,
		StartedAt:   inv.StartedAt,
		EndedAt:     inv.EndedAt,
		Progress:    toProgressDTO(inv.Progress),
	}
}

func toProgressDTO(p entity.Progress) dto.ProgressDTO {
	return dto.ProgressDTO{Stores: p.Stores, Sectors: p.Sectors, Suppliers: p.Suppliers}
}

func toCountResponse(e *entity.CountEntry) dto.CountEntryResponse {
	out := dto.CountEntryResponse{
		ID:          e.ID,
		InventoryID: e.InventoryID,
		Category:    e.Category,
		Origin:      e.Origin,
		Destination: e.Destination,
		AssetType:   e.AssetType,
		Quantity:    e.Quantity,
		CountedAt:   e.CountedAt,
		Responsible: e.Responsible,
	}
	if e.Transit != nil {
		out.Transit = &dto.CountCompanionDTO{
			AssetType:   e.Transit.AssetType,
			Quantity:    e.Transit.Quantity,
			Responsible: e.Transit.Responsible,
		}
	}
	return out
}

func toCountList(list []*entity.CountEntry) []dto.CountEntryResponse {
	out := make([]dto.CountEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toCountResponse(e))
	}
	return out
}

func toCompanion(in *dto.CountCompanionDTO) *entity.CountCompanion {
	if in == nil {
		return nil
	}
	return &entity.CountCompanion{AssetType: in.AssetType, Quantity: in.Quantity, Responsible: in.Responsible}
}

func toTransitResponse(t *entity.TransitRecord) dto.TransitRecordResponse {
	return dto.TransitRecordResponse{
		ID:          t.ID,
		InventoryID: t.InventoryID,
		Origin:      t.Origin,
		Destination: t.Destination,
		AssetType:   t.AssetType,
		Quantity:    t.Quantity,
		Status:      t.Status,
		SentAt:      t.SentAt,
		ReceivedAt:  t.ReceivedAt,
	}
}

func toTransitList(list []*entity.TransitRecord) []dto.TransitRecordResponse {
	out := make([]dto.TransitRecordResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransitResponse(t))
	}
	return out
}

func toReportResponse(r *entity.FinalizationReport) dto.ReportResponse {
	return dto.ReportResponse{
		ID:                    r.ID,
		InventoryID:           r.InventoryID,
		PendingStoresByRegion: r.PendingStoresByRegion,
		SuppliersMissing:      r.SuppliersMissing,
		HasTransit:            r.HasTransit,
		StoreSummary:          r.StoreSummary,
		DCSummary:             r.DCSummary,
		FamilySummary:         r.FamilySummary,
		Status:                r.Status,
		ApprovedBy:            r.ApprovedBy,
		ApprovedAt:            r.ApprovedAt,
		GeneratedAt:           r.GeneratedAt,
	}
}

func toTestDataResponse(res *appinv.TestDataResult) dto.TestDataResponse {
	out := dto.TestDataResponse{Created: res.Created, Origins: res.Origins, Skipped: res.Skipped}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.OriginFailureDTO{Origin: f.Origin, Error: f.Error})
	}
	return out
}
