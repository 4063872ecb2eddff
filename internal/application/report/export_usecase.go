package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ciclos/internal/domain"
	"github.com/jhoicas/inventario-ciclos/internal/domain/catalog"
	"github.com/jhoicas/inventario-ciclos/internal/domain/repository"
)

// ExportUseCase descarga el informe persistido en PDF o XLSX.
type ExportUseCase struct {
	invRepo    repository.InventoryRepository
	reportRepo repository.ReportRepository
	catalog    *catalog.Catalog
	pdf        ReportPDFGenerator
	xlsx       ReportSpreadsheetExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	invRepo repository.InventoryRepository,
	reportRepo repository.ReportRepository,
	c *catalog.Catalog,
	pdf ReportPDFGenerator,
	xlsx ReportSpreadsheetExporter,
) *ExportUseCase {
	return &ExportUseCase{invRepo: invRepo, reportRepo: reportRepo, catalog: c, pdf: pdf, xlsx: xlsx}
}

// DownloadPDF devuelve (bytes, nombre de archivo).
func (uc *ExportUseCase) DownloadPDF(ctx context.Context, reportID string) ([]byte, string, error) {
	const op = "report.pdf"
	doc, err := uc.document(ctx, op, reportID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateReportPDF(ctx, doc)
	if err != nil {
		return nil, "", domain.Storage(op, reportID, err)
	}
	return b, fmt.Sprintf("relatorio-%s.pdf", doc.Inventory.Code), nil
}

// DownloadXLSX devuelve (bytes, nombre de archivo).
func (uc *ExportUseCase) DownloadXLSX(ctx context.Context, reportID string) ([]byte, string, error) {
	const op = "report.xlsx"
	doc, err := uc.document(ctx, op, reportID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.ExportReportXLSX(ctx, doc)
	if err != nil {
		return nil, "", domain.Storage(op, reportID, err)
	}
	return b, fmt.Sprintf("relatorio-%s.xlsx", doc.Inventory.Code), nil
}

func (uc *ExportUseCase) document(ctx context.Context, op, reportID string) (Document, error) {
	rep, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return Document{}, domain.Storage(op, reportID, err)
	}
	if rep == nil {
		return Document{}, domain.NotFound(op, "informe", reportID)
	}
	inv, err := uc.invRepo.GetByID(ctx, rep.InventoryID)
	if err != nil {
		return Document{}, domain.Storage(op, rep.InventoryID, err)
	}
	if inv == nil {
		return Document{}, domain.NotFound(op, "inventario", rep.InventoryID)
	}
	return Document{Inventory: inv, Report: rep, Catalog: uc.catalog}, nil
}
