package report

import "context"

// ReportPDFGenerator renderiza el informe de cierre en PDF (implementación: Maroto).
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, doc Document) ([]byte, error)
}

// ReportSpreadsheetExporter renderiza el informe en una hoja de cálculo (implementación: excelize).
type ReportSpreadsheetExporter interface {
	ExportReportXLSX(ctx context.Context, doc Document) ([]byte, error)
}
