// Package xlsx exporta el informe de cierre a una hoja de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ciclos/internal/application/report"
)

// Hojas del libro, en orden.
const (
	SheetSummary  = "Resumo"
	SheetFamilies = "Famílias"
	SheetDCs      = "CDs"
	SheetStores   = "Lojas"
	SheetPending  = "Pendentes"
)

const dateLayout = "02/01/2006 15:04"

var _ report.ReportSpreadsheetExporter = (*ReportExporter)(nil)

// ReportExporter implementa report.ReportSpreadsheetExporter.
type ReportExporter struct{}

// NewReportExporter construye el exportador.
func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// sheet escribe filas consecutivas en una hoja.
type sheet struct {
	f    *excelize.File
	name string
	next int
	bold int
	err  error
}

func (s *sheet) row(bold bool, values ...any) {
	if s.err != nil {
		return
	}
	s.next++
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		s.err = err
		return
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		s.err = err
		return
	}
	if bold {
		s.err = s.f.SetRowStyle(s.name, s.next, s.next, s.bold)
	}
}

// ExportReportXLSX genera el libro y devuelve sus bytes.
func (e *ReportExporter) ExportReportXLSX(_ context.Context, doc report.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja %s: %w", SheetSummary, err)
	}
	sheets := map[string]*sheet{}
	for _, name := range []string{SheetSummary, SheetFamilies, SheetDCs, SheetStores, SheetPending} {
		if name != SheetSummary {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("xlsx: hoja %s: %w", name, err)
			}
		}
		sheets[name] = &sheet{f: f, name: name, bold: bold}
	}

	writeSummary(sheets[SheetSummary], doc)
	writeFamilies(sheets[SheetFamilies], doc)
	writeDCs(sheets[SheetDCs], doc)
	writeStores(sheets[SheetStores], doc)
	writePending(sheets[SheetPending], doc)
	for _, s := range sheets {
		if s.err != nil {
			return nil, fmt.Errorf("xlsx: hoja %s: %w", s.name, s.err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(s *sheet, doc report.Document) {
	inv, rep := doc.Inventory, doc.Report
	v := rep.Validation()
	s.row(true, "Relatório de fechamento", inv.Code)
	s.row(false, "Responsável", inv.Responsible)
	s.row(false, "Início", inv.StartedAt.Format(dateLayout))
	s.row(false, "Gerado em", rep.GeneratedAt.Format(dateLayout))
	s.row(false, "Status", rep.Status)
	if rep.ApprovedAt != nil {
		s.row(false, "Aprovado por", rep.ApprovedBy)
		s.row(false, "Aprovado em", rep.ApprovedAt.Format(dateLayout))
	}
	s.row(false)
	s.row(true, "Validação", "OK")
	s.row(false, "Todas as lojas contadas", yesNo(v.AllStoresCounted))
	s.row(false, "Fornecedores contados", yesNo(v.HasSupplier))
	s.row(false, "Trânsito registrado", yesNo(v.HasTransit))
}

func writeFamilies(s *sheet, doc report.Document) {
	s.row(true, "Família", "Loja", "CD", "Fornecedor", "Trânsito", "Total")
	for _, name := range doc.Families() {
		f := doc.Report.FamilySummary[name]
		s.row(false, name, f.Store, f.DC, f.Supplier, f.Transit, f.Total)
	}
}

func writeDCs(s *sheet, doc report.Document) {
	s.row(true, "CD", "Ativo", "Estoque", "Fornecedor", "Trânsito")
	for _, name := range doc.DCs() {
		dc := doc.Report.DCSummary[name]
		for _, a := range doc.DCAssets(dc) {
			s.row(false, name, a, dc.Stock[a], dc.Supplier[a], dc.Transit[a])
		}
	}
}

func writeStores(s *sheet, doc report.Document) {
	s.row(true, "Loja", "Ativo", "Quantidade")
	for _, store := range doc.Stores() {
		q := doc.Report.StoreSummary[store]
		for _, a := range doc.Assets(q) {
			s.row(false, store, a, q[a])
		}
	}
}

func writePending(s *sheet, doc report.Document) {
	s.row(true, "Região", "Lojas pendentes", "Quantidade")
	for _, region := range doc.Regions() {
		stores := doc.Report.PendingStoresByRegion[region]
		s.row(false, region, strings.Join(stores, ", "), len(stores))
	}
}

func yesNo(ok bool) string {
	if ok {
		return "Sim"
	}
	return "Não"
}
