// Package pdf genera el informe de cierre del inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + código         │  estado + fecha           │
//	│  VALIDAÇÕES: lojas / fornecedores / trânsito                 │
//	│  LOJAS PENDENTES por região                                  │
//	│  TABELA FAMÍLIAS: Loja | CD | Fornecedor | Trânsito | Total  │
//	│  TABELA por CD: Ativo | Estoque | Fornecedor | Trânsito      │
//	│  TABELA por loja: Loja | Ativo | Quantidade                  │
//	│  FOOTER: aprovação                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ciclos/internal/application/report"
	"github.com/jhoicas/inventario-ciclos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

const dateLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.ReportPDFGenerator con Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, doc report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Fechamento "+doc.Inventory.Code, true).
		WithAuthor(doc.Inventory.Responsible, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(validationRows(doc.Report.Validation())...)
	m.AddRows(pendingRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(familyRows(doc)...)
	m.AddRows(dcRows(doc)...)
	m.AddRows(storeRows(doc)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(approvalRow(doc.Report))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + código (izq) y estado + fecha de generación (der).
func headerRow(doc report.Document) core.Row {
	inv, rep := doc.Inventory, doc.Report
	return row.New(20).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE FECHAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Code, props.Text{Style: fontstyle.Bold, Size: 10, Top: 9}),
			text.New("Responsável: "+inv.Responsible+"   |   Início: "+inv.StartedAt.Format(dateLayout), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(statusLabel(rep.Status)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Gerado em: "+rep.GeneratedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func validationRows(v entity.ReportValidation) []core.Row {
	check := func(label string, ok bool) core.Col {
		mark, color := "PENDENTE", colorAlert
		if ok {
			mark, color = "OK", colorOK
		}
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(mark, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Color: color}),
		)
	}
	return []core.Row{
		sectionTitle("VALIDAÇÕES"),
		row.New(12).Add(
			check("Todas as lojas contadas", v.AllStoresCounted),
			check("Fornecedores contados", v.HasSupplier),
			check("Trânsito registrado", v.HasTransit),
		),
	}
}

func pendingRows(doc report.Document) []core.Row {
	regions := doc.Regions()
	if len(regions) == 0 {
		return nil
	}
	rows := []core.Row{sectionTitle("LOJAS PENDENTES")}
	for _, region := range regions {
		stores := doc.Report.PendingStoresByRegion[region]
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(region, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(strings.Join(stores, ", "), props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

func familyRows(doc report.Document) []core.Row {
	rows := []core.Row{
		sectionTitle("RESUMO POR FAMÍLIA"),
		tableHeader([]string{"Família", "Loja", "CD", "Fornecedor", "Trânsito", "Total"}, []int{4, 2, 1, 2, 2, 1}),
	}
	for _, name := range doc.Families() {
		f := doc.Report.FamilySummary[name]
		rows = append(rows, tableRow([]string{
			name, formatQty(f.Store), formatQty(f.DC), formatQty(f.Supplier), formatQty(f.Transit), formatQty(f.Total),
		}, []int{4, 2, 1, 2, 2, 1}))
	}
	return rows
}

func dcRows(doc report.Document) []core.Row {
	sizes := []int{6, 2, 2, 2}
	rows := []core.Row{sectionTitle("RESUMO POR CENTRO DE DISTRIBUIÇÃO")}
	for _, name := range doc.DCs() {
		s := doc.Report.DCSummary[name]
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary}),
		)))
		assets := doc.DCAssets(s)
		if len(assets) == 0 {
			rows = append(rows, tableRow([]string{"Sem registros", "", "", ""}, sizes))
			continue
		}
		rows = append(rows, tableHeader([]string{"Ativo", "Estoque", "Fornecedor", "Trânsito"}, sizes))
		for _, a := range assets {
			rows = append(rows, tableRow([]string{
				a, formatQty(s.Stock[a]), formatQty(s.Supplier[a]), formatQty(s.Transit[a]),
			}, sizes))
		}
	}
	return rows
}

func storeRows(doc report.Document) []core.Row {
	stores := doc.Stores()
	if len(stores) == 0 {
		return nil
	}
	sizes := []int{4, 6, 2}
	rows := []core.Row{
		sectionTitle("RESUMO POR LOJA"),
		tableHeader([]string{"Loja", "Ativo", "Quantidade"}, sizes),
	}
	for _, store := range stores {
		q := doc.Report.StoreSummary[store]
		for i, a := range doc.Assets(q) {
			label := store
			if i > 0 {
				label = ""
			}
			rows = append(rows, tableRow([]string{label, a, formatQty(q[a])}, sizes))
		}
	}
	return rows
}

// approvalRow: aprobación o leyenda de borrador.
func approvalRow(rep *entity.FinalizationReport) core.Row {
	msg := "Rascunho: este relatório ainda não foi aprovado."
	if rep.Status == entity.ReportStatusApproved && rep.ApprovedAt != nil {
		msg = fmt.Sprintf("Aprovado por %s em %s.", nonEmpty(rep.ApprovedBy, "—"), rep.ApprovedAt.Format(dateLayout))
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 || (len(labels) == 3 && i == 1) {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 || (len(values) == 3 && i == 1) {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(5).Add(cols...)
}

func statusLabel(status string) string {
	if status == entity.ReportStatusApproved {
		return "Aprovado"
	}
	return "Rascunho"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQty inserta puntos de miles. Ej: 25000 → "25.000".
func formatQty(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}
