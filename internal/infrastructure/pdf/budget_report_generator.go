// Package pdf implementa la generación del reporte de presupuesto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Equipo + Presupuesto  │  Año fiscal + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total USD / Sin distribuir / Total por tipo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Descripción | Moneda | Monto local | USD      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DISTRIBUCIÓN MENSUAL: Mes 1..N con su cuota USD             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	appbudget "github.com/greengotts/greengotts-api/internal/application/budget"
	"github.com/greengotts/greengotts-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BudgetReportGenerator genera el reporte de presupuesto usando Maroto v2.
type BudgetReportGenerator struct{}

// NewBudgetReportGenerator construye el generador.
func NewBudgetReportGenerator() *BudgetReportGenerator { return &BudgetReportGenerator{} }

// GenerateBudgetSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *BudgetReportGenerator) GenerateBudgetSummaryPDF(
	_ context.Context,
	summary *appbudget.BudgetSummary,
	team *entity.Team,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Presupuesto", true).
		WithAuthor(team.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary.Budget, team))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(summary.Items) {
		m.AddRows(r)
	}

	if len(summary.ByMonth) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, r := range monthlyRows(summary) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: equipo + título del presupuesto (izq) y año fiscal + fecha (der).
func headerRow(b *entity.Budget, team *entity.Team) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(team.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(b.Title, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE PRESUPUESTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Año fiscal %d", b.FiscalYear), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// totalsRow: total USD, monto sin distribuir y totales por tipo.
func totalsRow(s *appbudget.BudgetSummary) core.Row {
	byType := ""
	for i, tt := range s.ByType {
		if i > 0 {
			byType += "   |   "
		}
		byType += fmt.Sprintf("%s: $%s", tt.Type, tt.Total.StringFixed(2))
	}

	return row.New(20).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("TOTAL: $%s USD", s.TotalUSD.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Sin distribuir (rango abierto): $%s USD", s.Unallocated.StringFixed(2)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(byType, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Moneda", 1, align.Center),
		h("Monto local", 2, align.Right),
		h("USD", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// tableItemRows: una fila por ítem vigente.
func tableItemRows(items []*entity.BudgetItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		desc := ""
		if item.Description != nil {
			desc = *item.Description
		} else if item.VendorOrPerson != nil {
			desc = *item.VendorOrPerson
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				item.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				item.LocalCurrency,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				item.LocalAmount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+item.USDAmount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				item.Status,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// monthlyRows: distribución mensual combinada, 6 meses por fila.
func monthlyRows(s *appbudget.BudgetSummary) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DISTRIBUCIÓN MENSUAL (USD)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for start := 0; start < len(s.ByMonth); start += 6 {
		end := start + 6
		if end > len(s.ByMonth) {
			end = len(s.ByMonth)
		}
		r := row.New(10)
		for i := start; i < end; i++ {
			r.Add(col.New(2).Add(
				text.New(fmt.Sprintf("Mes %d", i+1), props.Text{
					Size: 7, Align: align.Center, Top: 1, Color: colorGray,
				}),
				text.New("$"+s.ByMonth[i].StringFixed(2), props.Text{
					Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 5,
				}),
			))
		}
		rows = append(rows, r)
	}
	return rows
}

// footerRow: leyenda del documento.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Los montos en USD se calcularon con la tasa de cambio vigente a la fecha "+
				"de alta de cada ítem; la identidad de la tasa queda congelada con el ítem.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
