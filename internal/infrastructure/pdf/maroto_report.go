// Package pdf exporta el reporte del panel a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte     │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ganancia neta | Ventas brutas | Transacciones     │
//	│           | Valor de inventario                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: Producto | Marca | Código | Stock | Precio     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTAS: Fecha | Cliente | Estado | Total | Ganancia        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/panel-catalogos/internal/application/panel"
	"github.com/jhoicas/panel-catalogos/internal/domain/entity"
	"github.com/jhoicas/panel-catalogos/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 109, Green: 40, Blue: 217}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 200, Green: 30, Blue: 30}
	colorProfit  = &props.Color{Red: 22, Green: 130, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa panel.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

var _ panel.ReportGenerator = (*MarotoReportGenerator)(nil)

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReport(_ context.Context, r panel.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(r.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("INVENTARIO (%d productos)", len(r.Products))))
	m.AddRows(inventoryHeaderRow())
	if len(r.Products) == 0 {
		m.AddRows(emptyRow("No hay productos registrados."))
	}
	m.AddRows(inventoryRows(r.Products, r.LowStockThreshold)...)

	if r.Sales != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle(fmt.Sprintf("HISTORIAL DE VENTAS (%d)", len(r.Sales))))
		m.AddRows(salesHeaderRow())
		if len(r.Sales) == 0 {
			m.AddRows(emptyRow("No hay ventas registradas."))
		}
		m.AddRows(salesRows(r.Sales)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r panel.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ganancias e inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows: las cuatro métricas del resumen financiero.
func summaryRows(s entity.FinancialSummary) []core.Row {
	metric := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Top: 6, Align: align.Center}),
		)
	}
	return []core.Row{
		sectionTitle("RESUMEN FINANCIERO"),
		row.New(16).Add(
			metric("Ganancia Neta Total", money.Format(s.NetProfit), colorProfit),
			metric("Ventas Totales (Bruto)", money.Format(s.GrossSales), colorPrimary),
			metric("Transacciones", strconv.Itoa(s.TransactionCount), colorPrimary),
			metric("Valor Actual de Inventario", money.Format(s.InventoryValuation), colorPrimary),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
	))
}

func header(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func inventoryHeaderRow() core.Row {
	return row.New(6).Add(
		header("Producto", 4, align.Left),
		header("Marca", 2, align.Left),
		header("Código", 2, align.Left),
		header("Stock", 1, align.Center),
		header("Costo", 1, align.Right),
		header("Precio", 2, align.Right),
	)
}

// inventoryRows: una fila por producto; el stock bajo se resalta en rojo.
func inventoryRows(products []entity.Product, lowStock int) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if p.LowStock(lowStock) {
			stockProps.Style = fontstyle.Bold
			stockProps.Color = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(p.Brand), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.CatalogCode, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.Inventory.Quantity), stockProps)),
			col.New(1).Add(text.New(money.Format(p.PurchaseCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(p.SuggestedPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func salesHeaderRow() core.Row {
	return row.New(6).Add(
		header("Fecha", 2, align.Left),
		header("Cliente", 3, align.Left),
		header("Estado", 2, align.Left),
		header("Productos", 1, align.Center),
		header("Total", 2, align.Right),
		header("Ganancia", 2, align.Right),
	)
}

func salesRows(sales []entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		items := 0
		for _, l := range s.Lines {
			items += l.Quantity
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(s.Date.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(s.CustomerName, "Sin nombre"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(s.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(items), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(s.TotalPaid), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(s.NetProfit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorProfit})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
