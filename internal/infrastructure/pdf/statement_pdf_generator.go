// Package pdf genera el reporte financiero imprimible del período: estado de
// resultados y balance general en una página A4.
package pdf

import (
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/statement"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementPDFGenerator genera el PDF de estados financieros usando Maroto v2.
type StatementPDFGenerator struct{}

// NewStatementPDFGenerator construye el generador.
func NewStatementPDFGenerator() *StatementPDFGenerator { return &StatementPDFGenerator{} }

// GenerateStatementPDF rinde estado de resultados y balance general sobre el
// snapshot y devuelve los bytes del documento.
func (g *StatementPDFGenerator) GenerateStatementPDF(snap *entity.Snapshot, businessName, period string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estados Financieros", true).
		WithAuthor(businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(businessName, period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	inc := statement.Income(snap)
	m.AddRows(sectionTitleRow("ESTADO DE RESULTADOS"))
	m.AddRows(
		amountRow("Sales Revenue", inc.Revenue, false),
		amountRow("Cost of Goods Sold", inc.COGS.Neg(), false),
		amountRow("Gross Profit", inc.GrossProfit, true),
		amountRow("Other Gains", inc.TotalGains, false),
		amountRow("Operating Expenses", inc.TotalExpenses.Neg(), false),
		amountRow("Other Losses", inc.TotalLosses.Neg(), false),
		amountRow("Net Income", inc.NetIncome, true),
	)

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	bs := statement.Balance(snap)
	m.AddRows(sectionTitleRow("BALANCE GENERAL"))
	m.AddRows(
		amountRow("Cash", bs.Cash, false),
		amountRow("Inventory", bs.InventoryValue, false),
	)
	for _, cb := range bs.AccountsReceivable {
		m.AddRows(amountRow(entity.ReceivableAccount(cb.Name), cb.Amount, false))
	}
	m.AddRows(amountRow("Total Assets", bs.TotalAssets, true))
	for _, cb := range bs.AccountsPayable {
		m.AddRows(amountRow(entity.PayableAccount(cb.Name), cb.Amount, false))
	}
	m.AddRows(amountRow("Net Income", bs.NetIncome, false))
	for _, pc := range bs.PartnerCapitals {
		m.AddRows(amountRow(entity.CapitalAccount(pc.Name), pc.Capital, false))
	}
	m.AddRows(amountRow("Total Liabilities and Equity", bs.TotalLiabilitiesAndEquity, true))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y período (der).
func headerRow(businessName, period string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estados Financieros", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+period, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// sectionTitleRow: título de sección en el color primario.
func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		}),
	))
}

// amountRow: etiqueta a la izquierda y monto alineado a la derecha. Las filas
// de total van en negrita.
func amountRow(label string, amount decimal.Decimal, total bool) core.Row {
	style := fontstyle.Normal
	if total {
		style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: style, Size: 9, Top: 1, Left: 2,
		})),
		col.New(4).Add(text.New("$"+amount.StringFixed(2), props.Text{
			Style: style, Size: 9, Align: align.Right, Top: 1, Right: 2,
		})),
	)
}
