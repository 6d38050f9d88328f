// Package excel genera el libro de cierre: un workbook con los siete reportes
// del período, uno por hoja.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Contable-api/internal/application/statement"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// Nombres de hoja del libro de cierre.
const (
	SheetIncome       = "Income Statement"
	SheetBalance      = "Balance Sheet"
	SheetCashFlow     = "Cash Flow"
	SheetTrialBalance = "Trial Balance"
	SheetJournal      = "General Journal"
	SheetSales        = "Sales Ledger"
	SheetInventory    = "Inventory Ledger"
)

// Exporter genera el workbook de cierre a partir de un snapshot del libro.
// Implementa el puerto de exportación del proceso de cierre.
type Exporter struct {
	printer *message.Printer
}

// NewExporter construye el exportador.
func NewExporter() *Exporter {
	return &Exporter{printer: message.NewPrinter(language.Spanish)}
}

// Export rinde los siete reportes sobre el snapshot y devuelve el workbook
// serializado.
func (e *Exporter) Export(snap *entity.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	e.writeIncome(f, statement.Income(snap))
	e.writeBalance(f, statement.Balance(snap))
	e.writeCashFlow(f, statement.CashFlow(snap))
	e.writeTrialBalance(f, statement.Trial(snap))
	e.writeJournal(f, statement.GeneralJournal(snap))
	e.writeSales(f, statement.SalesLedger(snap))
	e.writeInventory(f, statement.InventoryLedger(snap))

	// Excelize crea "Sheet1" por defecto; se elimina tras crear las hojas reales.
	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// money formatea un monto con separadores de miles del locale.
func (e *Exporter) money(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return e.printer.Sprintf("$%.2f", v)
}

// sheetWriter escribe filas consecutivas en una hoja.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func newSheet(f *excelize.File, name string) *sheetWriter {
	_, _ = f.NewSheet(name)
	return &sheetWriter{f: f, sheet: name}
}

// put escribe la siguiente fila, una celda por valor.
func (w *sheetWriter) put(values ...any) {
	w.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			continue
		}
		_ = w.f.SetCellValue(w.sheet, cell, v)
	}
}

// skip deja una fila en blanco.
func (w *sheetWriter) skip() { w.row++ }

func (e *Exporter) writeIncome(f *excelize.File, inc *statement.IncomeStatement) {
	w := newSheet(f, SheetIncome)
	w.put("Estado de Resultados")
	w.skip()
	w.put("Sales Revenue", e.money(inc.Revenue))
	w.put("Cost of Goods Sold", e.money(inc.COGS))
	w.put("Gross Profit", e.money(inc.GrossProfit))
	w.put("Other Gains", e.money(inc.TotalGains))
	w.put("Total Profitability", e.money(inc.TotalProfitability))
	w.put("Operating Expenses", e.money(inc.TotalExpenses))
	w.put("Other Losses", e.money(inc.TotalLosses))
	w.put("Net Income", e.money(inc.NetIncome))
}

func (e *Exporter) writeBalance(f *excelize.File, bs *statement.BalanceSheet) {
	w := newSheet(f, SheetBalance)
	w.put("Balance General")
	w.skip()
	w.put("Activos")
	w.put("Cash", e.money(bs.Cash))
	w.put("Inventory", e.money(bs.InventoryValue))
	for _, cb := range bs.AccountsReceivable {
		w.put(entity.ReceivableAccount(cb.Name), e.money(cb.Amount))
	}
	w.put("Total Assets", e.money(bs.TotalAssets))
	w.skip()
	w.put("Pasivos y Capital")
	for _, cb := range bs.AccountsPayable {
		w.put(entity.PayableAccount(cb.Name), e.money(cb.Amount))
	}
	w.put("Net Income", e.money(bs.NetIncome))
	for _, pc := range bs.PartnerCapitals {
		w.put(entity.CapitalAccount(pc.Name), e.money(pc.Capital))
	}
	w.put("Total Liabilities and Equity", e.money(bs.TotalLiabilitiesAndEquity))
}

func (e *Exporter) writeCashFlow(f *excelize.File, cf *statement.CashFlowStatement) {
	w := newSheet(f, SheetCashFlow)
	w.put("Estado de Flujo de Efectivo")
	w.skip()
	w.put("Operating Activities", e.money(cf.Operating))
	w.put("Investing Activities", e.money(cf.Investing))
	w.put("Financing Activities", e.money(cf.Financing))
	w.put("Net Change in Cash", e.money(cf.NetChange))
	w.put("Beginning Cash Balance", e.money(cf.BeginningBalance))
	w.put("Ending Cash Balance", e.money(cf.EndingBalance))
}

func (e *Exporter) writeTrialBalance(f *excelize.File, tb *statement.TrialBalance) {
	w := newSheet(f, SheetTrialBalance)
	w.put("Balance de Comprobación")
	w.put("Cuenta", "Débito", "Crédito")
	for _, row := range tb.Rows {
		name := row.Account
		if row.Kind == statement.RowDetail {
			name = "    " + name
		}
		w.put(name, e.money(row.Debit), e.money(row.Credit))
	}
}

func (e *Exporter) writeJournal(f *excelize.File, groups []statement.JournalGroup) {
	w := newSheet(f, SheetJournal)
	w.put("Libro Diario")
	w.put("Fecha", "Cuenta", "Descripción", "Débito", "Crédito")
	for _, g := range groups {
		date := g.Date
		for _, line := range g.Lines {
			account := line.Account
			if line.Indented {
				account = "    " + account
			}
			var debit, credit string
			if !line.Debit.IsZero() {
				debit = e.money(line.Debit)
			}
			if !line.Credit.IsZero() {
				credit = e.money(line.Credit)
			}
			w.put(date, account, line.Description, debit, credit)
			date = "" // la fecha solo en la primera línea del grupo
		}
	}
}

func (e *Exporter) writeSales(f *excelize.File, rows []statement.SalesRow) {
	w := newSheet(f, SheetSales)
	w.put("Libro de Ventas")
	w.put("Fecha", "Producto", "Cantidad", "Monto", "Costo Unitario", "Pago", "Cliente", "Orden")
	for _, r := range rows {
		w.put(r.Date, r.ProductName, r.Quantity.String(), e.money(r.Amount),
			e.money(r.UnitCost), r.PaymentMethod, r.CustomerName, r.OrderNumber)
	}
}

func (e *Exporter) writeInventory(f *excelize.File, rows []statement.InventoryRow) {
	w := newSheet(f, SheetInventory)
	w.put("Libro de Inventario")
	w.put("Artículo", "Tipo", "Cantidad", "Gramos", "Costo Unitario", "Valor Total", "Precio de Venta")
	for _, r := range rows {
		w.put(r.Name, r.Type, r.Quantity.String(), r.Grams.String(),
			e.money(r.UnitCost), e.money(r.TotalValue), e.money(r.SellingPrice))
	}
}
