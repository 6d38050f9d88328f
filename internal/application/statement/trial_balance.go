package statement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/accounting"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// Clases de fila del balance de comprobación, para que la capa de
// presentación pueda sangrar o resaltar sin re-parsear nombres.
const (
	RowAccount  = "account"
	RowSubtotal = "subtotal"
	RowDetail   = "detail"
	RowTotal    = "total"
)

// TrialBalanceRow una fila del balance de comprobación.
type TrialBalanceRow struct {
	Account string          `json:"account"`
	Kind    string          `json:"kind"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// TrialBalance balance de comprobación completo. La fila de totales es
// informativa: el sistema no exige débitos == créditos.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// Orden estable de tipos de inventario para el desglose.
var inventoryTypeOrder = []string{
	entity.ItemBottles, entity.ItemOil, entity.ItemBox, entity.ItemOther, entity.ItemCreated,
}

// Trial arma el balance de comprobación: efectivo, inventario desglosado por
// tipo y artículo, cuentas por cobrar y por pagar por contraparte, ingresos,
// gastos y capitales de socios, más la fila final de totales.
func Trial(snap *entity.Snapshot) *TrialBalance {
	tb := &TrialBalance{}

	// Efectivo: débito si es positivo, crédito si quedó en negativo.
	if snap.Cash.IsNegative() {
		tb.push("Cash", RowAccount, decimal.Zero, snap.Cash.Abs())
	} else {
		tb.push("Cash", RowAccount, snap.Cash, decimal.Zero)
	}

	// Inventario: una fila de subtotal por tipo presente y una de detalle por
	// artículo (T subtotales + N artículos).
	for _, itemType := range inventoryTypeOrder {
		var items []*entity.InventoryItem
		subtotal := decimal.Zero
		for _, it := range snap.Inventory {
			if it.Type == itemType {
				items = append(items, it)
				subtotal = accounting.Round2(subtotal.Add(it.TotalValue))
			}
		}
		if len(items) == 0 {
			continue
		}
		tb.push("Inventory - "+itemType, RowSubtotal, subtotal, decimal.Zero)
		for _, it := range items {
			tb.push(it.Name, RowDetail, it.TotalValue, decimal.Zero)
		}
	}

	// Cuentas por cobrar y por pagar por contraparte.
	for _, cb := range receivablesByCounterparty(snap.Transactions) {
		tb.push(entity.ReceivableAccount(cb.Name), RowAccount, cb.Amount, decimal.Zero)
	}
	for _, cb := range payablesByCounterparty(snap.Transactions) {
		tb.push(entity.PayableAccount(cb.Name), RowAccount, decimal.Zero, cb.Amount)
	}

	// Resultados del período.
	inc := Income(snap)
	if !inc.Revenue.IsZero() {
		tb.push(entity.AccountSalesRevenue, RowAccount, decimal.Zero, inc.Revenue)
	}
	if !inc.COGS.IsZero() {
		tb.push(entity.AccountCOGS, RowAccount, inc.COGS, decimal.Zero)
	}
	if !inc.TotalGains.IsZero() {
		tb.push(entity.AccountGain, RowAccount, decimal.Zero, inc.TotalGains)
	}
	if !inc.TotalExpenses.IsZero() {
		tb.push(entity.AccountExpense, RowAccount, inc.TotalExpenses, decimal.Zero)
	}
	if !inc.TotalLosses.IsZero() {
		tb.push(entity.AccountLoss, RowAccount, inc.TotalLosses, decimal.Zero)
	}

	// Capital de socios.
	for _, p := range snap.Partners {
		if p.Capital.IsNegative() {
			tb.push(entity.CapitalAccount(p.Name), RowAccount, p.Capital.Abs(), decimal.Zero)
		} else {
			tb.push(entity.CapitalAccount(p.Name), RowAccount, decimal.Zero, p.Capital)
		}
	}

	tb.Rows = append(tb.Rows, TrialBalanceRow{
		Account: "Totals",
		Kind:    RowTotal,
		Debit:   tb.TotalDebit,
		Credit:  tb.TotalCredit,
	})
	return tb
}

// push agrega una fila y acumula los totales. Las filas de detalle no suman
// (ya están en el subtotal de su tipo).
func (tb *TrialBalance) push(account, kind string, debit, credit decimal.Decimal) {
	tb.Rows = append(tb.Rows, TrialBalanceRow{Account: account, Kind: kind, Debit: debit, Credit: credit})
	if kind == RowDetail {
		return
	}
	tb.TotalDebit = accounting.Round2(tb.TotalDebit.Add(debit))
	tb.TotalCredit = accounting.Round2(tb.TotalCredit.Add(credit))
}
