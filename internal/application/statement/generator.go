// Package statement deriva los estados financieros a partir del diario y los
// saldos actuales. Todas las funciones son puras y deterministas: misma
// entrada, misma salida, sin efectos secundarios: se pueden invocar cuantas
// veces haga falta (pantalla, exportación a Excel, PDF).
package statement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/accounting"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// IncomeStatement estado de resultados del período.
type IncomeStatement struct {
	Revenue            decimal.Decimal `json:"revenue"`
	COGS               decimal.Decimal `json:"cogs"`
	GrossProfit        decimal.Decimal `json:"gross_profit"`
	TotalGains         decimal.Decimal `json:"total_gains"`
	TotalProfitability decimal.Decimal `json:"total_profitability"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	TotalLosses        decimal.Decimal `json:"total_losses"`
	NetIncome          decimal.Decimal `json:"net_income"`
}

// Income calcula el estado de resultados: ingresos por ventas, costo de lo
// vendido (solo ventas que registran costo unitario), ganancias y gastos.
func Income(snap *entity.Snapshot) *IncomeStatement {
	st := &IncomeStatement{
		Revenue:       decimal.Zero,
		COGS:          decimal.Zero,
		TotalGains:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalLosses:   decimal.Zero,
	}
	for _, tx := range snap.Transactions {
		switch tx.Type {
		case entity.TxSale:
			st.Revenue = accounting.Round2(st.Revenue.Add(tx.Amount))
			if !tx.UnitCost.IsZero() {
				st.COGS = accounting.Round2(st.COGS.Add(accounting.MulRound(tx.UnitCost, tx.Quantity)))
			}
		case entity.TxGain:
			st.TotalGains = accounting.Round2(st.TotalGains.Add(tx.Amount))
		case entity.TxExpense:
			st.TotalExpenses = accounting.Round2(st.TotalExpenses.Add(tx.Amount))
		case entity.TxLoss:
			st.TotalLosses = accounting.Round2(st.TotalLosses.Add(tx.Amount))
		}
	}
	st.GrossProfit = accounting.Round2(st.Revenue.Sub(st.COGS))
	st.TotalProfitability = accounting.Round2(st.GrossProfit.Add(st.TotalGains))
	st.NetIncome = accounting.Round2(st.TotalProfitability.Sub(st.TotalExpenses).Sub(st.TotalLosses))
	return st
}

// CounterpartyBalance saldo por cobrar o por pagar de una contraparte.
type CounterpartyBalance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// PartnerCapital capital de un socio para el balance general.
type PartnerCapital struct {
	Name    string          `json:"name"`
	Capital decimal.Decimal `json:"capital"`
}

// BalanceSheet balance general a la fecha.
type BalanceSheet struct {
	Cash                      decimal.Decimal       `json:"cash"`
	InventoryValue            decimal.Decimal       `json:"inventory_value"`
	AccountsReceivable        []CounterpartyBalance `json:"accounts_receivable"`
	TotalReceivable           decimal.Decimal       `json:"total_receivable"`
	TotalAssets               decimal.Decimal       `json:"total_assets"`
	AccountsPayable           []CounterpartyBalance `json:"accounts_payable"`
	TotalPayable              decimal.Decimal       `json:"total_payable"`
	NetIncome                 decimal.Decimal       `json:"net_income"`
	PartnerCapitals           []PartnerCapital      `json:"partner_capitals"`
	TotalCapital              decimal.Decimal       `json:"total_capital"`
	TotalLiabilitiesAndEquity decimal.Decimal       `json:"total_liabilities_and_equity"`
}

// Balance arma el balance general. Las cuentas por cobrar y por pagar se
// reconstruyen del diario agrupando por contraparte: asientos receivable y
// ventas a crédito del lado del activo; payable y compras a crédito del lado
// del pasivo.
func Balance(snap *entity.Snapshot) *BalanceSheet {
	bs := &BalanceSheet{
		Cash:           snap.Cash,
		InventoryValue: decimal.Zero,
	}
	for _, it := range snap.Inventory {
		bs.InventoryValue = accounting.Round2(bs.InventoryValue.Add(it.TotalValue))
	}

	bs.AccountsReceivable = receivablesByCounterparty(snap.Transactions)
	bs.AccountsPayable = payablesByCounterparty(snap.Transactions)
	for _, cb := range bs.AccountsReceivable {
		bs.TotalReceivable = accounting.Round2(bs.TotalReceivable.Add(cb.Amount))
	}
	for _, cb := range bs.AccountsPayable {
		bs.TotalPayable = accounting.Round2(bs.TotalPayable.Add(cb.Amount))
	}

	bs.TotalAssets = accounting.Round2(bs.Cash.Add(bs.InventoryValue).Add(bs.TotalReceivable))

	bs.NetIncome = Income(snap).NetIncome
	for _, p := range snap.Partners {
		bs.PartnerCapitals = append(bs.PartnerCapitals, PartnerCapital{Name: p.Name, Capital: p.Capital})
		bs.TotalCapital = accounting.Round2(bs.TotalCapital.Add(p.Capital))
	}
	bs.TotalLiabilitiesAndEquity = accounting.Round2(bs.TotalPayable.Add(bs.NetIncome).Add(bs.TotalCapital))
	return bs
}

// receivablesByCounterparty agrupa asientos receivable y ventas a crédito por
// deudor, en orden alfabético para salida determinista.
func receivablesByCounterparty(txs []*entity.Transaction) []CounterpartyBalance {
	grouped := map[string]decimal.Decimal{}
	for _, tx := range txs {
		var name string
		switch {
		case tx.Type == entity.TxReceivable:
			name = tx.DebtorName
		case tx.Type == entity.TxSale && !tx.IsCash():
			name = tx.CustomerName
		default:
			continue
		}
		if name == "" {
			name = "Sin nombre"
		}
		grouped[name] = accounting.Round2(grouped[name].Add(tx.Amount))
	}
	return sortedBalances(grouped)
}

// payablesByCounterparty agrupa asientos payable y compras a crédito por
// acreedor.
func payablesByCounterparty(txs []*entity.Transaction) []CounterpartyBalance {
	grouped := map[string]decimal.Decimal{}
	for _, tx := range txs {
		var name string
		switch {
		case tx.Type == entity.TxPayable:
			name = tx.CreditorName
		case tx.Type == entity.TxPurchase && !tx.IsCash():
			name = tx.CreditorName
		default:
			continue
		}
		if name == "" {
			name = "Sin nombre"
		}
		grouped[name] = accounting.Round2(grouped[name].Add(tx.Amount))
	}
	return sortedBalances(grouped)
}

func sortedBalances(grouped map[string]decimal.Decimal) []CounterpartyBalance {
	out := make([]CounterpartyBalance, 0, len(grouped))
	for name, amount := range grouped {
		out = append(out, CounterpartyBalance{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CashFlowStatement estado de flujo de efectivo por secciones.
type CashFlowStatement struct {
	Operating        decimal.Decimal `json:"operating"`
	Investing        decimal.Decimal `json:"investing"`
	Financing        decimal.Decimal `json:"financing"`
	NetChange        decimal.Decimal `json:"net_change"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// CashFlow arma el estado de flujo de efectivo. Operación: ventas y ganancias
// en efectivo menos compras, gastos y pérdidas en efectivo. Inversión: ningún
// tipo de asiento mapea aquí (siempre cero). Financiación: aportes, depósitos
// y entradas por pagar menos retiros y salidas por cobrar. El saldo inicial se
// deriva del saldo actual menos el cambio neto.
func CashFlow(snap *entity.Snapshot) *CashFlowStatement {
	cf := &CashFlowStatement{
		Operating: decimal.Zero,
		Investing: decimal.Zero,
		Financing: decimal.Zero,
	}
	for _, tx := range snap.Transactions {
		switch tx.Type {
		case entity.TxSale, entity.TxGain, entity.TxPurchase, entity.TxExpense, entity.TxLoss:
			// CashEffect ya devuelve cero para ventas y compras a crédito.
			cf.Operating = accounting.Round2(cf.Operating.Add(ledger.CashEffect(tx)))
		case entity.TxInvesting, entity.TxDeposit, entity.TxPayable,
			entity.TxWithdrawal, entity.TxReceivable:
			cf.Financing = accounting.Round2(cf.Financing.Add(ledger.CashEffect(tx)))
		}
	}
	cf.NetChange = accounting.Round2(cf.Operating.Add(cf.Investing).Add(cf.Financing))
	cf.EndingBalance = snap.Cash
	cf.BeginningBalance = accounting.Round2(snap.Cash.Sub(cf.NetChange))
	return cf
}
