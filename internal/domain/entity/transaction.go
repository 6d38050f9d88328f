package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del diario.
const (
	TxPurchase   = "purchase"   // compra de inventario
	TxSale       = "sale"       // venta
	TxExpense    = "expense"    // gasto operativo
	TxWithdrawal = "withdrawal" // retiro de capital de un socio
	TxCreate     = "create"     // ensamble de producto (botellas + aceite)
	TxGain       = "gain"       // ganancia extraordinaria
	TxLoss       = "loss"       // pérdida extraordinaria
	TxClosing    = "closing"    // asiento de cierre de período
	TxManual     = "manual"     // asiento manual de ajuste
	TxInvesting  = "investing"  // aporte inicial de capital
	TxDeposit    = "deposit"    // aporte adicional de capital
	TxPayable    = "payable"    // obligación por pagar (entrada de efectivo)
	TxReceivable = "receivable" // derecho por cobrar (salida de efectivo)
)

// Métodos de pago.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// Nombres de cuenta estructurados. Las cuentas de inventario, capital y
// cuentas por cobrar/pagar se componen con los helpers de abajo.
const (
	AccountCash          = "Cash"
	AccountSalesRevenue  = "Sales Revenue"
	AccountCOGS          = "Cost of Goods Sold"
	AccountExpense       = "Operating Expense"
	AccountGain          = "Other Gains"
	AccountLoss          = "Other Losses"
	AccountIncomeSummary = "Income Summary"
)

// AccountRef referencia estructurada a una cuenta con su monto.
// El label legible ("Cash $50.00") es una derivación de presentación;
// los reportes nunca lo re-parsean.
type AccountRef struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// Label renderiza la referencia en el formato histórico del libro diario.
func (a AccountRef) Label() string {
	return a.Account + " $" + a.Amount.StringFixed(2)
}

// IsZero indica si la referencia está vacía (asientos sin contrapartida definida).
func (a AccountRef) IsZero() bool {
	return a.Account == "" && a.Amount.IsZero()
}

// InventoryAccount compone el nombre de cuenta de inventario de un producto.
func InventoryAccount(productName string) string {
	return "Inventory - " + productName
}

// CapitalAccount compone el nombre de cuenta de capital de un socio.
func CapitalAccount(partnerName string) string {
	return partnerName + " Capital"
}

// ReceivableAccount compone la cuenta por cobrar de una contraparte.
func ReceivableAccount(counterparty string) string {
	return "Accounts Receivable - " + counterparty
}

// PayableAccount compone la cuenta por pagar de una contraparte.
func PayableAccount(counterparty string) string {
	return "Accounts Payable - " + counterparty
}

// Transaction es un asiento del libro diario: un evento económico registrado
// con monto, referencias débito/crédito estructuradas y los campos propios de
// cada tipo. Inmutable una vez registrado salvo por la operación explícita de
// edición del motor, que revierte y reaplica efectos.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // siempre >= 0
	Debit         AccountRef      `json:"debit"`
	Credit        AccountRef      `json:"credit"`
	PaymentMethod string          `json:"payment_method,omitempty"` // cash | credit
	ProductName   string          `json:"product_name,omitempty"`
	ProductType   string          `json:"product_type,omitempty"`
	Quantity      decimal.Decimal `json:"quantity,omitempty"` // unidades, o gramos para aceite
	UnitCost      decimal.Decimal `json:"unit_cost,omitempty"`
	PartnerName   string          `json:"partner_name,omitempty"`
	CreditorName  string          `json:"creditor_name,omitempty"`
	DebtorName    string          `json:"debtor_name,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	OrderNumber   string          `json:"order_number,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Counterparty devuelve el nombre de la contraparte de crédito del asiento:
// deudor para cuentas por cobrar y ventas a crédito, acreedor para cuentas
// por pagar y compras a crédito.
func (t *Transaction) Counterparty() string {
	switch t.Type {
	case TxReceivable:
		return t.DebtorName
	case TxPayable:
		return t.CreditorName
	case TxSale:
		return t.CustomerName
	case TxPurchase:
		return t.CreditorName
	}
	return ""
}

// IsCash indica si el asiento movió efectivo por método de pago.
func (t *Transaction) IsCash() bool {
	return t.PaymentMethod == PaymentCash
}

// Clone devuelve una copia independiente del asiento.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	return &cp
}
