package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// TransactionRequest entrada para registrar o editar un asiento. Type decide
// qué campos del payload aplican; el motor valida los requeridos de cada tipo.
type TransactionRequest struct {
	Type          string          `json:"type" validate:"required,oneof=purchase sale create expense gain withdrawal deposit investing loss payable receivable manual closing"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash credit"`

	ProductName string          `json:"product_name,omitempty"`
	ProductType string          `json:"product_type,omitempty" validate:"omitempty,oneof=bottles oil box other created"`
	Quantity    decimal.Decimal `json:"quantity,omitempty"`
	Grams       decimal.Decimal `json:"grams,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Boxed       bool            `json:"boxed,omitempty"`
	BoxName     string          `json:"box_name,omitempty"`

	BottlesName  string          `json:"bottles_name,omitempty"`
	BottlesQty   decimal.Decimal `json:"bottles_qty,omitempty"`
	OilName      string          `json:"oil_name,omitempty"`
	OilGrams     decimal.Decimal `json:"oil_grams,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`

	PartnerName  string `json:"partner_name,omitempty"`
	CreditorName string `json:"creditor_name,omitempty"`
	DebtorName   string `json:"debtor_name,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	OrderNumber  string `json:"order_number,omitempty"`
	Note         string `json:"note,omitempty"`

	DebitAccount  string `json:"debit_account,omitempty"`
	CreditAccount string `json:"credit_account,omitempty"`
}

// ToEvent traduce la petición al evento del motor.
func (r *TransactionRequest) ToEvent() ledger.Event {
	return ledger.Event{
		Kind:          r.Type,
		Date:          r.Date,
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		ProductName:   r.ProductName,
		ProductType:   r.ProductType,
		Quantity:      r.Quantity,
		Grams:         r.Grams,
		UnitCost:      r.UnitCost,
		UnitPrice:     r.UnitPrice,
		Boxed:         r.Boxed,
		BoxName:       r.BoxName,
		BottlesName:   r.BottlesName,
		BottlesQty:    r.BottlesQty,
		OilName:       r.OilName,
		OilGrams:      r.OilGrams,
		SellingPrice:  r.SellingPrice,
		PartnerName:   r.PartnerName,
		CreditorName:  r.CreditorName,
		DebtorName:    r.DebtorName,
		CustomerName:  r.CustomerName,
		OrderNumber:   r.OrderNumber,
		Note:          r.Note,
		Debit:         entity.AccountRef{Account: r.DebitAccount, Amount: r.Amount},
		Credit:        entity.AccountRef{Account: r.CreditAccount, Amount: r.Amount},
	}
}

// TransactionResponse salida de un asiento del diario.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DebitAccount  string          `json:"debit_account"`
	DebitLabel    string          `json:"debit_label"`
	CreditAccount string          `json:"credit_account"`
	CreditLabel   string          `json:"credit_label"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity,omitempty"`
	UnitCost      decimal.Decimal `json:"unit_cost,omitempty"`
	Counterparty  string          `json:"counterparty,omitempty"`
	OrderNumber   string          `json:"order_number,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// FromTransaction mapea el asiento de dominio a la respuesta.
func FromTransaction(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		Date:          tx.Date,
		Type:          tx.Type,
		Description:   tx.Description,
		Amount:        tx.Amount,
		DebitAccount:  tx.Debit.Account,
		DebitLabel:    tx.Debit.Label(),
		CreditAccount: tx.Credit.Account,
		CreditLabel:   tx.Credit.Label(),
		PaymentMethod: tx.PaymentMethod,
		ProductName:   tx.ProductName,
		Quantity:      tx.Quantity,
		UnitCost:      tx.UnitCost,
		Counterparty:  tx.Counterparty(),
		OrderNumber:   tx.OrderNumber,
		Note:          tx.Note,
		CreatedAt:     tx.CreatedAt,
	}
}

// FromTransactions mapea una lista de asientos.
func FromTransactions(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromTransaction(tx))
	}
	return out
}
