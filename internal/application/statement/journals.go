package statement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// JournalLine una línea del libro diario general. Las líneas de crédito van
// sangradas bajo la línea de débito de su asiento.
type JournalLine struct {
	TransactionID string          `json:"transaction_id"`
	Account       string          `json:"account"`
	Description   string          `json:"description,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Indented      bool            `json:"indented"`
}

// JournalGroup los asientos de una misma fecha.
type JournalGroup struct {
	Date  string        `json:"date"`
	Lines []JournalLine `json:"lines"`
}

// GeneralJournal rinde el diario agrupado por fecha, en el orden de registro.
// Cada asiento produce su línea de débito y debajo, sangrada, la de crédito.
func GeneralJournal(snap *entity.Snapshot) []JournalGroup {
	var groups []JournalGroup
	index := map[string]int{}
	for _, tx := range snap.Transactions {
		date := tx.Date.Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			groups = append(groups, JournalGroup{Date: date})
			i = len(groups) - 1
			index[date] = i
		}
		groups[i].Lines = append(groups[i].Lines,
			JournalLine{
				TransactionID: tx.ID,
				Account:       tx.Debit.Account,
				Description:   tx.Description,
				Debit:         tx.Amount,
			},
			JournalLine{
				TransactionID: tx.ID,
				Account:       tx.Credit.Account,
				Credit:        tx.Amount,
				Indented:      true,
			},
		)
	}
	return groups
}

// SalesRow una venta del libro de ventas.
type SalesRow struct {
	TransactionID string          `json:"transaction_id"`
	Date          string          `json:"date"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Amount        decimal.Decimal `json:"amount"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	PaymentMethod string          `json:"payment_method"`
	CustomerName  string          `json:"customer_name,omitempty"`
	OrderNumber   string          `json:"order_number,omitempty"`
}

// SalesLedger rinde el libro de ventas: una fila por asiento de venta, en
// orden de registro.
func SalesLedger(snap *entity.Snapshot) []SalesRow {
	var rows []SalesRow
	for _, tx := range snap.Transactions {
		if tx.Type != entity.TxSale {
			continue
		}
		rows = append(rows, SalesRow{
			TransactionID: tx.ID,
			Date:          tx.Date.Format("2006-01-02"),
			ProductName:   tx.ProductName,
			Quantity:      tx.Quantity,
			Amount:        tx.Amount,
			UnitCost:      tx.UnitCost,
			PaymentMethod: tx.PaymentMethod,
			CustomerName:  tx.CustomerName,
			OrderNumber:   tx.OrderNumber,
		})
	}
	return rows
}

// InventoryRow un artículo del libro de inventario.
type InventoryRow struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Grams        decimal.Decimal `json:"grams"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

// InventoryLedger rinde el libro de inventario agrupado por tipo en el orden
// estable de tipos, artículos en orden de alta.
func InventoryLedger(snap *entity.Snapshot) []InventoryRow {
	var rows []InventoryRow
	for _, itemType := range inventoryTypeOrder {
		for _, it := range snap.Inventory {
			if it.Type != itemType {
				continue
			}
			rows = append(rows, InventoryRow{
				Name:         it.Name,
				Type:         it.Type,
				Quantity:     it.Quantity,
				Grams:        it.Grams,
				UnitCost:     it.UnitCost,
				TotalValue:   it.TotalValue,
				SellingPrice: it.SellingPrice,
			})
		}
	}
	return rows
}
