package entity

import "github.com/shopspring/decimal"

// Snapshot es una copia profunda del estado completo del libro en un instante:
// diario, efectivo, ventas acumuladas, inventario y socios. Los snapshots son
// independientes del estado vivo (ninguna referencia compartida), de modo que
// restaurar uno siempre deja un estado consistente previo.
type Snapshot struct {
	Transactions []*Transaction
	Inventory    []*InventoryItem
	Partners     []*Partner
	Cash         decimal.Decimal
	TotalSales   decimal.Decimal
}

// NewSnapshot copia en profundidad el estado recibido.
func NewSnapshot(txs []*Transaction, inv []*InventoryItem, partners []*Partner, cash, totalSales decimal.Decimal) *Snapshot {
	s := &Snapshot{
		Transactions: make([]*Transaction, len(txs)),
		Inventory:    make([]*InventoryItem, len(inv)),
		Partners:     make([]*Partner, len(partners)),
		Cash:         cash,
		TotalSales:   totalSales,
	}
	for i, t := range txs {
		s.Transactions[i] = t.Clone()
	}
	for i, it := range inv {
		s.Inventory[i] = it.Clone()
	}
	for i, p := range partners {
		s.Partners[i] = p.Clone()
	}
	return s
}

// Clone copia en profundidad el snapshot (para restaurar sin entregar las
// referencias internas del historial).
func (s *Snapshot) Clone() *Snapshot {
	return NewSnapshot(s.Transactions, s.Inventory, s.Partners, s.Cash, s.TotalSales)
}
