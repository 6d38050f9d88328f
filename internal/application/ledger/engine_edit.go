package ledger

import (
	"time"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/accounting"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// EditTransaction reemplaza un asiento por su versión corregida: revierte los
// efectos de saldo del asiento viejo y aplica los del nuevo (delta, no replay
// completo), recomputando las referencias débito/crédito a partir del tipo,
// monto y nombres. Los asientos "create" no admiten edición (no hay reversión
// segura del ensamble). El evento debe conservar el tipo original.
func (e *Engine) EditTransaction(id string, ev Event) (*entity.Transaction, error) {
	return e.runTransactionally(func() (*entity.Transaction, error) {
		old, idx := e.store.findTransaction(id)
		if old == nil {
			return nil, domain.ErrNotFound
		}
		if old.Type == entity.TxCreate {
			return nil, domain.ErrNotEditable
		}
		if ev.Kind == "" {
			ev.Kind = old.Type
		}
		if ev.Kind != old.Type {
			return nil, domain.ErrInvalidInput
		}
		if err := e.reverseEffects(old, true); err != nil {
			return nil, err
		}
		tx, err := e.applyEvent(ev)
		if err != nil {
			return nil, err
		}
		// Conserva identidad y posición en el diario.
		tx.ID = old.ID
		tx.CreatedAt = old.CreatedAt
		e.store.transactions[idx] = tx
		return tx, nil
	})
}

// DeleteTransaction aplica el efecto inverso del asiento y lo quita del diario.
func (e *Engine) DeleteTransaction(id string) error {
	_, err := e.runTransactionally(func() (*entity.Transaction, error) {
		tx, idx := e.store.findTransaction(id)
		if tx == nil {
			return nil, domain.ErrNotFound
		}
		if err := e.reverseEffects(tx, false); err != nil {
			return nil, err
		}
		e.store.transactions = append(e.store.transactions[:idx], e.store.transactions[idx+1:]...)
		return nil, nil
	})
	return err
}

// reverseEffects aplica el efecto de saldo inverso de un asiento.
//
// Caso especial documentado: al BORRAR una compra se reduce el valor total del
// artículo por el monto del asiento y se recalcula el costo unitario desde el
// nuevo valorTotal/cantidad, pero NO se revierte la cantidad (el stock físico
// ya entró; ver DESIGN.md). La EDICIÓN en cambio es reversión completa
// (forEdit=true): también resta las unidades, porque el reemplazo las vuelve a
// aplicar de inmediato y sin eso la cantidad se duplicaría.
func (e *Engine) reverseEffects(tx *entity.Transaction, forEdit bool) error {
	amount := tx.Amount
	switch tx.Type {
	case entity.TxPurchase:
		if tx.IsCash() {
			e.store.cash = accounting.Round2(e.store.cash.Add(amount))
		}
		item := e.store.findItem(tx.ProductName, tx.ProductType)
		if item == nil {
			return domain.ErrConflict
		}
		if forEdit {
			if item.Units().LessThan(tx.Quantity) {
				return domain.ErrInsufficientStock
			}
			if item.IsOil() {
				item.Grams = item.Grams.Sub(tx.Quantity)
			} else {
				item.Quantity = item.Quantity.Sub(tx.Quantity)
			}
		}
		item.TotalValue = accounting.Round2(item.TotalValue.Sub(amount))
		item.UnitCost = accounting.UnitCostFromTotal(item.TotalValue, item.Units())
		item.UpdatedAt = time.Now()

	case entity.TxSale:
		if tx.IsCash() {
			e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
		}
		e.store.totalSales = accounting.Round2(e.store.totalSales.Sub(amount))
		item := e.store.findItemByName(tx.ProductName)
		if item == nil {
			return domain.ErrConflict
		}
		item.Quantity = item.Quantity.Add(tx.Quantity)
		item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
		item.UpdatedAt = time.Now()

	case entity.TxCreate:
		// La reversión del ensamble solo deshace el producto terminado; las
		// materias primas consumidas no se restauran (el asiento no registra
		// el detalle de consumo).
		item := e.store.findItem(tx.ProductName, entity.ItemCreated)
		if item == nil {
			return domain.ErrConflict
		}
		if item.Quantity.LessThan(tx.Quantity) {
			return domain.ErrInsufficientStock
		}
		item.Quantity = item.Quantity.Sub(tx.Quantity)
		item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
		item.UpdatedAt = time.Now()

	case entity.TxExpense, entity.TxLoss:
		e.store.cash = accounting.Round2(e.store.cash.Add(amount))

	case entity.TxGain:
		e.store.cash = accounting.Round2(e.store.cash.Sub(amount))

	case entity.TxWithdrawal:
		e.store.cash = accounting.Round2(e.store.cash.Add(amount))
		partner := e.store.findPartner(tx.PartnerName)
		if partner == nil {
			return domain.ErrConflict
		}
		partner.Capital = accounting.Round2(partner.Capital.Add(amount))
		partner.UpdatedAt = time.Now()

	case entity.TxDeposit, entity.TxInvesting:
		e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
		partner := e.store.findPartner(tx.PartnerName)
		if partner == nil {
			return domain.ErrConflict
		}
		partner.Capital = accounting.Round2(partner.Capital.Sub(amount))
		partner.UpdatedAt = time.Now()

	case entity.TxPayable:
		e.store.cash = accounting.Round2(e.store.cash.Sub(amount))

	case entity.TxReceivable:
		e.store.cash = accounting.Round2(e.store.cash.Add(amount))

	case entity.TxManual, entity.TxClosing:
		// Inverso exacto: el débito se deshace como crédito y viceversa.
		if err := e.applyAccountEffect(tx.Debit.Account, amount, false); err != nil {
			return err
		}
		if err := e.applyAccountEffect(tx.Credit.Account, amount, true); err != nil {
			return err
		}

	default:
		return domain.ErrInvalidInput
	}
	return nil
}
