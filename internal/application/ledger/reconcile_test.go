package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func TestReconcile_ConsistenteTrasOperaciones(t *testing.T) {
	e := newTestEngine(t)
	mustApply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Ana", Amount: dec("1000")})
	mustApply(t, e, ledger.Event{
		Kind: entity.TxPurchase, ProductName: "Botella", ProductType: entity.ItemBottles,
		Quantity: dec("10"), UnitCost: dec("50"), PaymentMethod: entity.PaymentCash,
	})
	mustApply(t, e, ledger.Event{
		Kind: entity.TxSale, ProductName: "Botella", Quantity: dec("5"),
		UnitPrice: dec("100"), PaymentMethod: entity.PaymentCash,
	})
	mustApply(t, e, ledger.Event{Kind: entity.TxExpense, Amount: dec("30")})

	report := e.Reconcile()

	assert.True(t, report.Consistent)
	assert.True(t, report.CashDrift.IsZero())
	assert.True(t, report.SalesDrift.IsZero())
	assert.Equal(t, 4, report.JournalEntries)
	assert.True(t, dec("970").Equal(report.JournalCash))
	assert.True(t, dec("500").Equal(report.JournalSales))
}

func TestReconcile_DetectaDesfaseDeAgregados(t *testing.T) {
	e := newTestEngine(t)
	mustApply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Ana", Amount: dec("1000")})

	// Rehidratar con un efectivo que no coincide con el replay del diario.
	snap := e.Store().State()
	e.Store().Load(snap.Transactions, snap.Inventory, snap.Partners, dec("1500"), decimal.Zero)

	report := e.Reconcile()

	require.False(t, report.Consistent)
	assert.True(t, dec("500").Equal(report.CashDrift))
	assert.True(t, report.SalesDrift.IsZero())
}

func TestReconcile_LibroVacio(t *testing.T) {
	e := newTestEngine(t)
	report := e.Reconcile()
	assert.True(t, report.Consistent)
	assert.Equal(t, 0, report.JournalEntries)
}
