package excel_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/excel"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seededSnapshot(t *testing.T) *entity.Snapshot {
	t.Helper()
	e := ledger.NewEngine(ledger.NewStore(), ledger.NewHistory(0), ledger.Repos{}, nil)
	events := []ledger.Event{
		{Kind: entity.TxInvesting, PartnerName: "Ana", Amount: dec("1000")},
		{Kind: entity.TxPurchase, ProductName: "Botella", ProductType: entity.ItemBottles,
			Quantity: dec("10"), UnitCost: dec("50"), PaymentMethod: entity.PaymentCash},
		{Kind: entity.TxSale, ProductName: "Botella", Quantity: dec("5"),
			UnitPrice: dec("100"), PaymentMethod: entity.PaymentCash},
		{Kind: entity.TxExpense, Amount: dec("30"), Description: "Envíos"},
	}
	for _, ev := range events {
		_, err := e.Apply(ev)
		require.NoError(t, err)
	}
	return e.Store().State()
}

func TestExport_GeneraLasSieteHojas(t *testing.T) {
	book, err := excel.NewExporter().Export(seededSnapshot(t))
	require.NoError(t, err)
	require.NotEmpty(t, book)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		excel.SheetIncome,
		excel.SheetBalance,
		excel.SheetCashFlow,
		excel.SheetTrialBalance,
		excel.SheetJournal,
		excel.SheetSales,
		excel.SheetInventory,
	}, f.GetSheetList())
}

func TestExport_EstadoDeResultadosConMontos(t *testing.T) {
	book, err := excel.NewExporter().Export(seededSnapshot(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(excel.SheetIncome, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Sales Revenue", label)
	amount, err := f.GetCellValue(excel.SheetIncome, "B3")
	require.NoError(t, err)
	assert.NotEmpty(t, amount)
}

func TestExport_LibroVacio_NoFalla(t *testing.T) {
	e := ledger.NewEngine(ledger.NewStore(), ledger.NewHistory(0), ledger.Repos{}, nil)

	book, err := excel.NewExporter().Export(e.Store().State())
	require.NoError(t, err)
	require.NotEmpty(t, book)

	f, err := excelize.OpenReader(bytes.NewReader(book))
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 7)
}
