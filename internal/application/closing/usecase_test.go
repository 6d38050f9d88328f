package closing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/closing"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type stubExporter struct {
	book []byte
	err  error
}

func (s *stubExporter) Export(_ *entity.Snapshot) ([]byte, error) { return s.book, s.err }

func newEngine(t *testing.T) *ledger.Engine {
	t.Helper()
	return ledger.NewEngine(ledger.NewStore(), ledger.NewHistory(0), ledger.Repos{}, nil)
}

func apply(t *testing.T, e *ledger.Engine, ev ledger.Event) {
	t.Helper()
	_, err := e.Apply(ev)
	require.NoError(t, err)
}

// Dos socios con capital y un resultado con residuo de redondeo.
func seedTwoPartners(t *testing.T, e *ledger.Engine) {
	t.Helper()
	apply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Ana", Amount: dec("500")})
	apply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Beto", Amount: dec("500")})
}

func capitalOf(e *ledger.Engine, name string) decimal.Decimal {
	for _, p := range e.Store().State().Partners {
		if p.Name == name {
			return p.Capital
		}
	}
	return decimal.Zero
}

func TestStart_CuotasIgualesEditables(t *testing.T) {
	e := newEngine(t)
	apply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Ana", Amount: dec("100")})
	apply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Beto", Amount: dec("100")})
	apply(t, e, ledger.Event{Kind: entity.TxInvesting, PartnerName: "Caro", Amount: dec("100")})
	p := closing.NewProcess(e, nil, nil)

	shares, err := p.Start()
	require.NoError(t, err)
	require.Len(t, shares, 3)
	assert.True(t, dec("33.34").Equal(shares[0].Percentage), "el residuo va a la primera cuota")
	assert.True(t, dec("33.33").Equal(shares[1].Percentage))
	assert.Equal(t, closing.StateDistributionEntered, p.State())
}

func TestStart_SinSocios_Falla(t *testing.T) {
	p := closing.NewProcess(newEngine(t), nil, nil)
	_, err := p.Start()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, closing.StateIdle, p.State())
}

func TestSetPercentages_SocioDesconocido_Falla(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	_, err = p.SetPercentages([]closing.Share{{PartnerName: "Nadie", Percentage: dec("50")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_PorcentajesNoSuman100_Falla(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)
	_, err = p.SetPercentages([]closing.Share{
		{PartnerName: "Ana", Percentage: dec("60")},
		{PartnerName: "Beto", Percentage: dec("50")},
	})
	require.NoError(t, err)

	err = p.Confirm()
	assert.ErrorIs(t, err, domain.ErrPercentagesSum)
	assert.Equal(t, closing.StateDistributionEntered, p.State(), "sigue editable tras el rechazo")
}

// La distribución conserva el resultado: la suma de los aumentos de capital es
// exactamente |resultadoNeto|, residuo de redondeo incluido.
func TestConfirm_GananciaConResiduo_ConservaElMonto(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100.01")})
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	require.NoError(t, p.Confirm())

	deltaAna := capitalOf(e, "Ana").Sub(dec("500"))
	deltaBeto := capitalOf(e, "Beto").Sub(dec("500"))
	assert.True(t, dec("50.01").Equal(deltaAna), "obtenido %s", deltaAna)
	assert.True(t, dec("50.00").Equal(deltaBeto), "obtenido %s", deltaBeto)
	assert.True(t, dec("100.01").Equal(deltaAna.Add(deltaBeto)))
	assert.Equal(t, closing.StateConfirmed, p.State())
}

func TestConfirm_Perdida_ReduceCapitales(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxExpense, Amount: dec("60")})
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	require.NoError(t, p.Confirm())

	assert.True(t, dec("470").Equal(capitalOf(e, "Ana")))
	assert.True(t, dec("470").Equal(capitalOf(e, "Beto")))
}

func TestConfirm_ResultadoCero_NoGeneraAsientos(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	journalBefore := e.Store().JournalLen()
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	require.NoError(t, p.Confirm())

	assert.Equal(t, journalBefore, e.Store().JournalLen())
	assert.True(t, dec("500").Equal(capitalOf(e, "Ana")))
}

func TestConfirm_RegistraAsientosDeCierre(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100")})
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	require.NoError(t, p.Confirm())

	snap := e.Store().State()
	// aporte x2 + ganancia + cierre agregado + distribución x2
	require.Equal(t, 6, len(snap.Transactions))
	aggregate := snap.Transactions[3]
	assert.Equal(t, entity.TxClosing, aggregate.Type)
	assert.Equal(t, entity.AccountIncomeSummary, aggregate.Debit.Account)
	dist := snap.Transactions[4]
	assert.Equal(t, entity.CapitalAccount("Ana"), dist.Credit.Account)
}

func TestExport_TransicionaAunqueFalle(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100")})
	exportErr := errors.New("sin espacio en disco")
	p := closing.NewProcess(e, &stubExporter{err: exportErr}, nil)
	_, err := p.Start()
	require.NoError(t, err)
	require.NoError(t, p.Confirm())

	book, err := p.Export()
	assert.ErrorIs(t, err, exportErr)
	assert.Nil(t, book)
	assert.Equal(t, closing.StateExported, p.State(), "el estado avanza aunque la exportación falle")
}

func TestExport_DevuelveElLibro(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	p := closing.NewProcess(e, &stubExporter{book: []byte("xlsx")}, nil)
	_, err := p.Start()
	require.NoError(t, err)
	require.NoError(t, p.Confirm())

	book, err := p.Export()
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), book)
}

func TestReset_IniciaElNuevoPeriodo(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100")})
	p := closing.NewProcess(e, &stubExporter{}, nil)
	_, err := p.Start()
	require.NoError(t, err)
	require.NoError(t, p.Confirm())
	_, _ = p.Export()

	require.NoError(t, p.Reset())

	snap := e.Store().State()
	assert.Empty(t, snap.Transactions)
	assert.True(t, snap.TotalSales.IsZero())
	assert.True(t, dec("1100").Equal(snap.Cash), "el efectivo sobrevive")
	assert.True(t, dec("550").Equal(capitalOf(e, "Ana")), "capital ya redistribuido se conserva")
	assert.Equal(t, closing.StateIdle, p.State())
	assert.Empty(t, p.Shares())
}

func TestTransiciones_FueraDeOrden_Fallan(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	p := closing.NewProcess(e, &stubExporter{}, nil)

	_, err := p.SetPercentages(nil)
	assert.ErrorIs(t, err, domain.ErrClosingTransition)
	assert.ErrorIs(t, p.Confirm(), domain.ErrClosingTransition)
	_, err = p.Export()
	assert.ErrorIs(t, err, domain.ErrClosingTransition)
	assert.ErrorIs(t, p.Reset(), domain.ErrClosingTransition)
	assert.ErrorIs(t, p.Cancel(), domain.ErrClosingTransition)

	_, err = p.Start()
	require.NoError(t, err)
	_, err = p.Start()
	assert.ErrorIs(t, err, domain.ErrClosingTransition, "no se puede iniciar dos veces")
}

func TestCancel_AntesDeConfirmar_NoDejaRastro(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100")})
	journalBefore := e.Store().JournalLen()
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)

	require.NoError(t, p.Cancel())

	assert.Equal(t, closing.StateIdle, p.State())
	assert.Equal(t, journalBefore, e.Store().JournalLen())
	assert.True(t, dec("500").Equal(capitalOf(e, "Ana")))
}

func TestCancel_DespuesDeConfirmar_ConservaAsientos(t *testing.T) {
	e := newEngine(t)
	seedTwoPartners(t, e)
	apply(t, e, ledger.Event{Kind: entity.TxGain, Amount: dec("100")})
	p := closing.NewProcess(e, nil, nil)
	_, err := p.Start()
	require.NoError(t, err)
	require.NoError(t, p.Confirm())
	journalAfterConfirm := e.Store().JournalLen()

	require.NoError(t, p.Cancel())

	assert.Equal(t, closing.StateIdle, p.State())
	assert.Equal(t, journalAfterConfirm, e.Store().JournalLen(), "los asientos aplicados se conservan")
	assert.True(t, dec("550").Equal(capitalOf(e, "Ana")))
}
