// Package closing implementa el cierre de período: distribución del resultado
// neto entre socios por porcentaje, asientos de cierre, exportación y reinicio
// del diario.
package closing

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/statement"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/accounting"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Estados del proceso de cierre.
const (
	StateIdle                = "idle"
	StateDistributionEntered = "distribution_entered"
	StateConfirmed           = "confirmed"
	StateExported            = "exported"
)

// Exporter es el colaborador de exportación (libro de Excel multi-hoja).
type Exporter interface {
	Export(snap *entity.Snapshot) ([]byte, error)
}

// Share porcentaje asignado a un socio.
type Share struct {
	PartnerName string          `json:"partner_name"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// Process es la máquina de estados del cierre:
//
//	Idle → DistributionEntered → Confirmed → Exported → (reset) Idle
//
// Los efectos sobre el capital se aplican en Confirm, la confirmación final
// explícita, de modo que cancelar en el paso de exportación deja un período
// cerrado pero sin reiniciar; Reset limpia diario y ventas acumuladas dejando
// efectivo, inventario y socios (ya redistribuidos) intactos.
type Process struct {
	mu       sync.Mutex
	state    string
	shares   []Share
	engine   *ledger.Engine
	exporter Exporter
	log      *logger.Logger
}

// NewProcess construye el proceso en estado Idle.
func NewProcess(engine *ledger.Engine, exporter Exporter, log *logger.Logger) *Process {
	if log == nil {
		log = logger.Nop()
	}
	return &Process{state: StateIdle, engine: engine, exporter: exporter, log: log}
}

// State devuelve el estado actual del proceso.
func (p *Process) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Shares devuelve la distribución vigente.
func (p *Process) Shares() []Share {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sharesCopy()
}

// Start inicia la distribución con cuotas iguales (100/cantidadDeSocios),
// editables antes de confirmar.
func (p *Process) Start() ([]Share, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateIdle {
		return nil, domain.ErrClosingTransition
	}
	snap := p.engine.Store().State()
	if len(snap.Partners) == 0 {
		return nil, domain.ErrInvalidInput
	}
	equal := accounting.EqualShares(len(snap.Partners))
	p.shares = make([]Share, len(snap.Partners))
	for i, partner := range snap.Partners {
		p.shares[i] = Share{PartnerName: partner.Name, Percentage: equal[i]}
	}
	p.state = StateDistributionEntered
	return p.sharesCopy(), nil
}

// SetPercentages reemplaza los porcentajes. Cada nombre debe corresponder a
// un socio de la distribución; la suma se valida recién en Confirm.
func (p *Process) SetPercentages(updates []Share) ([]Share, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateDistributionEntered {
		return nil, domain.ErrClosingTransition
	}
	for _, u := range updates {
		found := false
		for i := range p.shares {
			if p.shares[i].PartnerName == u.PartnerName {
				p.shares[i].Percentage = u.Percentage
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrNotFound
		}
	}
	return p.sharesCopy(), nil
}

// Confirm valida que los porcentajes sumen 100 (±0.01) y aplica los asientos
// de cierre a través del motor: uno agregado que mueve |resultadoNeto| entre
// Income Summary y Partner Capitals, y uno de distribución por socio (los
// capitales se actualizan incrementalmente, asiento por asiento).
func (p *Process) Confirm() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateDistributionEntered {
		return domain.ErrClosingTransition
	}
	percentages := make([]decimal.Decimal, len(p.shares))
	for i, s := range p.shares {
		percentages[i] = s.Percentage
	}
	if !accounting.PercentagesSumTo100(percentages) {
		return domain.ErrPercentagesSum
	}

	snap := p.engine.Store().State()
	netIncome := statement.Income(snap).NetIncome
	total := netIncome.Abs()

	// Asiento agregado de cierre; la dirección depende del signo del resultado.
	aggregate := ledger.Event{
		Kind:        entity.TxClosing,
		Description: "Cierre de período",
		Amount:      total,
		Debit:       entity.AccountRef{Account: entity.AccountIncomeSummary},
		Credit:      entity.AccountRef{Account: "Partner Capitals"},
	}
	if netIncome.IsNegative() {
		aggregate.Debit, aggregate.Credit = aggregate.Credit, aggregate.Debit
	}
	if total.IsPositive() {
		if _, err := p.engine.Apply(aggregate); err != nil {
			return err
		}
	}

	amounts := accounting.Distribute(total, percentages)
	for i, s := range p.shares {
		if amounts[i].IsZero() {
			continue
		}
		ev := ledger.Event{
			Kind:        entity.TxClosing,
			Description: "Distribución de resultado - " + s.PartnerName,
			Amount:      amounts[i],
			PartnerName: s.PartnerName,
			Debit:       entity.AccountRef{Account: entity.AccountIncomeSummary},
			Credit:      entity.AccountRef{Account: entity.CapitalAccount(s.PartnerName)},
		}
		if netIncome.IsNegative() {
			ev.Debit, ev.Credit = ev.Credit, ev.Debit
		}
		if _, err := p.engine.Apply(ev); err != nil {
			return err
		}
	}
	p.state = StateConfirmed
	return nil
}

// Export invoca el colaborador de exportación con los asientos de cierre ya
// en el diario. La transición a Exported ocurre aunque la exportación falle;
// el error se registra y se devuelve para informar al usuario.
func (p *Process) Export() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateConfirmed {
		return nil, domain.ErrClosingTransition
	}
	var (
		book []byte
		err  error
	)
	if p.exporter != nil {
		book, err = p.exporter.Export(p.engine.Store().State())
		if err != nil {
			p.log.Error().Err(err).Msg("exportar cierre")
		}
	}
	p.state = StateExported
	return book, err
}

// Reset limpia el diario y las ventas acumuladas e inicia el nuevo período.
func (p *Process) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateExported {
		return domain.ErrClosingTransition
	}
	if err := p.engine.ResetPeriod(); err != nil {
		return err
	}
	p.state = StateIdle
	p.shares = nil
	return nil
}

// Cancel aborta el proceso. Antes de Confirm no se aplicó ningún efecto;
// después de Confirm los asientos de cierre ya aplicados se conservan (el
// período queda cerrado sin reiniciar).
func (p *Process) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateIdle {
		return domain.ErrClosingTransition
	}
	p.state = StateIdle
	p.shares = nil
	return nil
}

func (p *Process) sharesCopy() []Share {
	out := make([]Share, len(p.shares))
	copy(out, p.shares)
	return out
}
