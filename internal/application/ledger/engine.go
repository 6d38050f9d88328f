package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/accounting"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// Event es el evento discriminado que recibe el motor. Kind coincide con los
// tipos de Transaction; el resto de campos son el payload específico de cada
// tipo (una compra necesita producto/tipo/cantidad-o-gramos/costo, una venta
// producto/cantidad/método de pago, un retiro socio/monto, etc.).
type Event struct {
	Kind          string
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string

	// purchase / sale
	ProductName string
	ProductType string
	Quantity    decimal.Decimal
	Grams       decimal.Decimal
	UnitCost    decimal.Decimal
	UnitPrice   decimal.Decimal // venta: precio; si es cero se usa SellingPrice del artículo
	Boxed       bool
	BoxName     string

	// create (ensamble)
	BottlesName  string
	BottlesQty   decimal.Decimal
	OilName      string
	OilGrams     decimal.Decimal
	SellingPrice decimal.Decimal

	// contrapartes
	PartnerName  string
	CreditorName string
	DebtorName   string
	CustomerName string
	OrderNumber  string
	Note         string

	// manual / closing: referencias estructuradas de cuenta
	Debit  entity.AccountRef
	Credit entity.AccountRef
}

// Repos agrupa los puertos de persistencia del libro. Cualquiera puede ser nil
// (tests); el motor omite la escritura correspondiente.
type Repos struct {
	Transactions repository.TransactionRepository
	Inventory    repository.InventoryRepository
	Partners     repository.PartnerRepository
	Settings     repository.SettingsRepository
}

// Engine aplica eventos tipados al Store produciendo nuevos saldos y un
// asiento del diario. Cada operación pública corre dentro de
// runTransactionally: snapshot previo, mutación, y restauración automática
// ante cualquier error, de modo que una operación fallida es invisible para
// el caller. El snapshot de las operaciones exitosas queda en el historial
// para el deshacer explícito del usuario.
type Engine struct {
	store   *Store
	history *History
	repos   Repos
	log     *logger.Logger
}

// NewEngine construye el motor.
func NewEngine(store *Store, history *History, repos Repos, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{store: store, history: history, repos: repos, log: log}
}

// Store expone el store (lado de lectura).
func (e *Engine) Store() *Store { return e.store }

// runTransactionally toma el snapshot previo, ejecuta fn y ante error restaura
// el estado y descarta el snapshot. Centraliza el par snapshot/rollback para
// que ningún punto de entrada pueda olvidarlo.
func (e *Engine) runTransactionally(fn func() (*entity.Transaction, error)) (*entity.Transaction, error) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()

	snap := e.store.snapshot()
	e.history.Push(snap)

	tx, err := fn()
	if err != nil {
		e.store.restore(snap)
		e.history.Pop()
		return nil, err
	}
	e.persistAsync()
	return tx, nil
}

// Apply valida y aplica un evento, agregando el asiento resultante al diario.
func (e *Engine) Apply(ev Event) (*entity.Transaction, error) {
	return e.runTransactionally(func() (*entity.Transaction, error) {
		tx, err := e.applyEvent(ev)
		if err != nil {
			return nil, err
		}
		e.store.transactions = append(e.store.transactions, tx)
		return tx, nil
	})
}

// applyEvent muta saldos según el tipo y construye el asiento (sin agregarlo
// al diario). Caller con lock.
func (e *Engine) applyEvent(ev Event) (*entity.Transaction, error) {
	switch ev.Kind {
	case entity.TxPurchase:
		return e.applyPurchase(ev)
	case entity.TxSale:
		return e.applySale(ev)
	case entity.TxCreate:
		return e.applyCreate(ev)
	case entity.TxExpense, entity.TxLoss:
		return e.applyCashOut(ev)
	case entity.TxGain:
		return e.applyGain(ev)
	case entity.TxWithdrawal:
		return e.applyWithdrawal(ev)
	case entity.TxDeposit, entity.TxInvesting:
		return e.applyContribution(ev)
	case entity.TxPayable:
		return e.applyPayable(ev)
	case entity.TxReceivable:
		return e.applyReceivable(ev)
	case entity.TxManual, entity.TxClosing:
		return e.applyManual(ev)
	}
	return nil, domain.ErrInvalidInput
}

// newTransaction arma el asiento base a partir del evento.
func (e *Engine) newTransaction(ev Event, amount decimal.Decimal, debit, credit entity.AccountRef) *entity.Transaction {
	date := ev.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &entity.Transaction{
		ID:            uuid.New().String(),
		Date:          date,
		Type:          ev.Kind,
		Description:   ev.Description,
		Amount:        amount,
		Debit:         debit,
		Credit:        credit,
		PaymentMethod: ev.PaymentMethod,
		ProductName:   ev.ProductName,
		PartnerName:   ev.PartnerName,
		CreditorName:  ev.CreditorName,
		DebtorName:    ev.DebtorName,
		CustomerName:  ev.CustomerName,
		OrderNumber:   ev.OrderNumber,
		Note:          ev.Note,
		CreatedAt:     time.Now(),
	}
}

// applyPurchase crea o incrementa el artículo comprado. El aceite se controla
// por gramos, el resto por unidades. El costo unitario es el último precio de
// compra (sobrescribe, no promedio ponderado) y el valor total se realinea al
// invariante unidades*costo.
func (e *Engine) applyPurchase(ev Event) (*entity.Transaction, error) {
	if ev.ProductName == "" || ev.ProductType == "" {
		return nil, domain.ErrInvalidInput
	}
	if !ev.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	units := ev.Quantity
	if ev.ProductType == entity.ItemOil {
		units = ev.Grams
	}
	if !units.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.MulRound(units, ev.UnitCost)

	item := e.store.findItem(ev.ProductName, ev.ProductType)
	if item == nil {
		item = &entity.InventoryItem{
			ID:        uuid.New().String(),
			Name:      ev.ProductName,
			Type:      ev.ProductType,
			CreatedAt: time.Now(),
		}
		if ev.SellingPrice.IsPositive() {
			item.SellingPrice = ev.SellingPrice
		}
		e.store.inventory = append(e.store.inventory, item)
	}
	if item.IsOil() {
		item.Grams = item.Grams.Add(units)
	} else {
		item.Quantity = item.Quantity.Add(units)
	}
	item.UnitCost = ev.UnitCost
	item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
	item.UpdatedAt = time.Now()

	credit := entity.AccountRef{Account: entity.AccountCash, Amount: amount}
	if ev.PaymentMethod == entity.PaymentCash {
		e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
	} else {
		creditor := ev.CreditorName
		if creditor == "" {
			return nil, domain.ErrInvalidInput
		}
		credit = entity.AccountRef{Account: entity.PayableAccount(creditor), Amount: amount}
	}

	tx := e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.InventoryAccount(item.Name), Amount: amount},
		credit,
	)
	tx.ProductType = item.Type
	tx.Quantity = units
	tx.UnitCost = ev.UnitCost
	return tx, nil
}

// applySale descuenta el producto vendido (y una caja por unidad si va
// empacado). Venta en efectivo suma al saldo; a crédito queda como cuenta por
// cobrar del cliente. TotalSales acumula ambas.
func (e *Engine) applySale(ev Event) (*entity.Transaction, error) {
	if ev.ProductName == "" || !ev.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	item := e.store.findItemByName(ev.ProductName)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Quantity.LessThan(ev.Quantity) {
		return nil, domain.ErrInsufficientStock
	}

	price := ev.UnitPrice
	if !price.IsPositive() {
		price = item.SellingPrice
	}
	if !price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.MulRound(ev.Quantity, price)
	unitCost := item.UnitCost

	item.Quantity = item.Quantity.Sub(ev.Quantity)
	item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
	item.UpdatedAt = time.Now()

	if ev.Boxed {
		box := e.store.findItem(ev.BoxName, entity.ItemBox)
		if box == nil && ev.BoxName == "" {
			box = e.store.findItemOfType(entity.ItemBox)
		}
		if box == nil {
			return nil, domain.ErrNotFound
		}
		if box.Quantity.LessThan(ev.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		box.Quantity = box.Quantity.Sub(ev.Quantity)
		box.TotalValue = accounting.MulRound(box.Units(), box.UnitCost)
		box.UpdatedAt = time.Now()
	}

	debit := entity.AccountRef{Account: entity.AccountCash, Amount: amount}
	if ev.PaymentMethod == entity.PaymentCash {
		e.store.cash = accounting.Round2(e.store.cash.Add(amount))
	} else {
		customer := ev.CustomerName
		if customer == "" {
			return nil, domain.ErrInvalidInput
		}
		debit = entity.AccountRef{Account: entity.ReceivableAccount(customer), Amount: amount}
	}
	e.store.totalSales = accounting.Round2(e.store.totalSales.Add(amount))

	tx := e.newTransaction(ev, amount, debit,
		entity.AccountRef{Account: entity.AccountSalesRevenue, Amount: amount},
	)
	tx.ProductType = item.Type
	tx.Quantity = ev.Quantity
	tx.UnitCost = unitCost
	return tx, nil
}

// applyCreate ensambla un producto: consume botellas por unidades y aceite por
// gramos, y crea o incrementa un artículo tipo "created" cuyo costo unitario
// es costoConsumido / cantidadProducida.
func (e *Engine) applyCreate(ev Event) (*entity.Transaction, error) {
	if ev.ProductName == "" || !ev.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !ev.BottlesQty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	bottles := e.store.findItem(ev.BottlesName, entity.ItemBottles)
	if bottles == nil && ev.BottlesName == "" {
		bottles = e.store.findItemOfType(entity.ItemBottles)
	}
	if bottles == nil {
		return nil, domain.ErrNotFound
	}
	if bottles.Quantity.LessThan(ev.BottlesQty) {
		return nil, domain.ErrInsufficientStock
	}

	consumed := accounting.MulRound(ev.BottlesQty, bottles.UnitCost)

	var oil *entity.InventoryItem
	if ev.OilGrams.IsPositive() {
		oil = e.store.findItem(ev.OilName, entity.ItemOil)
		if oil == nil && ev.OilName == "" {
			oil = e.store.findItemOfType(entity.ItemOil)
		}
		if oil == nil {
			return nil, domain.ErrNotFound
		}
		if oil.Grams.LessThan(ev.OilGrams) {
			return nil, domain.ErrInsufficientStock
		}
		consumed = accounting.Round2(consumed.Add(accounting.MulRound(ev.OilGrams, oil.UnitCost)))
	}

	bottles.Quantity = bottles.Quantity.Sub(ev.BottlesQty)
	bottles.TotalValue = accounting.MulRound(bottles.Units(), bottles.UnitCost)
	bottles.UpdatedAt = time.Now()
	if oil != nil {
		oil.Grams = oil.Grams.Sub(ev.OilGrams)
		oil.TotalValue = accounting.MulRound(oil.Units(), oil.UnitCost)
		oil.UpdatedAt = time.Now()
	}

	unitCost := accounting.DivRound(consumed, ev.Quantity)
	item := e.store.findItem(ev.ProductName, entity.ItemCreated)
	if item == nil {
		item = &entity.InventoryItem{
			ID:        uuid.New().String(),
			Name:      ev.ProductName,
			Type:      entity.ItemCreated,
			CreatedAt: time.Now(),
		}
		e.store.inventory = append(e.store.inventory, item)
	}
	item.Quantity = item.Quantity.Add(ev.Quantity)
	item.UnitCost = unitCost
	item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
	if ev.SellingPrice.IsPositive() {
		item.SellingPrice = ev.SellingPrice
	}
	item.UpdatedAt = time.Now()

	tx := e.newTransaction(ev, consumed,
		entity.AccountRef{Account: entity.InventoryAccount(item.Name), Amount: consumed},
		entity.AccountRef{Account: "Inventory - Raw Materials", Amount: consumed},
	)
	tx.ProductType = entity.ItemCreated
	tx.Quantity = ev.Quantity
	tx.UnitCost = unitCost
	return tx, nil
}

// applyCashOut registra un gasto o una pérdida: sale efectivo, sin efecto en
// inventario ni socios.
func (e *Engine) applyCashOut(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Sub(amount))

	account := entity.AccountExpense
	if ev.Kind == entity.TxLoss {
		account = entity.AccountLoss
	}
	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: account, Amount: amount},
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
	), nil
}

// applyGain registra una ganancia extraordinaria: entra efectivo.
func (e *Engine) applyGain(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Add(amount))
	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
		entity.AccountRef{Account: entity.AccountGain, Amount: amount},
	), nil
}

// applyWithdrawal retira capital de un socio: sale efectivo y baja su capital.
func (e *Engine) applyWithdrawal(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	partner := e.store.findPartner(ev.PartnerName)
	if partner == nil {
		return nil, domain.ErrNotFound
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
	partner.Capital = accounting.Round2(partner.Capital.Sub(amount))
	partner.UpdatedAt = time.Now()

	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.CapitalAccount(partner.Name), Amount: amount},
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
	), nil
}

// applyContribution registra un aporte de capital. "investing" es el aporte
// inicial del alta de socio (crea el socio si no existe); "deposit" exige un
// socio existente.
func (e *Engine) applyContribution(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if ev.PartnerName == "" {
		return nil, domain.ErrInvalidInput
	}
	partner := e.store.findPartner(ev.PartnerName)
	if partner == nil {
		if ev.Kind != entity.TxInvesting {
			return nil, domain.ErrNotFound
		}
		partner = &entity.Partner{
			ID:        uuid.New().String(),
			Name:      ev.PartnerName,
			Capital:   decimal.Zero,
			CreatedAt: time.Now(),
		}
		e.store.partners = append(e.store.partners, partner)
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Add(amount))
	partner.Capital = accounting.Round2(partner.Capital.Add(amount))
	partner.UpdatedAt = time.Now()

	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
		entity.AccountRef{Account: entity.CapitalAccount(partner.Name), Amount: amount},
	), nil
}

// applyPayable registra una obligación por pagar: entra efectivo.
func (e *Engine) applyPayable(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() || ev.CreditorName == "" {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Add(amount))
	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
		entity.AccountRef{Account: entity.PayableAccount(ev.CreditorName), Amount: amount},
	), nil
}

// applyReceivable registra un derecho por cobrar: sale efectivo.
func (e *Engine) applyReceivable(ev Event) (*entity.Transaction, error) {
	if !ev.Amount.IsPositive() || ev.DebtorName == "" {
		return nil, domain.ErrInvalidInput
	}
	amount := accounting.Round2(ev.Amount)
	e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
	return e.newTransaction(ev, amount,
		entity.AccountRef{Account: entity.ReceivableAccount(ev.DebtorName), Amount: amount},
		entity.AccountRef{Account: entity.AccountCash, Amount: amount},
	), nil
}

// applyManual aplica un asiento manual o de cierre a partir de sus referencias
// estructuradas: efectivo si alguna cuenta es Cash, inventario si el nombre es
// "Inventory - <artículo>" (cantidad derivada como monto/costo unitario) y
// capital si la cuenta es "<Socio> Capital".
func (e *Engine) applyManual(ev Event) (*entity.Transaction, error) {
	amount := accounting.Round2(ev.Amount)
	if amount.IsZero() && !ev.Debit.Amount.IsZero() {
		amount = accounting.Round2(ev.Debit.Amount)
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if ev.Debit.Account == "" || ev.Credit.Account == "" {
		return nil, domain.ErrInvalidInput
	}
	debit := entity.AccountRef{Account: ev.Debit.Account, Amount: amount}
	credit := entity.AccountRef{Account: ev.Credit.Account, Amount: amount}

	if err := e.applyAccountEffect(debit.Account, amount, true); err != nil {
		return nil, err
	}
	if err := e.applyAccountEffect(credit.Account, amount, false); err != nil {
		return nil, err
	}
	return e.newTransaction(ev, amount, debit, credit), nil
}

// applyAccountEffect traduce una cuenta estructurada a su efecto de saldo.
// debitSide=true para el lado débito. Cuentas no reconocidas (Income Summary,
// gastos, etc.) no mueven saldos: solo quedan en el diario.
func (e *Engine) applyAccountEffect(account string, amount decimal.Decimal, debitSide bool) error {
	switch {
	case account == entity.AccountCash:
		if debitSide {
			e.store.cash = accounting.Round2(e.store.cash.Add(amount))
		} else {
			e.store.cash = accounting.Round2(e.store.cash.Sub(amount))
		}
	case strings.HasPrefix(account, "Inventory - "):
		name := strings.TrimPrefix(account, "Inventory - ")
		if name == "Raw Materials" {
			return nil
		}
		item := e.store.findItemByName(name)
		if item == nil {
			return domain.ErrNotFound
		}
		if item.UnitCost.IsZero() {
			return domain.ErrConflict
		}
		units := accounting.DivRound(amount, item.UnitCost)
		if !debitSide {
			if item.Units().LessThan(units) {
				return domain.ErrInsufficientStock
			}
			units = units.Neg()
		}
		if item.IsOil() {
			item.Grams = item.Grams.Add(units)
		} else {
			item.Quantity = item.Quantity.Add(units)
		}
		item.TotalValue = accounting.MulRound(item.Units(), item.UnitCost)
		item.UpdatedAt = time.Now()
	case strings.HasSuffix(account, " Capital"):
		name := strings.TrimSuffix(account, " Capital")
		partner := e.store.findPartner(name)
		if partner == nil {
			return domain.ErrNotFound
		}
		// Débito a capital reduce patrimonio; crédito lo aumenta.
		if debitSide {
			partner.Capital = accounting.Round2(partner.Capital.Sub(amount))
		} else {
			partner.Capital = accounting.Round2(partner.Capital.Add(amount))
		}
		partner.UpdatedAt = time.Now()
	}
	return nil
}

// Undo restaura el snapshot más reciente del historial. Devuelve
// ErrNothingToUndo si el historial está vacío.
func (e *Engine) Undo() error {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	snap := e.history.Pop()
	if snap == nil {
		return domain.ErrNothingToUndo
	}
	e.store.restore(snap)
	e.persistAsync()
	return nil
}

// RemovePartner elimina un socio. Solo se permite con capital en cero.
func (e *Engine) RemovePartner(name string) error {
	_, err := e.runTransactionally(func() (*entity.Transaction, error) {
		partner := e.store.findPartner(name)
		if partner == nil {
			return nil, domain.ErrNotFound
		}
		if !partner.Capital.IsZero() {
			return nil, domain.ErrPartnerHasCapital
		}
		for i, p := range e.store.partners {
			if p == partner {
				e.store.partners = append(e.store.partners[:i], e.store.partners[i+1:]...)
				break
			}
		}
		return nil, nil
	})
	return err
}

// ResetPeriod limpia el diario y las ventas acumuladas para iniciar un nuevo
// período contable; efectivo, inventario y socios quedan intactos. Lo invoca
// el proceso de cierre.
func (e *Engine) ResetPeriod() error {
	_, err := e.runTransactionally(func() (*entity.Transaction, error) {
		e.store.transactions = nil
		e.store.totalSales = decimal.Zero
		return nil, nil
	})
	if err != nil {
		return err
	}
	if e.repos.Transactions != nil {
		if clearErr := e.repos.Transactions.Clear(); clearErr != nil {
			e.log.Error().Err(clearErr).Msg("limpiar diario persistido")
		}
	}
	return nil
}

// persistAsync vuelca el estado a la persistencia en segundo plano. El estado
// en memoria ya es definitivo: un fallo de persistencia se registra en el log
// pero no se propaga al caller. Caller con lock (se copia antes de salir).
func (e *Engine) persistAsync() {
	if e.repos.Transactions == nil && e.repos.Inventory == nil &&
		e.repos.Partners == nil && e.repos.Settings == nil {
		return
	}
	snap := e.store.snapshot()
	go func() {
		if e.repos.Transactions != nil {
			if err := e.repos.Transactions.BulkPut(snap.Transactions); err != nil {
				e.log.Error().Err(err).Msg("persistir diario")
			}
		}
		if e.repos.Inventory != nil {
			if err := e.repos.Inventory.BulkPut(snap.Inventory); err != nil {
				e.log.Error().Err(err).Msg("persistir inventario")
			}
		}
		if e.repos.Partners != nil {
			if err := e.repos.Partners.BulkPut(snap.Partners); err != nil {
				e.log.Error().Err(err).Msg("persistir socios")
			}
		}
		if e.repos.Settings != nil {
			settings := &entity.Settings{
				ID:         "ledger",
				Cash:       snap.Cash,
				TotalSales: snap.TotalSales,
				UpdatedAt:  time.Now(),
			}
			if err := e.repos.Settings.Save(settings); err != nil {
				e.log.Error().Err(err).Msg("persistir agregados")
			}
		}
	}()
}
