package ledger

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// Store mantiene el estado vivo del libro: diario ordenado, inventario, socios
// y los agregados cacheados (efectivo y ventas acumuladas). Hay exactamente una
// instancia por aplicación; el mutex garantiza un solo escritor aunque lleguen
// peticiones HTTP concurrentes. El estado en memoria es la fuente de verdad
// para lecturas; la persistencia va detrás (write-behind).
type Store struct {
	mu           sync.RWMutex
	transactions []*entity.Transaction
	inventory    []*entity.InventoryItem
	partners     []*entity.Partner
	cash         decimal.Decimal
	totalSales   decimal.Decimal
}

// NewStore construye un libro vacío.
func NewStore() *Store {
	return &Store{
		cash:       decimal.Zero,
		totalSales: decimal.Zero,
	}
}

// Load reemplaza el estado completo (carga inicial desde la persistencia).
func (s *Store) Load(txs []*entity.Transaction, inv []*entity.InventoryItem, partners []*entity.Partner, cash, totalSales decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txs
	s.inventory = inv
	s.partners = partners
	s.cash = cash
	s.totalSales = totalSales
}

// State devuelve una copia profunda del estado completo, segura para el lado
// de lectura (generación de estados financieros y exportaciones).
func (s *Store) State() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.NewSnapshot(s.transactions, s.inventory, s.partners, s.cash, s.totalSales)
}

// snapshot copia el estado actual. El caller debe tener el lock.
func (s *Store) snapshot() *entity.Snapshot {
	return entity.NewSnapshot(s.transactions, s.inventory, s.partners, s.cash, s.totalSales)
}

// restore reemplaza el estado vivo con una copia profunda del snapshot.
// El caller debe tener el lock.
func (s *Store) restore(snap *entity.Snapshot) {
	cp := snap.Clone()
	s.transactions = cp.Transactions
	s.inventory = cp.Inventory
	s.partners = cp.Partners
	s.cash = cp.Cash
	s.totalSales = cp.TotalSales
}

// findItem busca un artículo por nombre dentro de un tipo. El nombre es la
// clave de facto por tipo. Caller con lock.
func (s *Store) findItem(name, itemType string) *entity.InventoryItem {
	for _, it := range s.inventory {
		if it.Type == itemType && strings.EqualFold(it.Name, name) {
			return it
		}
	}
	return nil
}

// findItemByName busca un artículo por nombre en cualquier tipo, prefiriendo
// productos vendibles (created primero, luego el resto). Caller con lock.
func (s *Store) findItemByName(name string) *entity.InventoryItem {
	if it := s.findItem(name, entity.ItemCreated); it != nil {
		return it
	}
	for _, it := range s.inventory {
		if strings.EqualFold(it.Name, name) {
			return it
		}
	}
	return nil
}

// findItemOfType devuelve el primer artículo del tipo dado. Caller con lock.
func (s *Store) findItemOfType(itemType string) *entity.InventoryItem {
	for _, it := range s.inventory {
		if it.Type == itemType {
			return it
		}
	}
	return nil
}

// findPartner busca un socio por nombre. Caller con lock.
func (s *Store) findPartner(name string) *entity.Partner {
	for _, p := range s.partners {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// findTransaction devuelve el asiento y su índice en el diario, o (nil, -1).
// Caller con lock.
func (s *Store) findTransaction(id string) (*entity.Transaction, int) {
	for i, t := range s.transactions {
		if t.ID == id {
			return t, i
		}
	}
	return nil, -1
}

// Cash devuelve el saldo de efectivo actual.
func (s *Store) Cash() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cash
}

// TotalSales devuelve las ventas acumuladas del período.
func (s *Store) TotalSales() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSales
}

// JournalLen devuelve la cantidad de asientos del diario.
func (s *Store) JournalLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
