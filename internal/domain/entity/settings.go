package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings es el registro singleton con los agregados cacheados del libro.
// Cash y TotalSales se actualizan incrementalmente por el motor (no se
// recalculan del diario en cada lectura); Reconcile() del motor detecta el
// desfase si alguna reversión se omitió.
type Settings struct {
	ID         string          `json:"id"`
	Cash       decimal.Decimal `json:"cash"` // saldo corriente, con signo
	TotalSales decimal.Decimal `json:"total_sales"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
