package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Partner es un socio de la empresa con su capital acumulado.
// El nombre es único entre socios vigentes. Solo puede eliminarse con capital
// en cero; su capital se mueve por retiros, aportes y distribución de cierre.
type Partner struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Capital   decimal.Decimal `json:"capital"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone devuelve una copia independiente del socio.
func (p *Partner) Clone() *Partner {
	cp := *p
	return &cp
}
