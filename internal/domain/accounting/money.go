package accounting

import "github.com/shopspring/decimal"

// Round2 redondea un monto a 2 decimales (semántica de dinero: se redondea
// después de cada paso aritmético, no solo al presentar).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MulRound multiplica dos montos y redondea a 2 decimales.
func MulRound(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

// DivRound divide dos montos y redondea a 2 decimales. Divisor cero devuelve cero.
func DivRound(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Round(2)
}

// UnitCostFromTotal recalcula el costo unitario a partir del valor total y la
// cantidad (o gramos) restante. Cantidad cero devuelve cero.
func UnitCostFromTotal(totalValue, units decimal.Decimal) decimal.Decimal {
	return DivRound(totalValue, units)
}
