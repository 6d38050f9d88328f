package accounting

import "github.com/shopspring/decimal"

// Tolerancia para validar que los porcentajes de distribución suman 100.
var percentTolerance = decimal.NewFromFloat(0.01)

// EqualShares reparte 100% en partes iguales entre n socios, redondeado a 2
// decimales. La diferencia por redondeo se asigna al primer socio para que la
// suma sea exactamente 100.
func EqualShares(n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	share := hundred.Div(decimal.NewFromInt(int64(n))).Round(2)
	shares := make([]decimal.Decimal, n)
	total := decimal.Zero
	for i := range shares {
		shares[i] = share
		total = total.Add(share)
	}
	shares[0] = shares[0].Add(hundred.Sub(total))
	return shares
}

// PercentagesSumTo100 verifica que la suma de porcentajes esté dentro de la
// tolerancia de 0.01 respecto a 100.
func PercentagesSumTo100(percentages []decimal.Decimal) bool {
	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(p)
	}
	return sum.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(percentTolerance)
}

// Distribute reparte un monto según porcentajes. Cada cuota se redondea a 2
// decimales y el residuo de redondeo se suma a la última cuota, de modo que
// la suma de las cuotas iguale el monto distribuido.
func Distribute(amount decimal.Decimal, percentages []decimal.Decimal) []decimal.Decimal {
	if len(percentages) == 0 {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	out := make([]decimal.Decimal, len(percentages))
	assigned := decimal.Zero
	for i, p := range percentages {
		out[i] = amount.Mul(p).Div(hundred).Round(2)
		assigned = assigned.Add(out[i])
	}
	last := len(out) - 1
	out[last] = out[last].Add(amount.Sub(assigned))
	return out
}
