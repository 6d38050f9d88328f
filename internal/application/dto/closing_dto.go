package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/closing"
)

// ShareRequest porcentaje de un socio en la distribución del cierre.
type ShareRequest struct {
	PartnerName string          `json:"partner_name" validate:"required"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// SetPercentagesRequest entrada para ajustar la distribución antes de confirmar.
type SetPercentagesRequest struct {
	Shares []ShareRequest `json:"shares" validate:"required,min=1,dive"`
}

// ToShares traduce la petición a las cuotas del proceso de cierre.
func (r *SetPercentagesRequest) ToShares() []closing.Share {
	out := make([]closing.Share, 0, len(r.Shares))
	for _, s := range r.Shares {
		out = append(out, closing.Share{PartnerName: s.PartnerName, Percentage: s.Percentage})
	}
	return out
}

// ClosingStateResponse estado actual del proceso de cierre y su distribución.
type ClosingStateResponse struct {
	State  string          `json:"state"`
	Shares []closing.Share `json:"shares,omitempty"`
}
