package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// PartnerResponse salida de un socio con su capital acumulado.
type PartnerResponse struct {
	Name    string          `json:"name"`
	Capital decimal.Decimal `json:"capital"`
}

// FromPartners mapea la lista de socios.
func FromPartners(partners []*entity.Partner) []PartnerResponse {
	out := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, PartnerResponse{Name: p.Name, Capital: p.Capital})
	}
	return out
}

// InventoryItemResponse salida de un artículo del inventario.
type InventoryItemResponse struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Grams        decimal.Decimal `json:"grams,omitempty"`
	Milliliters  decimal.Decimal `json:"milliliters,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`
}

// FromInventory mapea la lista de artículos.
func FromInventory(items []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, InventoryItemResponse{
			Name:         it.Name,
			Type:         it.Type,
			Quantity:     it.Quantity,
			Grams:        it.Grams,
			Milliliters:  it.Milliliters,
			UnitCost:     it.UnitCost,
			TotalValue:   it.TotalValue,
			SellingPrice: it.SellingPrice,
		})
	}
	return out
}
