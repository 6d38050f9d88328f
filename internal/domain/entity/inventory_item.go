package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo de inventario. El aceite se controla por gramos; el resto
// por unidades. "created" identifica productos ensamblados a partir de
// botellas y aceite.
const (
	ItemBottles = "bottles"
	ItemOil     = "oil"
	ItemBox     = "box"
	ItemOther   = "other"
	ItemCreated = "created"
)

// InventoryItem es un artículo del inventario. El nombre es la clave de facto
// dentro de un tipo (dos artículos de tipos distintos pueden compartir nombre).
// Nunca se elimina; puede llegar a cantidad cero.
//
// Invariante: TotalValue == Quantity*UnitCost para tipos distintos de aceite,
// TotalValue == Grams*UnitCost para aceite. Quantity y Grams nunca quedan
// negativos por una operación del motor.
type InventoryItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Grams        decimal.Decimal `json:"grams,omitempty"` // solo aceite
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	SellingPrice decimal.Decimal `json:"selling_price,omitempty"`
	Milliliters  decimal.Decimal `json:"milliliters,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsOil indica si el artículo se controla por gramos.
func (i *InventoryItem) IsOil() bool { return i.Type == ItemOil }

// Units devuelve la magnitud de control del artículo: gramos para aceite,
// unidades para el resto.
func (i *InventoryItem) Units() decimal.Decimal {
	if i.IsOil() {
		return i.Grams
	}
	return i.Quantity
}

// Clone devuelve una copia independiente del artículo.
func (i *InventoryItem) Clone() *InventoryItem {
	cp := *i
	return &cp
}
