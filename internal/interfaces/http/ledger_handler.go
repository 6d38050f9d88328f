package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
)

// LedgerHandler expone el lado de lectura del libro: inventario, socios y
// agregados.
type LedgerHandler struct {
	engine *ledger.Engine
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(engine *ledger.Engine) *LedgerHandler {
	return &LedgerHandler{engine: engine}
}

// Inventory godoc
// @Summary      Listar inventario
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory [get]
func (h *LedgerHandler) Inventory(c *fiber.Ctx) error {
	snap := h.engine.Store().State()
	return c.JSON(dto.FromInventory(snap.Inventory))
}

// Partners godoc
// @Summary      Listar socios con su capital
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartnerResponse
// @Router       /api/partners [get]
func (h *LedgerHandler) Partners(c *fiber.Ctx) error {
	snap := h.engine.Store().State()
	return c.JSON(dto.FromPartners(snap.Partners))
}

// RemovePartner godoc
// @Summary      Eliminar socio (solo con capital en cero)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del socio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/partners/{name} [delete]
func (h *LedgerHandler) RemovePartner(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: "name es requerido"})
	}
	if err := h.engine.RemovePartner(name); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Agregados del libro (efectivo y ventas acumuladas)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/ledger/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	snap := h.engine.Store().State()
	return c.JSON(fiber.Map{
		"cash":            snap.Cash,
		"total_sales":     snap.TotalSales,
		"journal_entries": len(snap.Transactions),
	})
}
