package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
)

// TransactionHandler maneja el registro, edición y consulta de asientos.
type TransactionHandler struct {
	engine *ledger.Engine
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(engine *ledger.Engine) *TransactionHandler {
	return &TransactionHandler{engine: engine}
}

// Apply godoc
// @Summary      Registrar transacción
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransactionRequest  true  "Transacción tipada"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Apply(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type es requerido"})
	}
	tx, err := h.engine.Apply(in.ToEvent())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tx))
}

// List godoc
// @Summary      Listar el diario
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	snap := h.engine.Store().State()
	txs := snap.Transactions
	if offset >= len(txs) {
		txs = nil
	} else {
		txs = txs[offset:]
		if len(txs) > limit {
			txs = txs[:limit]
		}
	}
	return c.JSON(fiber.Map{
		"transactions": dto.FromTransactions(txs),
		"page":         dto.PageResponse{Limit: limit, Offset: offset, Total: len(snap.Transactions)},
	})
}

// Edit godoc
// @Summary      Editar transacción (revierte y reaplica efectos)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del asiento"
// @Param        body  body  dto.TransactionRequest  true  "Valores nuevos (mismo type)"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.engine.EditTransaction(id, in.ToEvent())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// Delete godoc
// @Summary      Eliminar transacción (revierte efectos)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del asiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.engine.DeleteTransaction(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Undo godoc
// @Summary      Deshacer la última operación
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transactions/undo [post]
func (h *TransactionHandler) Undo(c *fiber.Ctx) error {
	if err := h.engine.Undo(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reconcile godoc
// @Summary      Verificar consistencia de agregados contra el diario
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ledger.ReconcileReport
// @Router       /api/transactions/reconcile [get]
func (h *TransactionHandler) Reconcile(c *fiber.Ctx) error {
	return c.JSON(h.engine.Reconcile())
}
