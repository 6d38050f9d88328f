package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/closing"
	"github.com/jhoicas/Contable-api/internal/application/dto"
)

// ClosingHandler maneja el proceso de cierre de período.
type ClosingHandler struct {
	process *closing.Process
}

// NewClosingHandler construye el handler.
func NewClosingHandler(process *closing.Process) *ClosingHandler {
	return &ClosingHandler{process: process}
}

// State godoc
// @Summary      Estado del proceso de cierre
// @Tags         closing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingStateResponse
// @Router       /api/closing [get]
func (h *ClosingHandler) State(c *fiber.Ctx) error {
	return c.JSON(dto.ClosingStateResponse{
		State:  h.process.State(),
		Shares: h.process.Shares(),
	})
}

// Start godoc
// @Summary      Iniciar cierre con distribución en partes iguales
// @Tags         closing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/closing/start [post]
func (h *ClosingHandler) Start(c *fiber.Ctx) error {
	shares, err := h.process.Start()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingStateResponse{State: h.process.State(), Shares: shares})
}

// SetPercentages godoc
// @Summary      Ajustar porcentajes de distribución
// @Tags         closing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetPercentagesRequest  true  "Porcentajes por socio"
// @Success      200   {object}  dto.ClosingStateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/closing/percentages [put]
func (h *ClosingHandler) SetPercentages(c *fiber.Ctx) error {
	var in dto.SetPercentagesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Shares) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shares es requerido"})
	}
	shares, err := h.process.SetPercentages(in.ToShares())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingStateResponse{State: h.process.State(), Shares: shares})
}

// Confirm godoc
// @Summary      Confirmar cierre (aplica asientos de cierre y distribución)
// @Tags         closing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/closing/confirm [post]
func (h *ClosingHandler) Confirm(c *fiber.Ctx) error {
	if err := h.process.Confirm(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingStateResponse{State: h.process.State(), Shares: h.process.Shares()})
}

// Export godoc
// @Summary      Exportar el libro de cierre (Excel, siete hojas)
// @Tags         closing
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/closing/export [post]
func (h *ClosingHandler) Export(c *fiber.Ctx) error {
	book, err := h.process.Export()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cierre.xlsx"`)
	return c.Send(book)
}

// Reset godoc
// @Summary      Reiniciar el período (limpia diario y ventas acumuladas)
// @Tags         closing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/closing/reset [post]
func (h *ClosingHandler) Reset(c *fiber.Ctx) error {
	if err := h.process.Reset(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingStateResponse{State: h.process.State()})
}

// Cancel godoc
// @Summary      Cancelar el proceso de cierre
// @Tags         closing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClosingStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/closing/cancel [post]
func (h *ClosingHandler) Cancel(c *fiber.Ctx) error {
	if err := h.process.Cancel(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ClosingStateResponse{State: h.process.State()})
}
