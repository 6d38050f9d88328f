package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/statement"
	"github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
)

// StatementHandler expone los reportes derivados del libro. Todos se calculan
// sobre un snapshot, así que las lecturas concurrentes son seguras.
type StatementHandler struct {
	engine *ledger.Engine
	pdfGen *pdf.StatementPDFGenerator
	name   string
}

// NewStatementHandler construye el handler.
func NewStatementHandler(engine *ledger.Engine, pdfGen *pdf.StatementPDFGenerator, businessName string) *StatementHandler {
	return &StatementHandler{engine: engine, pdfGen: pdfGen, name: businessName}
}

// Income godoc
// @Summary      Estado de resultados
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  statement.IncomeStatement
// @Router       /api/statements/income [get]
func (h *StatementHandler) Income(c *fiber.Ctx) error {
	return c.JSON(statement.Income(h.engine.Store().State()))
}

// Balance godoc
// @Summary      Balance general
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  statement.BalanceSheet
// @Router       /api/statements/balance [get]
func (h *StatementHandler) Balance(c *fiber.Ctx) error {
	return c.JSON(statement.Balance(h.engine.Store().State()))
}

// CashFlow godoc
// @Summary      Estado de flujo de efectivo
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  statement.CashFlowStatement
// @Router       /api/statements/cashflow [get]
func (h *StatementHandler) CashFlow(c *fiber.Ctx) error {
	return c.JSON(statement.CashFlow(h.engine.Store().State()))
}

// TrialBalance godoc
// @Summary      Balance de comprobación
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  statement.TrialBalance
// @Router       /api/statements/trial-balance [get]
func (h *StatementHandler) TrialBalance(c *fiber.Ctx) error {
	return c.JSON(statement.Trial(h.engine.Store().State()))
}

// Journal godoc
// @Summary      Libro diario agrupado por fecha
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  statement.JournalGroup
// @Router       /api/statements/journal [get]
func (h *StatementHandler) Journal(c *fiber.Ctx) error {
	return c.JSON(statement.GeneralJournal(h.engine.Store().State()))
}

// SalesLedger godoc
// @Summary      Libro de ventas
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  statement.SalesRow
// @Router       /api/statements/sales [get]
func (h *StatementHandler) SalesLedger(c *fiber.Ctx) error {
	return c.JSON(statement.SalesLedger(h.engine.Store().State()))
}

// InventoryLedger godoc
// @Summary      Libro de inventario
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  statement.InventoryRow
// @Router       /api/statements/inventory [get]
func (h *StatementHandler) InventoryLedger(c *fiber.Ctx) error {
	return c.JSON(statement.InventoryLedger(h.engine.Store().State()))
}

// PDF godoc
// @Summary      Estados financieros en PDF (resultados + balance)
// @Tags         statements
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "Etiqueta del período"
// @Success      200  {file}  binary
// @Router       /api/statements/pdf [get]
func (h *StatementHandler) PDF(c *fiber.Ctx) error {
	period := c.Query("period", "actual")
	doc, err := h.pdfGen.GenerateStatementPDF(h.engine.Store().State(), h.name, period)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estados-financieros.pdf"`)
	return c.Send(doc)
}
