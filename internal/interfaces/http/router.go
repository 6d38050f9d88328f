package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/closing"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *ledger.Engine
	Closing      *closing.Process
	AuthUC       *auth.AuthUseCase
	PDFGen       *pdf.StatementPDFGenerator
	BusinessName string
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Transacciones (protegido)
	txGroup := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Engine)
	txGroup.Post("/", txHandler.Apply)
	txGroup.Get("/", txHandler.List)
	txGroup.Post("/undo", txHandler.Undo)
	txGroup.Get("/reconcile", txHandler.Reconcile)
	txGroup.Put("/:id", txHandler.Edit)
	txGroup.Delete("/:id", txHandler.Delete)

	// Lado de lectura del libro (protegido)
	ledgerHandler := NewLedgerHandler(deps.Engine)
	protected.Get("/inventory", ledgerHandler.Inventory)
	protected.Get("/partners", ledgerHandler.Partners)
	protected.Delete("/partners/:name", ledgerHandler.RemovePartner)
	protected.Get("/ledger/summary", ledgerHandler.Summary)

	// Reportes (protegido)
	statements := protected.Group("/statements")
	stHandler := NewStatementHandler(deps.Engine, deps.PDFGen, deps.BusinessName)
	statements.Get("/income", stHandler.Income)
	statements.Get("/balance", stHandler.Balance)
	statements.Get("/cashflow", stHandler.CashFlow)
	statements.Get("/trial-balance", stHandler.TrialBalance)
	statements.Get("/journal", stHandler.Journal)
	statements.Get("/sales", stHandler.SalesLedger)
	statements.Get("/inventory", stHandler.InventoryLedger)
	statements.Get("/pdf", stHandler.PDF)

	// Cierre de período (protegido; confirmar y reiniciar solo admin)
	closingGroup := protected.Group("/closing")
	clHandler := NewClosingHandler(deps.Closing)
	closingGroup.Get("/", clHandler.State)
	closingGroup.Post("/start", clHandler.Start)
	closingGroup.Put("/percentages", clHandler.SetPercentages)
	closingGroup.Post("/confirm", RequireRole(entity.RoleAdmin, entity.RoleContador), clHandler.Confirm)
	closingGroup.Post("/export", clHandler.Export)
	closingGroup.Post("/reset", RequireRole(entity.RoleAdmin), clHandler.Reset)
	closingGroup.Post("/cancel", clHandler.Cancel)
}
