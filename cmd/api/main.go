package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/closing"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	// Hidratar el libro en memoria desde la persistencia.
	store := ledger.NewStore()
	txs, err := txRepo.GetAll()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar diario")
	}
	items, err := invRepo.GetAll()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}
	partners, err := partnerRepo.GetAll()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar socios")
	}
	settings, err := settingsRepo.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar agregados")
	}
	cash, totalSales := decimal.Zero, decimal.Zero
	if settings != nil {
		cash, totalSales = settings.Cash, settings.TotalSales
	}
	store.Load(txs, items, partners, cash, totalSales)
	log.Info().
		Int("transactions", len(txs)).
		Int("inventory", len(items)).
		Int("partners", len(partners)).
		Msg("libro hidratado")

	history := ledger.NewHistory(cfg.Ledger.UndoDepth)
	engine := ledger.NewEngine(store, history, ledger.Repos{
		Transactions: txRepo,
		Inventory:    invRepo,
		Partners:     partnerRepo,
		Settings:     settingsRepo,
	}, log)

	exporter := excel.NewExporter()
	closingProcess := closing.NewProcess(engine, exporter, log)
	pdfGenerator := infrapdf.NewStatementPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Contable API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		Closing:      closingProcess,
		AuthUC:       authUC,
		PDFGen:       pdfGenerator,
		BusinessName: cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
