package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-collector-ledger/internal/handler"
	"go-collector-ledger/internal/middleware"
	"go-collector-ledger/internal/model"
	"go-collector-ledger/internal/repository"
	"go-collector-ledger/internal/service"
	"go-collector-ledger/internal/ws"
	"go-collector-ledger/pkg/database"
	"go-collector-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&model.Card{},
		&model.SealedProduct{},
		&model.SupplyBatch{},
		&model.LedgerEntry{},
		&model.SaleEvent{},
		&model.SaleItem{},
		&model.SaleSupplyUsage{},
	); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	wsHub := ws.NewHub(logger.Named(log, "ws"))
	go wsHub.Run()

	// Dependency injection
	txm := repository.NewTxManager(db)
	cardRepo := repository.NewCardRepo(db)
	sealedRepo := repository.NewSealedRepo(db)
	supplyRepo := repository.NewSupplyRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	dashRepo := repository.NewDashboardRepo(db)

	invService := service.NewInventoryService(cardRepo, sealedRepo, txm, wsHub, logger.Named(log, "inventory"))
	supplyService := service.NewSupplyService(supplyRepo, ledgerRepo, txm, logger.Named(log, "supplies"))
	ledgerService := service.NewLedgerService(ledgerRepo, logger.Named(log, "ledger"))
	saleService := service.NewSaleService(cardRepo, sealedRepo, supplyRepo, saleRepo, txm, wsHub, logger.Named(log, "sales"))
	dashService := service.NewDashboardService(dashRepo)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@localhost"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}
	authService, err := service.NewAuthService(adminEmail, adminPassword, logger.Named(log, "auth"))
	if err != nil {
		log.Fatal("auth setup failed", zap.Error(err))
	}

	invHandler := handler.NewInventoryHandler(invService)
	supplyHandler := handler.NewSupplyHandler(supplyService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	saleHandler := handler.NewSaleHandler(saleService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		AppName: "Collector Ledger API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth())

	protected.Get("/dashboard/summary", dashHandler.GetSummary)

	protected.Get("/cards", invHandler.GetCards)
	protected.Post("/cards", invHandler.CreateCard)
	protected.Post("/cards/bulk-update", invHandler.BulkUpdateCards)
	protected.Put("/cards/:id", invHandler.UpdateCard)
	protected.Post("/cards/:id/adjust", invHandler.AdjustCardQuantity)
	protected.Delete("/cards/:id", invHandler.DeleteCard)

	protected.Get("/sealed", invHandler.GetSealedProducts)
	protected.Post("/sealed", invHandler.CreateSealedProduct)
	protected.Post("/sealed/bulk-update", invHandler.BulkUpdateSealedProducts)
	protected.Put("/sealed/:id", invHandler.UpdateSealedProduct)
	protected.Post("/sealed/:id/adjust", invHandler.AdjustSealedQuantity)
	protected.Delete("/sealed/:id", invHandler.DeleteSealedProduct)

	protected.Get("/supplies", supplyHandler.GetBatches)
	protected.Post("/supplies", supplyHandler.CreateBatch)
	protected.Put("/supplies/:id", supplyHandler.UpdateBatch)
	protected.Post("/supplies/:id/consume", supplyHandler.ConsumeBatch)
	protected.Post("/supplies/:id/restock", supplyHandler.RestockBatch)
	protected.Delete("/supplies/:id", supplyHandler.DeleteBatch)

	protected.Get("/ledger", ledgerHandler.GetEntries)
	protected.Post("/ledger", ledgerHandler.CreateEntry)
	protected.Delete("/ledger/:id", ledgerHandler.DeleteEntry)

	protected.Get("/sales", saleHandler.GetSales)
	protected.Post("/sales", saleHandler.RecordSale)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Delete("/sales/:id", saleHandler.DeleteSale)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
