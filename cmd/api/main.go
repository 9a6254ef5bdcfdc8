package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/restopos/inventory-service/internal/application/inventory"
	"github.com/restopos/inventory-service/internal/infrastructure/cache"
	"github.com/restopos/inventory-service/internal/infrastructure/orders"
	"github.com/restopos/inventory-service/internal/infrastructure/postgres"
	httpRouter "github.com/restopos/inventory-service/internal/interfaces/http"
	"github.com/restopos/inventory-service/pkg/config"
	"github.com/restopos/inventory-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	invoiceRepo := postgres.NewIncomingInvoiceRepository(pool)
	wasteRepo := postgres.NewWasteLogRepository(pool)
	deductionRepo := postgres.NewOrderDeductionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var availabilityCache inventory.AvailabilityCache = inventory.NoopAvailabilityCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisAvailabilityCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, availability cache disabled")
		} else {
			availabilityCache = redisCache
			defer redisCache.Close()
		}
	}

	ledger := inventory.NewStockLedger(txRunner, itemRepo, movementRepo)
	itemService := inventory.NewItemService(txRunner, itemRepo)
	resolver := inventory.NewRecipeResolver(recipeRepo, itemRepo, availabilityCache, cfg.Redis.AvailabilityTTL())
	intake := inventory.NewIntakeProcessor(txRunner, invoiceRepo, itemRepo)
	waste := inventory.NewWasteRecorder(txRunner, wasteRepo)
	corrections := inventory.NewCorrectionHandler(ledger)

	ordersClient := orders.NewClient(cfg.Orders.BaseURL, cfg.Orders.Timeout())
	consumption := inventory.NewConsumptionEngine(ordersClient, resolver, ledger, deductionRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Items:       itemService,
		Ledger:      ledger,
		Resolver:    resolver,
		Corrections: corrections,
		Waste:       waste,
		Intake:      intake,
		Consumption: consumption,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("HTTP server")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("HTTP server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
