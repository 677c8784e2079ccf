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

	"github.com/jhoicas/Comandas-api/internal/application/catalog"
	"github.com/jhoicas/Comandas-api/internal/application/comanda"
	"github.com/jhoicas/Comandas-api/internal/application/order"
	"github.com/jhoicas/Comandas-api/internal/application/purchase"
	"github.com/jhoicas/Comandas-api/internal/application/report"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	infrapdf "github.com/jhoicas/Comandas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Comandas-api/internal/interfaces/http"
	"github.com/jhoicas/Comandas-api/pkg/config"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	comandaRepo := postgres.NewComandaRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	watcher := postgres.NewWatcher(pool, log)

	catalogUC := catalog.NewUseCase(productRepo)
	saleUC := sale.NewUseCase(txRunner, saleRepo)
	purchaseUC := purchase.NewUseCase(txRunner, purchaseRepo)
	comandaUC := comanda.NewUseCase(txRunner, comandaRepo, saleUC)
	orderUC := order.NewUseCase(txRunner, orderRepo, saleUC)
	reportUC := report.NewUseCase(saleRepo)

	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

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
		Title:    "Comandas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		SaleUC:     saleUC,
		PurchaseUC: purchaseUC,
		ComandaUC:  comandaUC,
		OrderUC:    orderUC,
		ReportUC:   reportUC,
		Receipts:   receipts,
		Watcher:    watcher,
		Log:        log,
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
