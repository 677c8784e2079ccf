package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comandas-api/internal/application/catalog"
	"github.com/jhoicas/Comandas-api/internal/application/comanda"
	"github.com/jhoicas/Comandas-api/internal/application/order"
	"github.com/jhoicas/Comandas-api/internal/application/purchase"
	"github.com/jhoicas/Comandas-api/internal/application/report"
	"github.com/jhoicas/Comandas-api/internal/application/sale"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comandas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.UseCase
	SaleUC     *sale.UseCase
	PurchaseUC *purchase.UseCase
	ComandaUC  *comanda.UseCase
	OrderUC    *order.UseCase
	ReportUC   *report.UseCase
	Receipts   *pdf.ReceiptGenerator
	Watcher    *postgres.Watcher
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.Watcher, deps.Log)
	products.Get("/stream", productHandler.Stream)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Receipts)
	sales.Post("/", saleHandler.Process)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)
	sales.Post("/:id/cancel", saleHandler.Cancel)

	// Purchases
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Add)
	purchases.Get("/", purchaseHandler.List)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Comandas
	comandas := api.Group("/comandas")
	comandaHandler := NewComandaHandler(deps.ComandaUC, deps.Watcher, deps.Log)
	comandas.Get("/stream", comandaHandler.Stream)
	comandas.Post("/", comandaHandler.Open)
	comandas.Get("/", comandaHandler.ListOpen)
	comandas.Post("/:id/items", comandaHandler.AddItems)
	comandas.Post("/:id/close", comandaHandler.Close)
	comandas.Post("/:id/settle", comandaHandler.Settle)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Watcher, deps.Log)
	orders.Get("/stream", orderHandler.Stream)
	orders.Post("/", orderHandler.Add)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/deliver", orderHandler.Deliver)
	orders.Post("/:id/finalize", orderHandler.Finalize)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Report
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports/sales", reportHandler.Get)
}
