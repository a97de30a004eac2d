package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Franquicias-api/internal/application/usecase"
	"github.com/jhoicas/Franquicias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FranchiseUC *usecase.FranchiseUseCase
	BranchUC    *usecase.BranchUseCase
	ProductUC   *usecase.ProductUseCase
	ReportUC    *usecase.ReportUseCase
	Store       Pinger
	Logger      *logger.Logger
}

// Router registra middlewares, endpoints operativos y las rutas /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Logger))
	app.Use(recover.New())

	app.Get("/health", Health(deps.Store))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	franchises := api.Group("/franchises")
	franchiseHandler := NewFranchiseHandler(deps.FranchiseUC, deps.ReportUC)
	franchises.Post("/", franchiseHandler.Create)
	franchises.Get("/", franchiseHandler.List)
	franchises.Get("/:id", franchiseHandler.GetByID)
	franchises.Put("/:id/name", franchiseHandler.UpdateName)
	franchises.Delete("/:id", franchiseHandler.Delete)
	franchises.Get("/:id/top-stock-products", franchiseHandler.TopStockProducts)
	franchises.Get("/:id/top-stock-products/pdf", franchiseHandler.TopStockProductsPDF)

	branches := api.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id/name", branchHandler.UpdateName)
	branches.Delete("/:id", branchHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/name", productHandler.UpdateName)
	products.Put("/:id/stock", productHandler.UpdateStock)
	products.Delete("/:id", productHandler.Delete)
}
