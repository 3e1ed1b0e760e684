package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock    *inventory.StockUseCase
	LowStock *inventory.LowStockUseCase
	Registry *inventory.CategoryRegistry
	Sales    *inventory.RecordSaleUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Inventario: ítems, rollos y stock bajo
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.LowStock)
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items", inventoryHandler.CreateAccessory)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Post("/items/:id/rolls", inventoryHandler.AddRoll)
	inv.Post("/items/:id/rolls/:rollId/consume", inventoryHandler.ConsumeFromRoll)
	inv.Delete("/items/:id/rolls/:rollId", inventoryHandler.DeleteRoll)
	inv.Post("/items/:id/adjust", inventoryHandler.AdjustQuantity)
	inv.Get("/items/:id/history/summary", inventoryHandler.HistorySummary)
	inv.Get("/low-stock", inventoryHandler.GetLowStock)

	// Categorías dinámicas
	categoryHandler := NewCategoryHandler(deps.Registry, inventoryHandler)
	inv.Get("/categories", categoryHandler.List)
	inv.Get("/categories/stock", categoryHandler.Stock)
	inv.Post("/categories", categoryHandler.Create)
	inv.Delete("/categories/:name", categoryHandler.Delete)
	inv.Post("/categories/:name/resolve", categoryHandler.Resolve)
	inv.Post("/categories/:name/rolls", categoryHandler.AddRoll)

	// Ventas de accesorios
	saleHandler := NewSaleHandler(deps.Sales)
	api.Post("/sales/accessories", saleHandler.RecordAccessorySale)
}
