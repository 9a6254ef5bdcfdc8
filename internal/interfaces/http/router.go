package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/restopos/inventory-service/internal/application/inventory"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Items       *inventory.ItemService
	Ledger      *inventory.StockLedger
	Resolver    *inventory.RecipeResolver
	Corrections *inventory.CorrectionHandler
	Waste       *inventory.WasteRecorder
	Intake      *inventory.IntakeProcessor
	Consumption *inventory.ConsumptionEngine
}

// Router registers the API routes. Authentication lives in the gateway in
// front of this service; employee ids arrive in request bodies already
// verified.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.Items, deps.Ledger, deps.Corrections, deps.Waste)
	items := api.Group("/items")
	items.Post("/", inventoryHandler.CreateItem)
	items.Get("/", inventoryHandler.ListItems)
	items.Get("/low-stock", inventoryHandler.LowStock)
	items.Get("/:id", inventoryHandler.GetItem)
	items.Get("/:id/movements", inventoryHandler.History)
	items.Get("/:id/movements/summary", inventoryHandler.Summary)
	items.Get("/:id/waste", inventoryHandler.WasteHistory)

	api.Get("/movements/:id", inventoryHandler.GetMovement)
	api.Post("/corrections", inventoryHandler.CreateCorrection)
	api.Post("/waste", inventoryHandler.RecordWaste)

	recipeHandler := NewRecipeHandler(deps.Resolver)
	api.Post("/recipes", recipeHandler.AddLine)
	api.Delete("/recipes/:id", recipeHandler.RemoveLine)
	products := api.Group("/products")
	products.Get("/:id/recipe", recipeHandler.ProductRecipe)
	products.Get("/:id/availability", recipeHandler.Availability)
	products.Get("/:id/requirements", recipeHandler.Requirements)

	invoiceHandler := NewInvoiceHandler(deps.Intake)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)

	consumptionHandler := NewConsumptionHandler(deps.Consumption)
	api.Post("/orders/:id/deduct", consumptionHandler.Deduct)
}
