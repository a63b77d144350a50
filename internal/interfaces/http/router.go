package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-vision/internal/application/inventory"
	"github.com/jhoicas/warehouse-vision/internal/application/setup"
	"github.com/jhoicas/warehouse-vision/internal/application/usecase"
	"github.com/jhoicas/warehouse-vision/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseID string
	LocationUC  *usecase.LocationUseCase
	ItemUC      *inventory.ItemUseCase
	AlertUC     *inventory.AlertUseCase
	ResetUC     *setup.ResetUseCase
	AuthEnabled bool
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API. Todo /api pasa por autenticación; sin
// AUTH_ENABLED se inyecta el usuario simulado.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	var auth []fiber.Handler
	if deps.AuthEnabled {
		auth = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireWarehouse(deps.WarehouseID)}
	} else {
		auth = []fiber.Handler{MockAuth(deps.WarehouseID)}
	}
	api := app.Group("/api", auth...)

	// Locations: las rutas fijas antes de /:id
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, log)
	locations.Get("/", locationHandler.List)
	locations.Get("/search/:sku", locationHandler.SearchBySKU)
	locations.Get("/stats/occupancy", locationHandler.Occupancy)
	locations.Get("/activity/recent", locationHandler.RecentActivity)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventory
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.AlertUC, log)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/alerts/report", inventoryHandler.AlertsReport)
	inv.Get("/stats", inventoryHandler.Stats)
	inv.Get("/search", inventoryHandler.Search)
	inv.Post("/items", inventoryHandler.Create)
	inv.Get("/items/:id", inventoryHandler.GetByID)
	inv.Put("/items/:id", inventoryHandler.Update)
	inv.Delete("/items/:id", inventoryHandler.Delete)

	// Setup: reconfigurar solo admin
	setupGroup := api.Group("/setup")
	setupHandler := NewSetupHandler(deps.ResetUC, log)
	setupGroup.Post("/initialize", RequireRole(RoleAdmin), setupHandler.Initialize)
	setupGroup.Get("/config", setupHandler.CurrentConfig)
}
