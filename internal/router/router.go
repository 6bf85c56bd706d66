package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/storecast/storecast/internal/cache"
	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/handlers"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/middleware"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, store *dataset.Store,
	resultCache cache.Cache, cfg config.Config,
) *handlers.Handler {
	h := handlers.New(logger, store, resultCache, cfg.Forecast)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Catalog Routes
	v1.Get("/stores", h.ListStores)
	v1.Get("/stores/:store/departments", h.ListDepartments)

	// Forecast Routes
	v1.Get("/stores/:store/departments/:dept/forecast", h.Forecast)
	v1.Post("/stores/:store/departments/:dept/forecast", h.ForecastPost)
	v1.Get("/stores/:store/departments/:dept/forecast/csv", h.ForecastCSV)

	// Admin Routes (protected by API key)
	admin := app.Group("/admin", authMiddleware)
	admin.Post("/reload", h.Reload)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, store *dataset.Store, resultCache cache.Cache,
	cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Storecast",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, store, resultCache, cfg)

	return app
}
