// Package handlers contains the HTTP handlers binding the fiber app to
// the service layer.
package handlers

import (
	"github.com/storecast/storecast/internal/cache"
	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	store           *dataset.Store
	resultCache     cache.Cache
	forecastService *services.ForecastService
	catalogService  *services.CatalogService
}

// New creates a new handler instance
func New(logger *logging.Logger, store *dataset.Store, resultCache cache.Cache,
	forecastCfg config.ForecastConfig,
) *Handler {
	return &Handler{
		logger:          logger,
		store:           store,
		resultCache:     resultCache,
		forecastService: services.NewForecastService(logger, store, resultCache, forecastCfg),
		catalogService:  services.NewCatalogService(logger, store),
	}
}
