package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/models"
	"github.com/storecast/storecast/internal/services"
)

// Reload handles POST /admin/reload: rebuild the dataset from the source
// tables, swap it in atomically and flush the result cache.
func (h *Handler) Reload(c *fiber.Ctx) error {
	if err := h.store.Reload(); err != nil {
		if errors.Is(err, dataset.ErrUnavailable) {
			return services.NewServiceErrorWithDetails(services.CodeDataUnavailable,
				"dataset reload failed, previous dataset kept",
				map[string]interface{}{"error": err.Error()})
		}
		return err
	}

	if err := h.resultCache.Flush(c.Context()); err != nil {
		h.logger.Warn("Failed to flush result cache after reload", "error", err)
	}

	ds := h.store.Current()
	h.logger.Info("Dataset reloaded", "observations", len(ds.Observations()))

	return c.JSON(models.ReloadResponse{
		Reloaded:     true,
		Observations: len(ds.Observations()),
		LoadedAt:     ds.LoadedAt().Format(time.RFC3339),
	})
}
