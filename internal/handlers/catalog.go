package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/services"
)

// ListStores handles GET /v1/stores
func (h *Handler) ListStores(c *fiber.Ctx) error {
	resp, err := h.catalogService.ListStores()
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListDepartments handles GET /v1/stores/:store/departments
func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	store, err := paramInt(c, "store")
	if err != nil {
		return err
	}

	resp, err := h.catalogService.ListDepartments(store)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// paramInt parses a route parameter that must be an integer
func paramInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, services.NewServiceErrorWithDetails(services.CodeInvalidParameter,
			name+" must be an integer",
			map[string]interface{}{name: raw})
	}
	return v, nil
}
