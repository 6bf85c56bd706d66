package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/models"
	"github.com/storecast/storecast/internal/services"
)

// Forecast handles GET forecast requests
// GET /v1/stores/:store/departments/:dept/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	req, err := forecastRequestFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.forecastService.Execute(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ForecastPost handles POST forecast requests with a JSON body
// POST /v1/stores/:store/departments/:dept/forecast
func (h *Handler) ForecastPost(c *fiber.Ctx) error {
	store, err := paramInt(c, "store")
	if err != nil {
		return err
	}
	dept, err := paramInt(c, "dept")
	if err != nil {
		return err
	}

	var body models.ForecastRequest
	if err := c.BodyParser(&body); err != nil {
		return services.NewServiceErrorWithDetails(services.CodeInvalidParameter,
			"invalid request body",
			map[string]interface{}{"error": err.Error()})
	}

	req := &services.ForecastRequest{
		Store:           store,
		Dept:            dept,
		Horizon:         body.Horizon,
		SeasonalPeriods: body.SeasonalPeriods,
		Mode:            body.Mode,
		Damped:          body.Damped,
		Alpha:           body.Alpha,
		Beta:            body.Beta,
		Gamma:           body.Gamma,
		Phi:             body.Phi,
	}

	result, err := h.forecastService.Execute(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ForecastCSV handles forecast table downloads
// GET /v1/stores/:store/departments/:dept/forecast/csv
func (h *Handler) ForecastCSV(c *fiber.Ctx) error {
	req, err := forecastRequestFromQuery(c)
	if err != nil {
		return err
	}

	result, err := h.forecastService.Execute(c.Context(), req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="forecast_store%d_dept%d.csv"`, req.Store, req.Dept))
	return services.WriteForecastCSV(c, result)
}

// forecastRequestFromQuery builds a service request from route and query
// parameters. Unset numeric parameters stay nil so service defaults apply.
func forecastRequestFromQuery(c *fiber.Ctx) (*services.ForecastRequest, error) {
	store, err := paramInt(c, "store")
	if err != nil {
		return nil, err
	}
	dept, err := paramInt(c, "dept")
	if err != nil {
		return nil, err
	}

	req := &services.ForecastRequest{
		Store: store,
		Dept:  dept,
		Mode:  c.Query("mode"),
	}

	if req.Horizon, err = queryInt(c, "horizon"); err != nil {
		return nil, err
	}
	if req.SeasonalPeriods, err = queryInt(c, "seasonal_periods"); err != nil {
		return nil, err
	}
	if req.Damped, err = queryBool(c, "damped"); err != nil {
		return nil, err
	}

	if req.Alpha, err = queryFloat(c, "alpha"); err != nil {
		return nil, err
	}
	if req.Beta, err = queryFloat(c, "beta"); err != nil {
		return nil, err
	}
	if req.Gamma, err = queryFloat(c, "gamma"); err != nil {
		return nil, err
	}
	if req.Phi, err = queryFloat(c, "phi"); err != nil {
		return nil, err
	}

	return req, nil
}

// queryInt returns nil when the parameter is absent, so service defaults
// apply only to genuinely unset values
func queryInt(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidQueryParam(name, raw)
	}
	return &v, nil
}

func queryBool(c *fiber.Ctx, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidQueryParam(name, raw)
	}
	return v, nil
}

func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalidQueryParam(name, raw)
	}
	return &v, nil
}

func invalidQueryParam(name, raw string) *services.ServiceError {
	return services.NewServiceErrorWithDetails(services.CodeInvalidParameter,
		"invalid query parameter "+name,
		map[string]interface{}{name: raw})
}
