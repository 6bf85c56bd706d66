package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/storecast/storecast/internal/analytics/forecast"
	"github.com/storecast/storecast/internal/cache"
	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/series"
)

const dateFormat = "2006-01-02"

// ForecastService handles forecasting business logic
type ForecastService struct {
	logger *logging.Logger
	store  *dataset.Store
	cache  cache.Cache
	cfg    config.ForecastConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	logger *logging.Logger,
	store *dataset.Store,
	resultCache cache.Cache,
	cfg config.ForecastConfig,
) *ForecastService {
	return &ForecastService{
		logger: logger,
		store:  store,
		cache:  resultCache,
		cfg:    cfg,
	}
}

// ForecastRequest represents a forecast request. Nil Horizon and
// SeasonalPeriods fall back to configured defaults; explicit values are
// validated as given, so a caller-supplied 0 is rejected.
type ForecastRequest struct {
	Store           int
	Dept            int
	Horizon         *int
	SeasonalPeriods *int
	Mode            string
	Damped          bool
	Alpha           *float64
	Beta            *float64
	Gamma           *float64
	Phi             *float64
}

// forecastParams is a request with defaults resolved and inputs validated
type forecastParams struct {
	Store           int
	Dept            int
	Horizon         int
	SeasonalPeriods int
	Mode            string
	Damped          bool
	Alpha           *float64
	Beta            *float64
	Gamma           *float64
	Phi             *float64
}

// HistoryPoint is one observed week of the aggregated series
type HistoryPoint struct {
	WeekEnding  string  `json:"week_ending"`
	WeeklySales float64 `json:"weekly_sales"`
}

// ForecastPoint is one predicted week
type ForecastPoint struct {
	WeekEnding string  `json:"week_ending"`
	Forecast   float64 `json:"forecast"`
}

// ForecastResult represents the complete forecast response
type ForecastResult struct {
	Store            int             `json:"store"`
	Dept             int             `json:"dept"`
	Horizon          int             `json:"horizon"`
	SeasonalPeriods  int             `json:"seasonal_periods"`
	Mode             string          `json:"mode"`
	Damped           bool            `json:"damped"`
	Params           forecast.Params `json:"params"`
	SSE              float64         `json:"sse"`
	HistoryWeeks     int             `json:"history_weeks"`
	LastObservedWeek string          `json:"last_observed_week"`
	Status           string          `json:"status"`
	History          []HistoryPoint  `json:"history"`
	Predictions      []ForecastPoint `json:"predictions"`
	GeneratedAt      string          `json:"generated_at"`
}

// Execute runs the full pipeline for one (store, department) key:
// validate, aggregate weekly, fit, forecast, format. Results are cached
// until the next dataset reload.
func (s *ForecastService) Execute(ctx context.Context, req *ForecastRequest) (*ForecastResult, error) {
	norm, svcErr := s.normalize(req)
	if svcErr != nil {
		return nil, svcErr
	}

	key := s.cacheKey(norm)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var cached ForecastResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			s.logger.Debug("forecast cache hit", "store", norm.Store, "dept", norm.Dept)
			return &cached, nil
		}
	}

	ds := s.store.Current()
	if ds == nil {
		return nil, NewServiceError(CodeDataUnavailable, "dataset not loaded")
	}

	weekly, err := series.Build(ds.ForKey(norm.Store, norm.Dept), norm.Store, norm.Dept, norm.SeasonalPeriods)
	if err != nil {
		return nil, mapError(err)
	}

	opts := forecast.Options{
		SeasonalPeriods: norm.SeasonalPeriods,
		Mode:            forecast.Mode(norm.Mode),
		Damped:          norm.Damped,
		MaxEvals:        s.cfg.OptimizerMaxEvals,
		Timeout:         s.cfg.OptimizerTimeout,
	}
	if opts.Mode == forecast.ModeFixed {
		opts.Params = forecast.Params{
			Alpha: *norm.Alpha,
			Beta:  *norm.Beta,
			Gamma: *norm.Gamma,
			Phi:   1,
		}
		if norm.Phi != nil {
			opts.Params.Phi = *norm.Phi
		}
	}

	start := time.Now()
	model, err := forecast.Fit(weekly.Values(), opts)
	if err != nil {
		return nil, mapError(err)
	}

	points, err := model.Forecast(norm.Horizon, weekly.LastWeek())
	if err != nil {
		return nil, mapError(err)
	}

	result := s.format(norm, weekly, model, points)
	s.logger.Info("forecast generated",
		"store", norm.Store,
		"dept", norm.Dept,
		"horizon", norm.Horizon,
		"mode", norm.Mode,
		"history_weeks", len(weekly.Points),
		"duration", time.Since(start))

	if payload, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, payload)
	}

	return result, nil
}

// normalize applies defaults and validates caller inputs before any work
func (s *ForecastService) normalize(req *ForecastRequest) (*forecastParams, *ServiceError) {
	norm := forecastParams{
		Store:           req.Store,
		Dept:            req.Dept,
		Horizon:         s.cfg.DefaultHorizon,
		SeasonalPeriods: s.cfg.DefaultSeasonalPeriods,
		Mode:            req.Mode,
		Damped:          req.Damped,
		Alpha:           req.Alpha,
		Beta:            req.Beta,
		Gamma:           req.Gamma,
		Phi:             req.Phi,
	}

	if req.Horizon != nil {
		norm.Horizon = *req.Horizon
	}
	if req.SeasonalPeriods != nil {
		norm.SeasonalPeriods = *req.SeasonalPeriods
	}
	if norm.Mode == "" {
		norm.Mode = string(forecast.ModeOptimized)
	}

	if norm.Store < 1 {
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			"store must be a positive integer",
			map[string]interface{}{"store": norm.Store})
	}
	if norm.Dept < 1 {
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			"dept must be a positive integer",
			map[string]interface{}{"dept": norm.Dept})
	}
	if norm.Horizon < 1 {
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			"horizon must be at least 1",
			map[string]interface{}{"horizon": norm.Horizon})
	}
	if s.cfg.MaxHorizon > 0 && norm.Horizon > s.cfg.MaxHorizon {
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			fmt.Sprintf("horizon exceeds maximum of %d", s.cfg.MaxHorizon),
			map[string]interface{}{"horizon": norm.Horizon, "max_horizon": s.cfg.MaxHorizon})
	}
	if norm.SeasonalPeriods < 1 {
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			"seasonal_periods must be at least 1",
			map[string]interface{}{"seasonal_periods": norm.SeasonalPeriods})
	}

	switch forecast.Mode(norm.Mode) {
	case forecast.ModeOptimized:
	case forecast.ModeFixed:
		if norm.Alpha == nil || norm.Beta == nil || norm.Gamma == nil {
			return nil, NewServiceError(CodeInvalidParameter,
				"fixed mode requires alpha, beta and gamma")
		}
	default:
		return nil, NewServiceErrorWithDetails(CodeInvalidParameter,
			"mode must be 'optimized' or 'fixed'",
			map[string]interface{}{"mode": norm.Mode})
	}

	return &norm, nil
}

func (s *ForecastService) cacheKey(req *forecastParams) string {
	key := fmt.Sprintf("forecast:%d:%d:%d:%d:%s:%t",
		req.Store, req.Dept, req.Horizon, req.SeasonalPeriods, req.Mode, req.Damped)
	if forecast.Mode(req.Mode) == forecast.ModeFixed {
		phi := 1.0
		if req.Phi != nil {
			phi = *req.Phi
		}
		key += fmt.Sprintf(":%g:%g:%g:%g", *req.Alpha, *req.Beta, *req.Gamma, phi)
	}
	return key
}

func (s *ForecastService) format(req *forecastParams, weekly *series.Weekly, model *forecast.Model, points []forecast.Point) *ForecastResult {
	history := make([]HistoryPoint, len(weekly.Points))
	for i, p := range weekly.Points {
		history[i] = HistoryPoint{
			WeekEnding:  p.WeekEnding.Format(dateFormat),
			WeeklySales: p.Sales,
		}
	}

	predictions := make([]ForecastPoint, len(points))
	for i, p := range points {
		predictions[i] = ForecastPoint{
			WeekEnding: p.Date.Format(dateFormat),
			Forecast:   p.Value,
		}
	}

	return &ForecastResult{
		Store:            req.Store,
		Dept:             req.Dept,
		Horizon:          req.Horizon,
		SeasonalPeriods:  req.SeasonalPeriods,
		Mode:             req.Mode,
		Damped:           model.Damped,
		Params:           model.Params,
		SSE:              model.SSE,
		HistoryWeeks:     len(weekly.Points),
		LastObservedWeek: weekly.LastWeek().Format(dateFormat),
		Status: fmt.Sprintf("forecast for store %d dept %d: %d weeks from %s",
			req.Store, req.Dept, req.Horizon, weekly.LastWeek().Format(dateFormat)),
		History:     history,
		Predictions: predictions,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// mapError converts typed lower-layer errors into ServiceError values
func mapError(err error) *ServiceError {
	var noData *series.NoDataError
	if errors.As(err, &noData) {
		return NewServiceErrorWithDetails(CodeNoDataForKey, err.Error(),
			map[string]interface{}{"store": noData.Store, "dept": noData.Dept})
	}

	var insufficient *series.InsufficientDataError
	if errors.As(err, &insufficient) {
		return NewServiceErrorWithDetails(CodeInsufficientData, err.Error(),
			map[string]interface{}{
				"required": insufficient.Required,
				"actual":   insufficient.Actual,
			})
	}

	var paramErr *forecast.ParameterError
	if errors.As(err, &paramErr) {
		return NewServiceErrorWithDetails(CodeInvalidParameter, err.Error(),
			map[string]interface{}{"parameter": paramErr.Name, "value": paramErr.Value})
	}

	var fitErr *forecast.FitError
	if errors.As(err, &fitErr) {
		return NewServiceErrorWithDetails(CodeModelFitError, err.Error(),
			map[string]interface{}{"cause": fitErr.Cause})
	}

	if errors.Is(err, dataset.ErrUnavailable) {
		return NewServiceError(CodeDataUnavailable, err.Error())
	}

	return NewServiceError(CodeModelFitError, err.Error())
}
