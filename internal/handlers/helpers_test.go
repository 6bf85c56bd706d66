package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/storecast/storecast/internal/cache"
	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/dataset"
	"github.com/storecast/storecast/internal/logging"
	"github.com/storecast/storecast/internal/middleware"
)

// testPaths writes CSV fixtures: store 1 dept 1 carries 16 consecutive
// weeks with period-4 seasonality, store 2 dept 3 carries 3 weeks.
func testPaths(t *testing.T) dataset.Paths {
	t.Helper()
	dir := t.TempDir()

	var sales strings.Builder
	sales.WriteString("Store,Dept,Date,Weekly_Sales,IsHoliday\n")
	start := time.Date(2010, 2, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 16; i++ {
		date := start.AddDate(0, 0, 7*i).Format("2006-01-02")
		fmt.Fprintf(&sales, "1,1,%s,%.2f,FALSE\n", date, 1000+50*float64(i%4)+2*float64(i))
	}
	for i := 0; i < 3; i++ {
		date := start.AddDate(0, 0, 7*i).Format("2006-01-02")
		fmt.Fprintf(&sales, "2,3,%s,%.2f,FALSE\n", date, 700+float64(i))
	}

	paths := dataset.Paths{
		Sales:    filepath.Join(dir, "sales.csv"),
		Stores:   filepath.Join(dir, "stores.csv"),
		Features: filepath.Join(dir, "features.csv"),
	}
	writeFixture(t, paths.Sales, sales.String())
	writeFixture(t, paths.Stores, "Store,Type,Size\n1,A,151315\n2,B,202307\n")
	writeFixture(t, paths.Features,
		"Store,Date,Temperature,Fuel_Price,MarkDown1,MarkDown2,MarkDown3,MarkDown4,MarkDown5,CPI,Unemployment,IsHoliday\n")

	return paths
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", path, err)
	}
}

// newTestApp wires a full handler over CSV fixtures with the app-level
// error handler, mirroring the production routes.
func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	logger := logging.NewDevelopment()

	store, err := dataset.NewStore(testPaths(t), logger)
	if err != nil {
		t.Fatalf("Failed to build dataset store: %v", err)
	}

	resultCache := cache.NewMemoryCache(time.Hour)
	t.Cleanup(func() { resultCache.Close() })

	cfg := config.ForecastConfig{
		DefaultHorizon:         30,
		DefaultSeasonalPeriods: 52,
		MaxHorizon:             104,
		OptimizerMaxEvals:      20000,
		OptimizerTimeout:       5 * time.Second,
	}
	h := New(logger, store, resultCache, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	app.Get("/health", h.Health)
	app.Get("/v1/stores", h.ListStores)
	app.Get("/v1/stores/:store/departments", h.ListDepartments)
	app.Get("/v1/stores/:store/departments/:dept/forecast", h.Forecast)
	app.Post("/v1/stores/:store/departments/:dept/forecast", h.ForecastPost)
	app.Get("/v1/stores/:store/departments/:dept/forecast/csv", h.ForecastCSV)
	app.Post("/admin/reload", h.Reload)
	app.Use(h.NotFound)

	return app, h
}
