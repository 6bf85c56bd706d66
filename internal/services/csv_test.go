package services

import (
	"strings"
	"testing"
)

func TestWriteForecastCSV(t *testing.T) {
	result := &ForecastResult{
		Predictions: []ForecastPoint{
			{WeekEnding: "2012-11-04", Forecast: 15234.5},
			{WeekEnding: "2012-11-11", Forecast: 14980.25},
		},
	}

	var buf strings.Builder
	if err := WriteForecastCSV(&buf, result); err != nil {
		t.Fatalf("WriteForecastCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Forecast_Weekly_Sales" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "2012-11-04,15234.50" {
		t.Errorf("Unexpected first row: %s", lines[1])
	}
}

func TestWriteForecastCSV_Empty(t *testing.T) {
	var buf strings.Builder
	if err := WriteForecastCSV(&buf, &ForecastResult{}); err != nil {
		t.Fatalf("WriteForecastCSV failed: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "Date,Forecast_Weekly_Sales" {
		t.Errorf("Expected header only, got %q", buf.String())
	}
}
