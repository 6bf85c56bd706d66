package forecast

import (
	"math"
	"time"
)

// Forecast extrapolates the fitted state h periods past lastDate.
// For step k:
//
//	forecast_k = L_n + T_n * sum_{i=1..k} phi^i + S_{(n+k-1) mod m}
//
// The trend sum reduces to k*T_n when phi = 1. Dates advance in fixed
// 7-day steps from lastDate.
func (m *Model) Forecast(h int, lastDate time.Time) ([]Point, error) {
	if h < 1 {
		return nil, &ParameterError{Name: "horizon", Value: float64(h)}
	}

	phi := m.Params.Phi
	points := make([]Point, h)

	trendSum := 0.0
	phiPow := 1.0
	for k := 1; k <= h; k++ {
		phiPow *= phi
		trendSum += phiPow

		phase := (m.Observations + k - 1) % m.SeasonalPeriods
		value := m.Level + m.Trend*trendSum + m.Seasonal[phase]
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &FitError{Cause: "non-finite forecast value"}
		}

		points[k-1] = Point{
			Date:  lastDate.AddDate(0, 0, 7*k),
			Value: value,
		}
	}

	return points, nil
}
