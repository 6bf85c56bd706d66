package forecast

import "math"

// seasonalSeries builds n points of trend plus a sinusoidal seasonal pattern
// with the given period
func seasonalSeries(n, period int) []float64 {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		trend := 1000.0 + 2.5*float64(i)
		seasonal := 150.0 * math.Sin(2*math.Pi*float64(i)/float64(period))
		values[i] = trend + seasonal
	}
	return values
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
