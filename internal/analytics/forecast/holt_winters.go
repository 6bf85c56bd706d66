package forecast

import (
	"fmt"
	"math"
)

// minObservations is the shortest series a seasonal fit accepts: two full
// cycles, or one cycle plus five points for very short periods.
func minObservations(m int) int {
	if n := m + 5; n > 2*m {
		return n
	}
	return 2 * m
}

// Fit fits an additive Holt-Winters model to values.
//
// State recurrences, for t = 1..n with phi = 1 when undamped:
//
//	L_t = alpha*(y_t - S_{t-m}) + (1-alpha)*(L_{t-1} + phi*T_{t-1})
//	T_t = beta*(L_t - L_{t-1}) + (1-beta)*phi*T_{t-1}
//	S_t = gamma*(y_t - L_t) + (1-gamma)*S_{t-m}
//
// Initial state is derived deterministically from the first two seasonal
// cycles: L_0 is the mean of the first cycle, T_0 the per-period change
// between the first and second cycle means, and S_0..S_{m-1} the mean
// deviation of each phase from its cycle mean, normalized to sum to zero.
func Fit(values []float64, opts Options) (*Model, error) {
	m := opts.SeasonalPeriods
	if m < 1 {
		return nil, &ParameterError{Name: "seasonal_periods", Value: float64(m)}
	}
	if need := minObservations(m); len(values) < need {
		return nil, &FitError{Cause: fmt.Sprintf("series shorter than the %d-observation minimum", need)}
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &FitError{Cause: "non-finite value in input series"}
		}
	}

	level0, trend0, seasonal0 := initialState(values, m)

	var params Params
	switch opts.Mode {
	case ModeFixed:
		params = opts.Params
		if !opts.Damped {
			params.Phi = 1
		}
		if err := params.validate(); err != nil {
			return nil, err
		}

	case ModeOptimized:
		var err error
		params, err = optimize(values, m, opts.Damped, level0, trend0, seasonal0, opts.MaxEvals, opts.Timeout)
		if err != nil {
			return nil, err
		}

	default:
		return nil, &ParameterError{Name: "mode", Value: 0}
	}

	state, err := run(values, m, params, level0, trend0, seasonal0, true)
	if err != nil {
		return nil, err
	}

	return &Model{
		Level:           state.level,
		Trend:           state.trend,
		Seasonal:        state.seasonal,
		Params:          params,
		Damped:          opts.Damped,
		SeasonalPeriods: m,
		Observations:    len(values),
		SSE:             state.sse,
		Residuals:       state.residuals,
	}, nil
}

// initialState derives L_0, T_0 and S_0..S_{m-1} from the first cycles
func initialState(values []float64, m int) (level, trend float64, seasonal []float64) {
	cycles := len(values) / m
	if cycles > 2 {
		cycles = 2
	}

	cycleMean := make([]float64, cycles)
	for c := 0; c < cycles; c++ {
		sum := 0.0
		for i := 0; i < m; i++ {
			sum += values[c*m+i]
		}
		cycleMean[c] = sum / float64(m)
	}

	level = cycleMean[0]
	if cycles > 1 {
		trend = (cycleMean[1] - cycleMean[0]) / float64(m)
	}

	// Per-phase mean deviation from the cycle mean
	seasonal = make([]float64, m)
	for i := 0; i < m; i++ {
		sum := 0.0
		for c := 0; c < cycles; c++ {
			sum += values[c*m+i] - cycleMean[c]
		}
		seasonal[i] = sum / float64(cycles)
	}

	// Normalize so the seasonal components sum to zero
	var total float64
	for _, s := range seasonal {
		total += s
	}
	adjust := total / float64(m)
	for i := range seasonal {
		seasonal[i] -= adjust
	}

	return level, trend, seasonal
}

// fitState is the outcome of one pass of the recurrences
type fitState struct {
	level     float64
	trend     float64
	seasonal  []float64
	sse       float64
	residuals []float64
}

// run executes the smoothing recurrences over the whole series.
// Seasonal values are held cyclically: phase (t-1) mod m for observation t,
// so the slot read at each step still holds the value from one cycle back
// (the initial estimate during the first cycle).
func run(values []float64, m int, p Params, level0, trend0 float64, seasonal0 []float64, keepResiduals bool) (*fitState, error) {
	level := level0
	trend := trend0
	seasonal := make([]float64, m)
	copy(seasonal, seasonal0)

	var residuals []float64
	if keepResiduals {
		residuals = make([]float64, len(values))
	}

	sse := 0.0
	for i, y := range values {
		phase := i % m
		sPrev := seasonal[phase]

		// One-step-ahead error against the pre-update state
		err := y - (level + p.Phi*trend + sPrev)
		sse += err * err
		if keepResiduals {
			residuals[i] = err
		}

		prevLevel := level
		level = p.Alpha*(y-sPrev) + (1-p.Alpha)*(level+p.Phi*trend)
		trend = p.Beta*(level-prevLevel) + (1-p.Beta)*p.Phi*trend
		seasonal[phase] = p.Gamma*(y-level) + (1-p.Gamma)*sPrev

		if math.IsNaN(level) || math.IsInf(level, 0) ||
			math.IsNaN(trend) || math.IsInf(trend, 0) ||
			math.IsNaN(seasonal[phase]) || math.IsInf(seasonal[phase], 0) {
			return nil, &FitError{Cause: "non-finite smoothing state"}
		}
	}

	return &fitState{
		level:     level,
		trend:     trend,
		seasonal:  seasonal,
		sse:       sse,
		residuals: residuals,
	}, nil
}

// sseFor evaluates the optimization objective for a parameter candidate.
// Returns +Inf when the recurrence diverges.
func sseFor(values []float64, m int, p Params, level0, trend0 float64, seasonal0 []float64) float64 {
	state, err := run(values, m, p, level0, trend0, seasonal0, false)
	if err != nil {
		return math.Inf(1)
	}
	return state.sse
}
