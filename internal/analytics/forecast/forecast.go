// Package forecast implements additive Holt-Winters (triple exponential
// smoothing) fitting and extrapolation for weekly series.
package forecast

import (
	"fmt"
	"time"
)

// Mode selects how smoothing parameters are chosen
type Mode string

const (
	// ModeOptimized searches for parameters minimizing one-step-ahead SSE
	ModeOptimized Mode = "optimized"
	// ModeFixed uses caller-supplied parameters verbatim
	ModeFixed Mode = "fixed"
)

// Params are the smoothing parameters, each in (0, 1].
// Phi is the trend damping factor; 1 means undamped.
type Params struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Phi   float64 `json:"phi"`
}

// Options configures a fit
type Options struct {
	SeasonalPeriods int           // m: observations per seasonal cycle
	Mode            Mode          // optimized or fixed
	Damped          bool          // damp the trend's forecast contribution
	Params          Params        // used verbatim in fixed mode
	MaxEvals        int           // SSE evaluation budget in optimized mode
	Timeout         time.Duration // wall-clock budget in optimized mode
}

// Model is the fitted Holt-Winters state
type Model struct {
	Level           float64   `json:"level"`    // L_n
	Trend           float64   `json:"trend"`    // T_n
	Seasonal        []float64 `json:"seasonal"` // last m seasonal values, indexed by phase (t-1) mod m
	Params          Params    `json:"params"`
	Damped          bool      `json:"damped"`
	SeasonalPeriods int       `json:"seasonal_periods"`
	Observations    int       `json:"observations"` // n: fitted series length
	SSE             float64   `json:"sse"`          // sum of squared one-step-ahead errors
	Residuals       []float64 `json:"-"`            // one-step-ahead errors, y_t - prediction
}

// Point is a single forecast value
type Point struct {
	Date  time.Time
	Value float64
}

// ParameterError reports an out-of-range caller input
type ParameterError struct {
	Name  string
	Value float64
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g", e.Name, e.Value)
}

// FitError reports a failed fit: non-finite intermediates, non-convergence,
// or an exhausted optimization budget (cause "timeout")
type FitError struct {
	Cause string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("model fit failed: %s", e.Cause)
}

// validParam reports whether v lies in (0, 1]
func validParam(v float64) bool {
	return v > 0 && v <= 1
}

func (p Params) validate() error {
	if !validParam(p.Alpha) {
		return &ParameterError{Name: "alpha", Value: p.Alpha}
	}
	if !validParam(p.Beta) {
		return &ParameterError{Name: "beta", Value: p.Beta}
	}
	if !validParam(p.Gamma) {
		return &ParameterError{Name: "gamma", Value: p.Gamma}
	}
	if !validParam(p.Phi) {
		return &ParameterError{Name: "phi", Value: p.Phi}
	}
	return nil
}
