package forecast

import (
	"math"
	"time"
)

const (
	paramFloor      = 1e-4 // parameters stay in (0, 1]
	refineMinStep   = 1e-4
	defaultMaxEvals = 20000
	defaultTimeout  = 10 * time.Second
)

// budget tracks the evaluation and wall-clock limits of one search
type budget struct {
	evals    int
	maxEvals int
	deadline time.Time
}

func (b *budget) spend() bool {
	b.evals++
	if b.evals > b.maxEvals {
		return false
	}
	// Checking the clock every 64 evaluations keeps the cost negligible
	if b.evals%64 == 0 && time.Now().After(b.deadline) {
		return false
	}
	return true
}

// optimize searches for the parameters minimizing one-step-ahead SSE.
// A fixed coarse grid seeds a shrinking-step coordinate descent; both phases
// draw from the same evaluation/deadline budget. Everything is deterministic:
// fixed grid order, fixed step schedule, no randomness.
func optimize(values []float64, m int, damped bool, level0, trend0 float64, seasonal0 []float64, maxEvals int, timeout time.Duration) (Params, error) {
	if maxEvals <= 0 {
		maxEvals = defaultMaxEvals
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	b := &budget{maxEvals: maxEvals, deadline: time.Now().Add(timeout)}

	eval := func(p Params) (float64, bool) {
		if !b.spend() {
			return math.Inf(1), false
		}
		return sseFor(values, m, p, level0, trend0, seasonal0), true
	}

	grid := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	phiGrid := []float64{1}
	if damped {
		phiGrid = []float64{0.8, 0.9, 0.98, 1}
	}

	best := Params{}
	bestSSE := math.Inf(1)
	for _, alpha := range grid {
		for _, beta := range grid {
			for _, gamma := range grid {
				for _, phi := range phiGrid {
					p := Params{Alpha: alpha, Beta: beta, Gamma: gamma, Phi: phi}
					sse, ok := eval(p)
					if !ok {
						return Params{}, &FitError{Cause: "timeout"}
					}
					if sse < bestSSE {
						bestSSE = sse
						best = p
					}
				}
			}
		}
	}

	if math.IsInf(bestSSE, 1) {
		return Params{}, &FitError{Cause: "no finite objective value found"}
	}

	// Coordinate descent around the grid winner with a halving step
	free := []*float64{&best.Alpha, &best.Beta, &best.Gamma}
	if damped {
		free = append(free, &best.Phi)
	}

	for step := 0.1; step >= refineMinStep; step /= 2 {
		improved := true
		for improved {
			improved = false
			for _, param := range free {
				for _, delta := range []float64{step, -step} {
					candidate := clampParam(*param + delta)
					if candidate == *param {
						continue
					}

					old := *param
					*param = candidate
					sse, ok := eval(best)
					if !ok {
						// Budget exhausted mid-refinement: the grid winner is
						// already a usable optimum
						*param = old
						return best, nil
					}
					if sse < bestSSE {
						bestSSE = sse
						improved = true
					} else {
						*param = old
					}
				}
			}
		}
	}

	return best, nil
}

func clampParam(v float64) float64 {
	if v < paramFloor {
		return paramFloor
	}
	if v > 1 {
		return 1
	}
	return v
}
