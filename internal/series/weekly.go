// Package series turns raw observations for one (store, department) key into
// a regular weekly time series and enforces the minimum length required for
// seasonal fitting.
package series

import (
	"fmt"
	"time"

	"github.com/storecast/storecast/internal/dataset"
)

// Point is one aggregated week, labelled by its ending Sunday
type Point struct {
	WeekEnding time.Time
	Sales      float64
}

// Weekly is the aggregated series for one (store, department) key.
// Week-ending dates are strictly increasing with fixed 7-day spacing.
type Weekly struct {
	Store  int
	Dept   int
	Points []Point
}

// NoDataError reports a (store, department) key with no sales rows
type NoDataError struct {
	Store int
	Dept  int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for store %d, dept %d", e.Store, e.Dept)
}

// InsufficientDataError reports a series shorter than the seasonal minimum
type InsufficientDataError struct {
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d weekly points, have %d", e.Required, e.Actual)
}

// MinLength is the shortest series a seasonal fit accepts: two full cycles,
// or one cycle plus five points for very short periods.
func MinLength(seasonalPeriods int) int {
	if n := seasonalPeriods + 5; n > 2*seasonalPeriods {
		return n
	}
	return 2 * seasonalPeriods
}

// WeekEnding maps a date to the Sunday ending its calendar week.
// Sundays map to themselves.
func WeekEnding(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// Build aggregates the observations matching the (store, dept) key into a
// weekly series and validates it against the seasonal minimum. Rows for
// other keys are ignored. Sales of observations falling in the same week
// bucket are summed; interior weeks with no observations aggregate to zero;
// leading and trailing empty weeks are dropped.
func Build(obs []dataset.Observation, store, dept, seasonalPeriods int) (*Weekly, error) {
	sums := make(map[time.Time]float64)
	var first, last time.Time
	for _, o := range obs {
		if o.Store != store || o.Dept != dept {
			continue
		}
		week := WeekEnding(o.Date)
		sums[week] += o.WeeklySales

		if first.IsZero() || week.Before(first) {
			first = week
		}
		if last.IsZero() || week.After(last) {
			last = week
		}
	}
	if len(sums) == 0 {
		return nil, &NoDataError{Store: store, Dept: dept}
	}

	// first and last always hold observations, so only interior gaps remain;
	// those aggregate to zero
	var points []Point
	for week := first; !week.After(last); week = week.AddDate(0, 0, 7) {
		points = append(points, Point{WeekEnding: week, Sales: sums[week]})
	}

	if required := MinLength(seasonalPeriods); len(points) < required {
		return nil, &InsufficientDataError{Required: required, Actual: len(points)}
	}

	return &Weekly{Store: store, Dept: dept, Points: points}, nil
}

// Values extracts the sales values in week order
func (w *Weekly) Values() []float64 {
	values := make([]float64, len(w.Points))
	for i, p := range w.Points {
		values[i] = p.Sales
	}
	return values
}

// LastWeek returns the final week-ending date
func (w *Weekly) LastWeek() time.Time {
	return w.Points[len(w.Points)-1].WeekEnding
}
