package series

import (
	"errors"
	"testing"
	"time"

	"github.com/storecast/storecast/internal/dataset"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func obsAt(dates []string, sales []float64) []dataset.Observation {
	obs := make([]dataset.Observation, len(dates))
	for i := range dates {
		obs[i] = dataset.Observation{Store: 1, Dept: 1, Date: date(dates[i]), WeeklySales: sales[i]}
	}
	return obs
}

// weeklyObs builds n consecutive weekly observations starting at start (a Friday
// in the source data; buckets are labelled by the following Sunday)
func weeklyObs(start string, n int) []dataset.Observation {
	obs := make([]dataset.Observation, n)
	d := date(start)
	for i := 0; i < n; i++ {
		obs[i] = dataset.Observation{Store: 1, Dept: 1, Date: d, WeeklySales: float64(100 + i)}
		d = d.AddDate(0, 0, 7)
	}
	return obs
}

func TestWeekEnding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2010-02-05", "2010-02-07"}, // Friday -> Sunday
		{"2010-02-07", "2010-02-07"}, // Sunday maps to itself
		{"2010-02-08", "2010-02-14"}, // Monday -> next Sunday
	}
	for _, tt := range tests {
		if got := WeekEnding(date(tt.in)); !got.Equal(date(tt.want)) {
			t.Errorf("WeekEnding(%s) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestMinLength(t *testing.T) {
	if got := MinLength(52); got != 104 {
		t.Errorf("MinLength(52) = %d, want 104", got)
	}
	// Short periods: m+5 dominates 2m
	if got := MinLength(4); got != 9 {
		t.Errorf("MinLength(4) = %d, want 9", got)
	}
	if got := MinLength(1); got != 6 {
		t.Errorf("MinLength(1) = %d, want 6", got)
	}
}

func TestBuild_SumsDuplicatesInSameWeek(t *testing.T) {
	// Two observations in the same calendar week plus enough weekly history
	obs := weeklyObs("2010-02-05", 9)
	obs = append(obs, dataset.Observation{Store: 1, Dept: 1, Date: date("2010-02-05"), WeeklySales: 50})
	obs = append(obs, dataset.Observation{Store: 1, Dept: 1, Date: date("2010-02-06"), WeeklySales: 25})

	w, err := Build(obs, 1, 1, 2)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if w.Points[0].Sales != 100+50+25 {
		t.Errorf("Expected first week sum 175, got %v", w.Points[0].Sales)
	}
}

func TestBuild_NoInteriorGaps(t *testing.T) {
	// Weeks 1, 2 and 5 observed; 3 and 4 must appear with zero sales
	obs := obsAt(
		[]string{"2010-02-05", "2010-02-12", "2010-03-05", "2010-03-12", "2010-03-19", "2010-03-26"},
		[]float64{100, 200, 500, 600, 700, 800},
	)

	w, err := Build(obs, 1, 1, 2)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(w.Points) != 8 {
		t.Fatalf("Expected 8 consecutive weeks, got %d", len(w.Points))
	}
	for i := 1; i < len(w.Points); i++ {
		gap := w.Points[i].WeekEnding.Sub(w.Points[i-1].WeekEnding)
		if gap != 7*24*time.Hour {
			t.Fatalf("Gap between points %d and %d is %v, want 168h", i-1, i, gap)
		}
	}
	if w.Points[2].Sales != 0 || w.Points[3].Sales != 0 {
		t.Errorf("Expected zero-filled interior weeks, got %v and %v", w.Points[2].Sales, w.Points[3].Sales)
	}
}

func TestBuild_NoDataForKey(t *testing.T) {
	_, err := Build(nil, 7, 13, 52)
	if err == nil {
		t.Fatal("Expected error for empty key")
	}

	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("Expected NoDataError, got %T", err)
	}
	if noData.Store != 7 || noData.Dept != 13 {
		t.Errorf("Error should carry the key, got %+v", noData)
	}
}

func TestBuild_FiltersOtherKeys(t *testing.T) {
	// Rows for other stores and departments in the same weeks must not
	// leak into the key's weekly sums
	obs := weeklyObs("2010-02-05", 10)
	for _, o := range weeklyObs("2010-02-05", 10) {
		o.Store = 2
		o.WeeklySales = 700
		obs = append(obs, o)
	}
	for _, o := range weeklyObs("2010-02-05", 10) {
		o.Dept = 9
		o.WeeklySales = 300
		obs = append(obs, o)
	}

	w, err := Build(obs, 1, 1, 4)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(w.Points) != 10 {
		t.Fatalf("Expected 10 weeks, got %d", len(w.Points))
	}
	for i, p := range w.Points {
		want := float64(100 + i)
		if p.Sales != want {
			t.Errorf("Week %d: expected %v from the key's own rows, got %v", i, want, p.Sales)
		}
	}
}

func TestBuild_AbsentKeyAmongOtherData(t *testing.T) {
	// A key with no rows must fail even when the input holds plenty of
	// rows for other keys
	obs := weeklyObs("2010-02-05", 120)

	_, err := Build(obs, 3, 3, 52)

	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("Expected NoDataError, got %T: %v", err, err)
	}
	if noData.Store != 3 || noData.Dept != 3 {
		t.Errorf("Error should carry the key, got %+v", noData)
	}
}

func TestBuild_BoundaryLengths(t *testing.T) {
	// Exactly 104 points at m=52 is accepted
	w, err := Build(weeklyObs("2010-02-05", 104), 1, 1, 52)
	if err != nil {
		t.Fatalf("104 points at m=52 should be accepted: %v", err)
	}
	if len(w.Points) != 104 {
		t.Errorf("Expected 104 points, got %d", len(w.Points))
	}

	// 103 points is rejected with required=104, actual=103
	_, err = Build(weeklyObs("2010-02-05", 103), 1, 1, 52)
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientDataError, got %v", err)
	}
	if insufficient.Required != 104 || insufficient.Actual != 103 {
		t.Errorf("Expected required=104 actual=103, got %+v", insufficient)
	}
}

func TestBuild_ShortSeries(t *testing.T) {
	_, err := Build(weeklyObs("2010-02-05", 60), 1, 1, 52)

	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientDataError, got %v", err)
	}
	if insufficient.Required != 104 || insufficient.Actual != 60 {
		t.Errorf("Expected required=104 actual=60, got %+v", insufficient)
	}
}

func TestBuild_AggregationMatchesSourceSum(t *testing.T) {
	obs := weeklyObs("2010-02-05", 12)
	w, err := Build(obs, 1, 1, 2)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var sourceTotal, seriesTotal float64
	for _, o := range obs {
		sourceTotal += o.WeeklySales
	}
	for _, p := range w.Points {
		seriesTotal += p.Sales
	}
	if sourceTotal != seriesTotal {
		t.Errorf("Series total %v != source total %v", seriesTotal, sourceTotal)
	}
}
