package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()

	sales := `Store,Dept,Date,Weekly_Sales,IsHoliday
2,1,2010-02-12,1500.50,TRUE
1,1,2010-02-05,1000.00,FALSE
1,2,2010-02-05,3000.00,FALSE
1,1,2010-02-12,2000.25,TRUE
1,1,2010-02-12,500.00,TRUE
`
	stores := `Store,Type,Size
1,A,151315
2,B,202307
`
	features := `Store,Date,Temperature,Fuel_Price,MarkDown1,MarkDown2,MarkDown3,MarkDown4,MarkDown5,CPI,Unemployment,IsHoliday
1,2010-02-05,42.31,2.572,NA,NA,NA,NA,NA,211.096358,8.106,FALSE
1,2010-02-12,38.51,2.548,1000.0,NA,NA,NA,NA,211.24217,8.106,TRUE
`

	return Paths{
		Sales:    writeFile(t, dir, "train.csv", sales),
		Stores:   writeFile(t, dir, "stores.csv", stores),
		Features: writeFile(t, dir, "features.csv", features),
	}
}

func TestAssemble_JoinAndSort(t *testing.T) {
	ds, err := Assemble(testPaths(t))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	obs := ds.Observations()
	if len(obs) != 5 {
		t.Fatalf("Expected 5 observations (every sales row survives), got %d", len(obs))
	}

	// Sorted by (store, dept, date)
	for i := 1; i < len(obs); i++ {
		a, b := obs[i-1], obs[i]
		if a.Store > b.Store {
			t.Errorf("Observations not sorted by store at %d", i)
		}
		if a.Store == b.Store && a.Dept > b.Dept {
			t.Errorf("Observations not sorted by dept at %d", i)
		}
		if a.Store == b.Store && a.Dept == b.Dept && a.Date.After(b.Date) {
			t.Errorf("Observations not sorted by date at %d", i)
		}
	}

	// Matched feature row joined on (store, date, isHoliday)
	first := obs[0]
	if first.Store != 1 || first.Dept != 1 {
		t.Fatalf("Unexpected first observation %+v", first)
	}
	if first.Features == nil {
		t.Fatal("Expected feature match for store 1 on 2010-02-05")
	}
	if first.Features.Temperature == nil || *first.Features.Temperature != 42.31 {
		t.Errorf("Unexpected temperature %v", first.Features.Temperature)
	}
	if first.Features.MarkDowns[0] != nil {
		t.Error("Expected NA MarkDown1 to stay nil")
	}
	if first.Meta == nil || first.Meta.Type != "A" {
		t.Errorf("Expected store metadata type A, got %+v", first.Meta)
	}
}

func TestAssemble_LeftJoinKeepsUnmatchedRows(t *testing.T) {
	ds, err := Assemble(testPaths(t))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	// Store 2 has no feature rows; its sales row must survive with nil features
	obs := ds.ForKey(2, 1)
	if len(obs) != 1 {
		t.Fatalf("Expected 1 observation for store 2 dept 1, got %d", len(obs))
	}
	if obs[0].Features != nil {
		t.Error("Expected nil features for unmatched row")
	}
	if obs[0].Meta == nil || obs[0].Meta.Size != 202307 {
		t.Errorf("Expected store 2 metadata, got %+v", obs[0].Meta)
	}
}

func TestAssemble_DuplicateSalesRowsPreserved(t *testing.T) {
	ds, err := Assemble(testPaths(t))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	// Two rows for (1, 1, 2010-02-12); aggregation happens later, not here
	obs := ds.ForKey(1, 1)
	if len(obs) != 3 {
		t.Fatalf("Expected 3 observations for store 1 dept 1, got %d", len(obs))
	}
}

func TestAssemble_Catalog(t *testing.T) {
	ds, err := Assemble(testPaths(t))
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	stores := ds.Stores()
	if len(stores) != 2 || stores[0].Store != 1 || stores[1].Store != 2 {
		t.Errorf("Unexpected store catalog %+v", stores)
	}

	depts, ok := ds.Departments(1)
	if !ok || len(depts) != 2 || depts[0] != 1 || depts[1] != 2 {
		t.Errorf("Unexpected departments for store 1: %v (ok=%v)", depts, ok)
	}

	if _, ok := ds.Departments(99); ok {
		t.Error("Expected ok=false for unknown store")
	}
}

func TestAssemble_MissingTableFailsWhole(t *testing.T) {
	paths := testPaths(t)
	paths.Features = filepath.Join(t.TempDir(), "missing.csv")

	_, err := Assemble(paths)
	if err == nil {
		t.Fatal("Expected error for unreadable features table")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestAssemble_MalformedRow(t *testing.T) {
	paths := testPaths(t)
	dir := t.TempDir()
	paths.Sales = writeFile(t, dir, "train.csv", "Store,Dept,Date,Weekly_Sales,IsHoliday\n1,1,not-a-date,1.0,FALSE\n")

	_, err := Assemble(paths)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable for malformed row, got %v", err)
	}
}
