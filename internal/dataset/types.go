// Package dataset loads the raw sales, store and feature tables and joins
// them into the immutable observation set every forecast request reads from.
package dataset

import "time"

// SalesRecord is one row of the sales table (train.csv).
// The source may contain duplicate (Store, Dept, Date) rows.
type SalesRecord struct {
	Store       int
	Dept        int
	Date        time.Time
	WeeklySales float64
	IsHoliday   bool
}

// StoreMeta is one row of the stores table (stores.csv)
type StoreMeta struct {
	Store int
	Type  string
	Size  int
}

// FeatureRecord is one row of the features table (features.csv).
// Numeric fields are pointers because the source marks missing values as NA.
type FeatureRecord struct {
	Store        int
	Date         time.Time
	Temperature  *float64
	FuelPrice    *float64
	CPI          *float64
	Unemployment *float64
	MarkDowns    [5]*float64
	IsHoliday    bool
}

// Observation is a sales row left-joined with its feature and store rows.
// Features and Meta are nil when no matching row exists; fields are never
// fabricated.
type Observation struct {
	Store       int
	Dept        int
	Date        time.Time
	WeeklySales float64
	IsHoliday   bool
	Features    *FeatureRecord
	Meta        *StoreMeta
}

// StoreInfo describes a store for catalog listings
type StoreInfo struct {
	Store int
	Type  string
	Size  int
}
