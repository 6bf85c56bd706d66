package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrUnavailable marks a failure to read one of the source tables.
// The whole load aborts; no partial dataset is ever produced.
var ErrUnavailable = errors.New("source data unavailable")

// Key identifies one (store, department) series
type Key struct {
	Store int
	Dept  int
}

// Dataset is the unified observation set: every sales row joined with its
// feature and store metadata rows, sorted by (store, dept, date). Built once
// and never mutated afterwards.
type Dataset struct {
	observations []Observation
	byKey        map[Key][]Observation
	deptsByStore map[int][]int
	stores       []StoreInfo
	loadedAt     time.Time
}

type featureKey struct {
	store     int
	date      time.Time
	isHoliday bool
}

// Assemble joins the three source tables into a Dataset
func Assemble(paths Paths) (*Dataset, error) {
	sales, err := readSales(paths.Sales)
	if err != nil {
		return nil, fmt.Errorf("%w: sales table %s: %v", ErrUnavailable, paths.Sales, err)
	}

	stores, err := readStores(paths.Stores)
	if err != nil {
		return nil, fmt.Errorf("%w: stores table %s: %v", ErrUnavailable, paths.Stores, err)
	}

	features, err := readFeatures(paths.Features)
	if err != nil {
		return nil, fmt.Errorf("%w: features table %s: %v", ErrUnavailable, paths.Features, err)
	}

	return assemble(sales, stores, features), nil
}

// Paths locates the three source tables
type Paths struct {
	Sales    string
	Stores   string
	Features string
}

func assemble(sales []SalesRecord, stores []StoreMeta, features []FeatureRecord) *Dataset {
	metaByStore := make(map[int]*StoreMeta, len(stores))
	for i := range stores {
		metaByStore[stores[i].Store] = &stores[i]
	}

	featuresByKey := make(map[featureKey]*FeatureRecord, len(features))
	for i := range features {
		k := featureKey{features[i].Store, features[i].Date, features[i].IsHoliday}
		featuresByKey[k] = &features[i]
	}

	// Left-preserving join: every sales row survives even without a match
	observations := make([]Observation, len(sales))
	for i, s := range sales {
		observations[i] = Observation{
			Store:       s.Store,
			Dept:        s.Dept,
			Date:        s.Date,
			WeeklySales: s.WeeklySales,
			IsHoliday:   s.IsHoliday,
			Features:    featuresByKey[featureKey{s.Store, s.Date, s.IsHoliday}],
			Meta:        metaByStore[s.Store],
		}
	}

	sort.SliceStable(observations, func(i, j int) bool {
		if observations[i].Store != observations[j].Store {
			return observations[i].Store < observations[j].Store
		}
		if observations[i].Dept != observations[j].Dept {
			return observations[i].Dept < observations[j].Dept
		}
		return observations[i].Date.Before(observations[j].Date)
	})

	byKey := make(map[Key][]Observation)
	deptSets := make(map[int]map[int]struct{})
	for _, obs := range observations {
		k := Key{obs.Store, obs.Dept}
		byKey[k] = append(byKey[k], obs)

		if deptSets[obs.Store] == nil {
			deptSets[obs.Store] = make(map[int]struct{})
		}
		deptSets[obs.Store][obs.Dept] = struct{}{}
	}

	deptsByStore := make(map[int][]int, len(deptSets))
	for store, set := range deptSets {
		depts := make([]int, 0, len(set))
		for dept := range set {
			depts = append(depts, dept)
		}
		sort.Ints(depts)
		deptsByStore[store] = depts
	}

	infos := make([]StoreInfo, len(stores))
	for i, m := range stores {
		infos[i] = StoreInfo{Store: m.Store, Type: m.Type, Size: m.Size}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Store < infos[j].Store })

	return &Dataset{
		observations: observations,
		byKey:        byKey,
		deptsByStore: deptsByStore,
		stores:       infos,
		loadedAt:     time.Now().UTC(),
	}
}

// Observations returns the full observation set in (store, dept, date) order
func (d *Dataset) Observations() []Observation {
	return d.observations
}

// ForKey returns the observations for one (store, department) series
func (d *Dataset) ForKey(store, dept int) []Observation {
	return d.byKey[Key{store, dept}]
}

// Stores returns store metadata sorted by store ID
func (d *Dataset) Stores() []StoreInfo {
	return d.stores
}

// Departments returns the sorted department IDs present for a store.
// ok is false when the store has no sales rows at all.
func (d *Dataset) Departments(store int) ([]int, bool) {
	depts, ok := d.deptsByStore[store]
	return depts, ok
}

// LoadedAt reports when this dataset was assembled
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
