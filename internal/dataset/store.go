package dataset

import (
	"sync/atomic"
	"time"

	"github.com/storecast/storecast/internal/logging"
)

// Store holds the current dataset behind an atomic pointer. Requests read it
// without locking; Reload assembles a complete replacement before swapping,
// so readers always see either the old or the new dataset, never a mix.
type Store struct {
	paths   Paths
	logger  *logging.Logger
	current atomic.Pointer[Dataset]
}

// NewStore assembles the initial dataset and wraps it in a Store
func NewStore(paths Paths, logger *logging.Logger) (*Store, error) {
	s := &Store{paths: paths, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active dataset
func (s *Store) Current() *Dataset {
	return s.current.Load()
}

// Reload assembles a fresh dataset from the source tables and swaps it in
// atomically. On failure the previous dataset stays active.
func (s *Store) Reload() error {
	start := time.Now()

	ds, err := Assemble(s.paths)
	if err != nil {
		s.logger.Error("Dataset reload failed", "error", err)
		return err
	}

	s.current.Store(ds)
	s.logger.Info("Dataset loaded",
		"observations", len(ds.observations),
		"stores", len(ds.stores),
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}
