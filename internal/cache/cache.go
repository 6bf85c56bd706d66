// Package cache stores completed forecast results keyed by the full request
// signature. Entries expire on TTL and the whole cache is flushed whenever
// the base dataset is reloaded.
package cache

import "context"

// Cache is a byte-payload cache with TTL semantics
type Cache interface {
	// Get retrieves a payload; ok is false on miss or expiry
	Get(ctx context.Context, key string) (value []byte, ok bool)
	// Set stores a payload under the backend's configured TTL
	Set(ctx context.Context, key string, value []byte)
	// Flush drops every entry
	Flush(ctx context.Context) error
	// Close releases backend resources
	Close() error
}
