package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache. The default backend when no
// shared Redis instance is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	stopCh  chan struct{}
}

// NewMemoryCache creates a memory cache with a background janitor
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Get retrieves a value; expired entries count as misses
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.value, true
}

// Set stores a value under the configured TTL
func (c *MemoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Flush drops all entries
func (c *MemoryCache) Flush(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	return nil
}

// Close stops the janitor goroutine
func (c *MemoryCache) Close() error {
	close(c.stopCh)
	return nil
}

// cleanup periodically removes expired entries
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}
