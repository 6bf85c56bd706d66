package cache

import (
	"fmt"
	"strings"

	"github.com/storecast/storecast/internal/config"
)

// New creates a Cache backend based on configuration.
// Default is the in-process memory cache.
func New(cfg config.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "memory":
		return NewMemoryCache(cfg.TTL), nil

	case "redis":
		return NewRedisCache(RedisConfig{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.TTL,
		})

	default:
		return nil, fmt.Errorf("unsupported cache type: %s (supported: memory, redis)", cfg.Type)
	}
}
