package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"
)

// RedisConfig represents redis cache configuration
type RedisConfig struct {
	URL      string        // Redis URL (e.g., redis://localhost:6379)
	Password string        // Optional authentication
	DB       int           // Database number (default: 0)
	Prefix   string        // Key prefix (default: "storecast")
	TTL      time.Duration // Entry lifetime
}

// RedisCache shares forecast results across processes via redis.
// Payloads are snappy-compressed JSON.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to redis and verifies the connection
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to plain host:port
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "storecast"
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) namespaced(key string) string {
	return c.prefix + ":" + key
}

// Get retrieves and decompresses a payload
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	compressed, err := c.client.Get(ctx, c.namespaced(key)).Bytes()
	if err != nil {
		return nil, false
	}

	value, err := snappy.Decode(nil, compressed)
	if err != nil {
		// Corrupt entry; treat as a miss and drop it
		c.client.Del(ctx, c.namespaced(key))
		return nil, false
	}

	return value, true
}

// Set compresses and stores a payload under the configured TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	compressed := snappy.Encode(nil, value)
	c.client.Set(ctx, c.namespaced(key), compressed, c.ttl)
}

// Flush drops every entry under this cache's prefix
func (c *RedisCache) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+":*", 500).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close closes the redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
