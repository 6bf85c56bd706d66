package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storecast/storecast/internal/config"
)

func TestNew_DefaultsToMemory(t *testing.T) {
	for _, typ := range []string{"", "memory", "Memory"} {
		c, err := New(config.CacheConfig{Type: typ, TTL: time.Minute})
		require.NoError(t, err)
		defer c.Close()

		_, ok := c.(*MemoryCache)
		assert.True(t, ok, "expected MemoryCache for type %q", typ)
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(config.CacheConfig{Type: "memcached", TTL: time.Minute})
	assert.Error(t, err)
}
