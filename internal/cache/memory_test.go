package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k1", []byte("payload"))

	value, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), value)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k1", []byte("payload"))
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok, "expired entry must count as a miss")
}

func TestMemoryCache_Flush(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k1", []byte("a"))
	c.Set(ctx, "k2", []byte("b"))

	require.NoError(t, c.Flush(ctx))

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "k2")
	assert.False(t, ok)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k1", []byte("old"))
	c.Set(ctx, "k1", []byte("new"))

	value, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), value)
}
