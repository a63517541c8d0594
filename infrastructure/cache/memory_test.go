package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(start time.Time) (*InMemoryCache, *time.Time) {
	now := start
	c := NewInMemoryCache(0)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, c.Set(ctx, "k", "v", 10))
	v, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	*now = now.Add(11 * time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestInMemoryCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Now())

	require.NoError(t, c.Set(ctx, "insights:u1:aggregate", 1, 60))
	require.NoError(t, c.Set(ctx, "insights:u1:connection:a", 2, 60))
	require.NoError(t, c.Set(ctx, "insights:u10:aggregate", 3, 60))

	require.NoError(t, c.DeletePrefix(ctx, "insights:u1:"))

	_, ok := c.Get(ctx, "insights:u1:aggregate")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "insights:u10:aggregate")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestInMemoryCache_ZeroTTLRemoves(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Now())

	require.NoError(t, c.Set(ctx, "k", "v", 60))
	require.NoError(t, c.Set(ctx, "k", "v", 0))

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestInMemoryCache_ClearAndClose(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Millisecond)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "a", 1, 60))
	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())

	c.Close()
}
