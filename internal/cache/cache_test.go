package cache

import (
	"context"
	"testing"
	"time"

	"yatube/internal/config"
	"yatube/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "index:1:0", Key("index", 1, 0))
	assert.Equal(t, "index:2:7", Key("index", 2, 7))
}

func TestLocalPageCacheHonoursTTL(t *testing.T) {
	c := NewLocalPageCache(8, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "index:1:0", []byte("body"), 20*time.Second))

	now = now.Add(19 * time.Second)
	body, ok, err := c.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", string(body))

	now = now.Add(2 * time.Second)
	_, ok, err = c.Get(ctx, "index:1:0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	pc, err := New(config.CacheConfig{Driver: "memory", IndexTTL: 20, Size: 4}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LocalPageCache{}, pc)

	_, err = New(config.CacheConfig{Driver: "redis"}, nil)
	assert.Error(t, err)

	_, err = New(config.CacheConfig{Driver: "memcached"}, nil)
	assert.Error(t, err)

	var _ PageCache = &redis.PageCache{}
}
