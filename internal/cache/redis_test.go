package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := []models.ProductView{
		{ID: 1, Name: "Atlas", Category: "Books", Price: 10, Stock: 5},
	}
	require.NoError(t, cache.Set(ctx, "products", expected, time.Minute))

	var actual []models.ProductView
	found, err := cache.Get(ctx, "products", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out []models.Category
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetCorruptedValue(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set("categories", "{not json"))

	var out []models.Category
	found, err := cache.Get(context.Background(), "categories", &out)
	require.Error(t, err)
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "categories", []models.Category{{ID: 1, Name: "Books"}}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out []models.Category
	found, err := cache.Get(ctx, "categories", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "products", []int{1}, time.Minute))
	require.NoError(t, cache.Set(ctx, "categories", []int{2}, time.Minute))

	require.NoError(t, cache.Invalidate(ctx, "products", "categories"))
	assert.False(t, mr.Exists("products"))
	assert.False(t, mr.Exists("categories"))

	require.NoError(t, cache.Invalidate(ctx))
}

func TestInitServer_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = InitServer(context.Background(), config.RedisConnection{
		AddressRedis: addr,
		DialTimeout:  100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.InitServer")
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Noop

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var out int
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, c.Invalidate(ctx, "k"))
}
