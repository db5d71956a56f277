package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cartCache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cartCache, mr, cleanup
}

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		ID:     "cart-1",
		UserID: userID,
		Entries: []domain.CartEntry{
			{
				ID:       "entry-1",
				Quantity: 2,
				Variant: domain.Variant{
					ID:    "variant-1",
					Color: "black",
					Size:  "M",
					Product: domain.Product{
						ID:    "product-1",
						Name:  "Plain Tee",
						Price: 150_000,
					},
				},
			},
		},
		UpdatedAt: time.Now(),
	}
}

func TestGet_Success(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	cartJSON, _ := json.Marshal(testCart(userID))
	mr.Set(cacheKey(userID), string(cartJSON))

	result, err := cartCache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Len(t, result.Entries, 1)
	assert.Equal(t, "variant-1", result.Entries[0].Variant.ID)
}

func TestGet_CacheMiss(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cartCache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("user123"), "not-json")

	result, err := cartCache.Get(context.Background(), "user123")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSet_ThenGetRoundTrip(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	require.NoError(t, cartCache.Set(ctx, userID, testCart(userID)))

	result, err := cartCache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "cart-1", result.ID)
	assert.Equal(t, domain.Money(150_000), result.Entries[0].Variant.Product.Price)
}

func TestSet_AppliesTTL(t *testing.T) {
	cartCache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	userID := "user123"
	require.NoError(t, cartCache.Set(context.Background(), userID, testCart(userID)))

	ttl := mr.TTL(cacheKey(userID))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete_RemovesEntry(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	require.NoError(t, cartCache.Set(ctx, userID, testCart(userID)))
	require.NoError(t, cartCache.Delete(ctx, userID))

	_, err := cartCache.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	cartCache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, cartCache.Delete(context.Background(), "nonexistent"))
}
