package buynow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    30 * time.Minute,
	}
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStore) Put(ctx context.Context, userID string, sel *domain.BuyNowSelection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection failed: %w", err)
	}

	if errSet := r.client.Set(ctx, storeKey(userID), data, r.ttl).Err(); errSet != nil {
		return fmt.Errorf("redis set failed: %w", errSet)
	}
	return nil
}

// Take reads and deletes atomically (GETDEL), so two concurrent
// resolutions can never both see the selection.
func (r *RedisStore) Take(ctx context.Context, userID string) (*domain.BuyNowSelection, error) {
	data, err := r.client.GetDel(ctx, storeKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	var sel domain.BuyNowSelection
	if err2 := json.Unmarshal(data, &sel); err2 != nil {
		return nil, fmt.Errorf("unmarshal selection failed: %w", err2)
	}
	return &sel, nil
}

func storeKey(userID string) string {
	return fmt.Sprintf("buynow:%s", userID)
}
