package cache

import (
	"context"
	"errors"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// CartCache caches backend cart snapshots.
// Consumers define this interface, not the Redis implementation.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
