package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mkhai207/app-shop-checkout/internal/cache"
	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// Fetcher reads the authoritative cart from the backend.
type Fetcher interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
}

// Provider is the read side of the cart: a read-through cache over the
// backend snapshot. Mutations go through the Slice, which invalidates
// the cache so the next read hits the backend.
type Provider struct {
	fetcher Fetcher
	cache   cache.CartCache
	sfg     singleflight.Group // Prevents cache stampede
	logger  *zap.Logger
}

func NewProvider(fetcher Fetcher, cartCache cache.CartCache, logger *zap.Logger) *Provider {
	return &Provider{
		fetcher: fetcher,
		cache:   cartCache,
		logger:  logger,
	}
}

func (p *Provider) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := p.sfg.Do(userID, func() (interface{}, error) {
		cached, err := p.cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			p.logger.Warn("cart cache get failed", zap.Error(err)) // log cache error but continue
		}

		cart, errGet := p.fetcher.GetCart(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := p.cache.Set(setCtx, userID, cart); errSet != nil {
				p.logger.Warn("cart cache set failed", zap.Error(errSet))
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (p *Provider) Invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.cache.Delete(ctx, userID); err != nil {
		p.logger.Warn("cart cache invalidate failed", zap.Error(err))
	}
}
