package buynow

import (
	"context"
	"errors"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// Store holds at most one pending buy-now selection per user.
// Take is a one-time consume: after the first successful Take the
// selection is gone, so a repeated checkout entry cannot resubmit it.
type Store interface {
	Put(ctx context.Context, userID string, sel *domain.BuyNowSelection) error
	Take(ctx context.Context, userID string) (*domain.BuyNowSelection, error)
}

var ErrNoSelection = errors.New("no pending buy-now selection")
