package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkhai207/app-shop-checkout/internal/buynow"
	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// Mode says which item source a checkout attempt operates over.
type Mode string

const (
	// ModeCart reads the user's persisted cart.
	ModeCart Mode = "CART"
	// ModeBuyNow uses the transient single-item selection.
	ModeBuyNow Mode = "BUY_NOW"
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrMissingSelection = errors.New("buy-now selection is missing or malformed")
)

// CartReader supplies the current cart snapshot.
type CartReader interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
}

// Resolver decides where a checkout's line items come from and
// normalizes both sources into the uniform line-item shape.
type Resolver struct {
	carts      CartReader
	selections buynow.Store
}

func New(carts CartReader, selections buynow.Store) *Resolver {
	return &Resolver{carts: carts, selections: selections}
}

// Resolve checks for a pending buy-now selection first; if one exists
// it is consumed (a single read, discarded on take, so a repeated
// resolution falls back to the cart) and used as the sole line item.
// Otherwise the persisted cart supplies the items.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Mode, []domain.LineItem, error) {
	sel, err := r.selections.Take(ctx, userID)
	switch {
	case err == nil:
		if !sel.Valid() {
			return ModeBuyNow, nil, ErrMissingSelection
		}
		return ModeBuyNow, []domain.LineItem{sel.LineItem()}, nil
	case errors.Is(err, buynow.ErrNoSelection):
		// fall through to cart mode
	default:
		return ModeBuyNow, nil, fmt.Errorf("read buy-now selection: %w", err)
	}

	cart, err := r.carts.GetCart(ctx, userID)
	if err != nil {
		return ModeCart, nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil || len(cart.Entries) == 0 {
		return ModeCart, nil, ErrEmptyCart
	}

	return ModeCart, cart.EntryLineItems(), nil
}
