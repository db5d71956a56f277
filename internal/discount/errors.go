package discount

import (
	"errors"
	"fmt"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

var (
	ErrEmptyCode = errors.New("discount code is empty")
	ErrNotFound  = errors.New("discount code not found")
	ErrExpired   = errors.New("discount code is outside its validity window")
)

// BelowMinimumError carries the minimum order value so the caller can
// show it to the user.
type BelowMinimumError struct {
	Minimum domain.Money
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order subtotal is below the discount minimum of %d", e.Minimum)
}
