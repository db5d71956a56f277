package discount

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// Lookup fetches a discount rule by its code.
// Consumers define this interface, not the REST client implementation.
type Lookup interface {
	GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
}

type Evaluator struct {
	lookup Lookup
	now    func() time.Time
}

func NewEvaluator(lookup Lookup) *Evaluator {
	return &Evaluator{lookup: lookup, now: time.Now}
}

// NewEvaluatorAt injects the clock, for validity-window tests.
func NewEvaluatorAt(lookup Lookup, now func() time.Time) *Evaluator {
	return &Evaluator{lookup: lookup, now: now}
}

// Apply validates a code against the current subtotal and computes the
// discount amount. Validation short-circuits on the first failure, in a
// fixed order so user-facing messages are deterministic:
// empty code, lookup, validity window, minimum order value.
// Either every check passes and an AppliedDiscount is returned, or the
// code is rejected with no partial state.
func (e *Evaluator) Apply(ctx context.Context, code string, subtotal domain.Money) (*domain.AppliedDiscount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	rule, err := e.lookup.GetByCode(ctx, code)
	if err != nil || rule == nil {
		// Absent and lookup-failed collapse to the same user-facing rejection.
		return nil, ErrNotFound
	}

	now := e.now()
	if now.Before(rule.ValidFrom) || now.After(rule.ValidUntil) {
		return nil, ErrExpired
	}

	if subtotal < rule.MinimumOrderValue {
		return nil, &BelowMinimumError{Minimum: rule.MinimumOrderValue}
	}

	return &domain.AppliedDiscount{
		Code:           rule.Code,
		DiscountAmount: Amount(rule, subtotal),
		DiscountType:   rule.DiscountType,
	}, nil
}

// Amount computes the discount for a rule that already passed validation.
// Percentage amounts round to the nearest unit before the cap is applied;
// fixed amounts are never capped.
func Amount(rule *domain.DiscountCode, subtotal domain.Money) domain.Money {
	if rule.DiscountType == domain.DiscountTypeFixed {
		return domain.Money(rule.DiscountValue)
	}

	raw := domain.Money(math.Round(float64(subtotal) * rule.DiscountValue / 100))
	if rule.MaxDiscountAmount > 0 && raw > rule.MaxDiscountAmount {
		return rule.MaxDiscountAmount
	}
	return raw
}
