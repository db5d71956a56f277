package pricing

import (
	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

const (
	DefaultFreeShippingThreshold = 500_000
	DefaultStandardShippingFee   = 30_000
)

// Config holds the shipping-fee rule constants.
type Config struct {
	FreeShippingThreshold domain.Money
	StandardShippingFee   domain.Money
}

func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		StandardShippingFee:   DefaultStandardShippingFee,
	}
}

type Totals struct {
	Subtotal       domain.Money `json:"subtotal"`
	ShippingFee    domain.Money `json:"shipping_fee"`
	DiscountAmount domain.Money `json:"discount_amount"`
	GrandTotal     domain.Money `json:"grand_total"`
}

// Subtotal sums unit price times quantity over all line items.
func Subtotal(items []domain.LineItem) domain.Money {
	var sum domain.Money
	for _, item := range items {
		sum += item.UnitPrice * domain.Money(item.Quantity)
	}
	return sum
}

// ComputeTotals derives the payable amounts for a checkout attempt.
// The discount amount comes pre-capped from the evaluator; the grand
// total is clamped at zero so an oversized discount never produces a
// negative payable.
func (c Config) ComputeTotals(items []domain.LineItem, applied *domain.AppliedDiscount) Totals {
	t := Totals{Subtotal: Subtotal(items)}

	if t.Subtotal >= c.FreeShippingThreshold {
		t.ShippingFee = 0
	} else {
		t.ShippingFee = c.StandardShippingFee
	}

	if applied != nil {
		t.DiscountAmount = applied.DiscountAmount
	}

	t.GrandTotal = t.Subtotal + t.ShippingFee - t.DiscountAmount
	if t.GrandTotal < 0 {
		t.GrandTotal = 0
	}
	return t
}
