package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

func TestSubtotal_SumsPriceTimesQuantity(t *testing.T) {
	items := []domain.LineItem{
		{ProductVariantID: "v1", UnitPrice: 200_000, Quantity: 1},
		{ProductVariantID: "v2", UnitPrice: 150_000, Quantity: 2},
	}

	assert.Equal(t, domain.Money(500_000), Subtotal(items))
}

func TestSubtotal_EmptyItems(t *testing.T) {
	assert.Equal(t, domain.Money(0), Subtotal(nil))
}

func TestComputeTotals_FreeShippingBoundaryInclusive(t *testing.T) {
	cfg := DefaultConfig()
	items := []domain.LineItem{
		{UnitPrice: 200_000, Quantity: 1},
		{UnitPrice: 150_000, Quantity: 2},
	}

	totals := cfg.ComputeTotals(items, nil)

	assert.Equal(t, domain.Money(500_000), totals.Subtotal)
	assert.Equal(t, domain.Money(0), totals.ShippingFee)
	assert.Equal(t, domain.Money(0), totals.DiscountAmount)
	assert.Equal(t, domain.Money(500_000), totals.GrandTotal)
}

func TestComputeTotals_StandardShippingBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	items := []domain.LineItem{
		{UnitPrice: 499_999, Quantity: 1},
	}

	totals := cfg.ComputeTotals(items, nil)

	assert.Equal(t, domain.Money(30_000), totals.ShippingFee)
	assert.Equal(t, domain.Money(529_999), totals.GrandTotal)
}

func TestComputeTotals_AppliedDiscountSubtracted(t *testing.T) {
	cfg := DefaultConfig()
	items := []domain.LineItem{
		{UnitPrice: 200_000, Quantity: 1},
		{UnitPrice: 150_000, Quantity: 2},
	}
	applied := &domain.AppliedDiscount{
		Code:           "SALE10",
		DiscountAmount: 50_000,
		DiscountType:   domain.DiscountTypePercentage,
	}

	totals := cfg.ComputeTotals(items, applied)

	assert.Equal(t, domain.Money(500_000), totals.Subtotal)
	assert.Equal(t, domain.Money(0), totals.ShippingFee)
	assert.Equal(t, domain.Money(50_000), totals.DiscountAmount)
	assert.Equal(t, domain.Money(450_000), totals.GrandTotal)
}

func TestComputeTotals_GrandTotalClampedAtZero(t *testing.T) {
	cfg := DefaultConfig()
	items := []domain.LineItem{
		{UnitPrice: 40_000, Quantity: 1},
	}
	applied := &domain.AppliedDiscount{
		Code:           "HUGE",
		DiscountAmount: 100_000,
		DiscountType:   domain.DiscountTypeFixed,
	}

	totals := cfg.ComputeTotals(items, applied)

	assert.Equal(t, domain.Money(0), totals.GrandTotal)
}

func TestComputeTotals_CustomThresholds(t *testing.T) {
	cfg := Config{FreeShippingThreshold: 100_000, StandardShippingFee: 5_000}

	below := cfg.ComputeTotals([]domain.LineItem{{UnitPrice: 99_999, Quantity: 1}}, nil)
	atThreshold := cfg.ComputeTotals([]domain.LineItem{{UnitPrice: 100_000, Quantity: 1}}, nil)

	assert.Equal(t, domain.Money(5_000), below.ShippingFee)
	assert.Equal(t, domain.Money(0), atThreshold.ShippingFee)
}
