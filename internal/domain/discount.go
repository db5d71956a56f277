package domain

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// DiscountCode is a backend-issued promotional rule. Read-only from the
// checkout's perspective; looked up by code at apply-time, never cached.
type DiscountCode struct {
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	ValidFrom         time.Time    `json:"valid_from"`
	ValidUntil        time.Time    `json:"valid_until"`
	MinimumOrderValue Money        `json:"minimum_order_value"`
	// MaxDiscountAmount caps percentage discounts; zero or below means no cap.
	MaxDiscountAmount Money `json:"max_discount_amount"`
}

// AppliedDiscount is ephemeral: it exists only within a single checkout
// session and is always computed against the current subtotal.
type AppliedDiscount struct {
	Code           string       `json:"code"`
	DiscountAmount Money        `json:"discount_amount"`
	DiscountType   DiscountType `json:"discount_type"`
}
