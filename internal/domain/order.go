package domain

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}

// OrderStatusPending is set explicitly only for admin submitters; all
// other drafts leave status empty and accept the server default.
const OrderStatusPending = "PENDING"

// OrderDraft is constructed fresh per submission attempt.
type OrderDraft struct {
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address"`
	RecipientName   string        `json:"recipient_name"`
	RecipientPhone  string        `json:"recipient_phone"`
	DiscountCode    string        `json:"discount_code,omitempty"`
	LineItems       []LineItem    `json:"line_items"`
	Status          string        `json:"status,omitempty"`
}

type OrderOutcome string

const (
	// OutcomeRedirect means the caller must send the user to the payment
	// gateway URL; completion happens out-of-band.
	OutcomeRedirect OrderOutcome = "REDIRECT"
	// OutcomeConfirmed means the order is placed and the success view applies.
	OutcomeConfirmed OrderOutcome = "CONFIRMED"
)

type OrderResult struct {
	OrderID     string       `json:"order_id"`
	Outcome     OrderOutcome `json:"outcome"`
	RedirectURL string       `json:"redirect_url,omitempty"`
}
