package checkout

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// Form is the shipping and payment input for one submission attempt.
type Form struct {
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	DiscountCode    string `json:"discount_code,omitempty"`
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidationError carries field-scoped messages. It blocks submission
// before any network call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

// Validate checks every field and reports all failures at once, so the
// UI can mark each offending field.
func (f *Form) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(f.RecipientName) == "" {
		fields["recipient_name"] = "recipient name is required"
	}
	if !phonePattern.MatchString(f.RecipientPhone) {
		fields["recipient_phone"] = "phone must be exactly 10 digits"
	}
	if strings.TrimSpace(f.ShippingAddress) == "" {
		fields["shipping_address"] = "shipping address is required"
	}
	if !domain.PaymentMethod(f.PaymentMethod).Valid() {
		fields["payment_method"] = "payment method must be CASH or ONLINE"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
