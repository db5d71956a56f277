package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllFieldsValid(t *testing.T) {
	form := validForm()
	assert.NoError(t, form.Validate())
}

func TestValidate_MissingRecipientName(t *testing.T) {
	form := validForm()
	form.RecipientName = "   "

	err := form.Validate()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "recipient_name")
}

func TestValidate_PhonePattern(t *testing.T) {
	cases := map[string]bool{
		"0912345678":  true,
		"091234567":   false, // too short
		"09123456789": false, // too long
		"09123a5678":  false, // non-numeric
		"":            false,
	}

	for phone, valid := range cases {
		form := validForm()
		form.RecipientPhone = phone
		err := form.Validate()
		if valid {
			assert.NoError(t, err, "phone %q", phone)
		} else {
			var validation *ValidationError
			require.ErrorAs(t, err, &validation, "phone %q", phone)
			assert.Contains(t, validation.Fields, "recipient_phone")
		}
	}
}

func TestValidate_PaymentMethod(t *testing.T) {
	form := validForm()
	form.PaymentMethod = "BITCOIN"

	err := form.Validate()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "payment_method")
}

func TestValidate_ReportsAllFailuresAtOnce(t *testing.T) {
	form := Form{}

	err := form.Validate()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Fields, 4)
}
