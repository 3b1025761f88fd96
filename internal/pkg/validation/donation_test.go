package validation

import (
	"testing"

	"donation-desk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDonation() *domain.Donation {
	return &domain.Donation{
		FullName:            "Jane Doe",
		Email:               "jane@x.com",
		PhoneNumber:         "0712000000",
		PaymentMethod:       domain.PaymentMethodMpesa,
		ConfirmationMessage: "QWE123 Confirmed.",
	}
}

func asValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*domain.ValidationError)
	require.True(t, ok, "expected *domain.ValidationError, got %T", err)
	return ve
}

func TestNewDonationValidator_UnknownField(t *testing.T) {
	_, err := NewDonationValidator([]string{"fullName", "nickname"})
	assert.Error(t, err)
}

func TestValidate_DefaultRequiredFields(t *testing.T) {
	v, err := NewDonationValidator(domain.DefaultRequiredFields)
	require.NoError(t, err)

	assert.NoError(t, v.Validate(validDonation()))

	tests := []struct {
		name  string
		edit  func(d *domain.Donation)
		field string
	}{
		{"missing full name", func(d *domain.Donation) { d.FullName = "" }, "fullName"},
		{"missing email", func(d *domain.Donation) { d.Email = "" }, "email"},
		{"missing phone", func(d *domain.Donation) { d.PhoneNumber = "" }, "phoneNumber"},
		{"unset payment method", func(d *domain.Donation) { d.PaymentMethod = "" }, "paymentMethod"},
		{"missing confirmation", func(d *domain.Donation) { d.ConfirmationMessage = "" }, "confirmationMessage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDonation()
			tt.edit(d)
			ve := asValidationError(t, v.Validate(d))
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestValidate_ReportsAllMissingFieldsInOrder(t *testing.T) {
	v, err := NewDonationValidator(domain.DefaultRequiredFields)
	require.NoError(t, err)

	ve := asValidationError(t, v.Validate(&domain.Donation{Email: "jane@x.com"}))
	assert.Equal(t, []string{"fullName", "phoneNumber", "paymentMethod", "confirmationMessage"}, ve.Fields)
	assert.Equal(t, "Missing required fields: fullName, phoneNumber, paymentMethod, confirmationMessage", ve.Error())
}

func TestValidate_UnknownPaymentMethod(t *testing.T) {
	v, err := NewDonationValidator(domain.DefaultRequiredFields)
	require.NoError(t, err)

	d := validDonation()
	d.PaymentMethod = "paypal"
	ve := asValidationError(t, v.Validate(d))
	assert.Equal(t, []string{"paymentMethod"}, ve.Fields)
	assert.Equal(t, "Invalid fields: paymentMethod", ve.Error())
}

func TestValidate_OptionalConfirmationAndAmount(t *testing.T) {
	v, err := NewDonationValidator([]string{"fullName", "email", "phoneNumber", "paymentMethod"})
	require.NoError(t, err)

	d := validDonation()
	d.ConfirmationMessage = ""
	assert.NoError(t, v.Validate(d))
}

func TestValidate_RequiredAmount(t *testing.T) {
	required := append([]string{"donationAmount"}, domain.DefaultRequiredFields...)
	v, err := NewDonationValidator(required)
	require.NoError(t, err)

	ve := asValidationError(t, v.Validate(validDonation()))
	assert.Equal(t, []string{"donationAmount"}, ve.Fields)

	d := validDonation()
	zero := 0.0
	d.DonationAmount = &zero
	assert.NoError(t, v.Validate(d))
}

func TestValidate_NegativeAmount(t *testing.T) {
	v, err := NewDonationValidator(domain.DefaultRequiredFields)
	require.NoError(t, err)

	d := validDonation()
	amount := -5.0
	d.DonationAmount = &amount
	ve := asValidationError(t, v.Validate(d))
	assert.Equal(t, []string{"donationAmount"}, ve.Fields)
}

func TestValidate_UnsetPaymentMethodAllowedWhenOptional(t *testing.T) {
	v, err := NewDonationValidator([]string{"fullName"})
	require.NoError(t, err)

	d := validDonation()
	d.PaymentMethod = domain.PaymentMethodUnset
	assert.NoError(t, v.Validate(d))

	d.PaymentMethod = "cash"
	asValidationError(t, v.Validate(d))
}

func TestValidate_NoRequiredFields(t *testing.T) {
	v, err := NewDonationValidator(nil)
	require.NoError(t, err)

	assert.NoError(t, v.Validate(&domain.Donation{}))
	assert.Empty(t, v.Required())
}
