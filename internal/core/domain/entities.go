package domain

// PaymentMethod is the channel a donor claims to have paid through
type PaymentMethod string

const (
	PaymentMethodUnset PaymentMethod = ""
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodBank  PaymentMethod = "bank"
)

// PaymentMethods lists the concrete methods accepted at submission time
var PaymentMethods = []PaymentMethod{PaymentMethodMpesa, PaymentMethodBank}

// Role is the role claim carried by a session token
type Role string

const RoleAdmin Role = "admin"

// TimestampLayout is the ISO-8601 layout used for submittedAt
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Donation is one donor submission. The JSON names are both the wire format
// and the on-disk format of the donations document.
type Donation struct {
	ID                  string        `json:"id"`
	FullName            string        `json:"fullName"`
	Email               string        `json:"email"`
	PhoneNumber         string        `json:"phoneNumber"`
	DonationAmount      *float64      `json:"donationAmount,omitempty"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	ConfirmationMessage string        `json:"confirmationMessage"`
	SubmittedAt         string        `json:"submittedAt"`
}

// Donation field names, as used in the required-field configuration
const (
	FieldFullName            = "fullName"
	FieldEmail               = "email"
	FieldPhoneNumber         = "phoneNumber"
	FieldDonationAmount      = "donationAmount"
	FieldPaymentMethod       = "paymentMethod"
	FieldConfirmationMessage = "confirmationMessage"
)

// DonationFields lists every field that may appear in a required-field set
var DonationFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldDonationAmount,
	FieldPaymentMethod,
	FieldConfirmationMessage,
}

// DefaultRequiredFields mirrors the submission form's validation
var DefaultRequiredFields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPaymentMethod,
	FieldConfirmationMessage,
}

// IsDonationField reports whether name is a known donation field
func IsDonationField(name string) bool {
	for _, f := range DonationFields {
		if f == name {
			return true
		}
	}
	return false
}

// AdminCredential is a stored admin login. Password holds a bcrypt hash;
// older documents may still hold plaintext.
type AdminCredential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
