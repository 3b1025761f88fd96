package validation

import (
	"fmt"
	"strings"

	"donation-desk/internal/core/domain"

	"github.com/xeipuuv/gojsonschema"
)

// DonationValidator checks submissions against a JSON schema built from the
// configured required-field set.
type DonationValidator struct {
	schema   *gojsonschema.Schema
	required []string
}

// NewDonationValidator compiles the schema for the given required fields
func NewDonationValidator(required []string) (*DonationValidator, error) {
	for _, f := range required {
		if !domain.IsDonationField(f) {
			return nil, fmt.Errorf("unknown donation field %q", f)
		}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(BuildSchema(required)))
	if err != nil {
		return nil, fmt.Errorf("failed to compile donation schema: %w", err)
	}

	return &DonationValidator{
		schema:   schema,
		required: append([]string(nil), required...),
	}, nil
}

// Required returns the required-field set this validator enforces
func (v *DonationValidator) Required() []string {
	return append([]string(nil), v.required...)
}

// BuildSchema returns the JSON schema document for a required-field set
func BuildSchema(required []string) map[string]interface{} {
	isRequired := make(map[string]bool, len(required))
	for _, f := range required {
		isRequired[f] = true
	}

	stringProp := func(name string) map[string]interface{} {
		p := map[string]interface{}{"type": "string"}
		if isRequired[name] {
			p["minLength"] = 1
		}
		return p
	}

	methods := make([]interface{}, 0, len(domain.PaymentMethods)+1)
	for _, m := range domain.PaymentMethods {
		methods = append(methods, string(m))
	}
	if !isRequired[domain.FieldPaymentMethod] {
		methods = append(methods, string(domain.PaymentMethodUnset))
	}

	paymentProp := stringProp(domain.FieldPaymentMethod)
	paymentProp["enum"] = methods

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			domain.FieldFullName:            stringProp(domain.FieldFullName),
			domain.FieldEmail:               stringProp(domain.FieldEmail),
			domain.FieldPhoneNumber:         stringProp(domain.FieldPhoneNumber),
			domain.FieldConfirmationMessage: stringProp(domain.FieldConfirmationMessage),
			domain.FieldPaymentMethod:       paymentProp,
			domain.FieldDonationAmount: map[string]interface{}{
				"type":    "number",
				"minimum": 0,
			},
		},
	}
	if len(required) > 0 {
		req := make([]interface{}, 0, len(required))
		for _, f := range required {
			req = append(req, f)
		}
		schema["required"] = req
	}
	return schema
}

// Validate returns a *domain.ValidationError describing every failing field,
// or nil when the donation is acceptable.
func (v *DonationValidator) Validate(d *domain.Donation) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(d))
	if err != nil {
		return &domain.ValidationError{Message: "Invalid donation payload"}
	}
	if result.Valid() {
		return nil
	}

	missing := map[string]bool{}
	invalid := map[string]bool{}
	for _, e := range result.Errors() {
		switch e.Type() {
		case "required":
			if p, ok := e.Details()["property"].(string); ok {
				missing[p] = true
			}
		case "string_gte":
			missing[e.Field()] = true
		default:
			invalid[e.Field()] = true
		}
	}

	var missingFields, invalidFields []string
	for _, f := range domain.DonationFields {
		if missing[f] {
			missingFields = append(missingFields, f)
		} else if invalid[f] {
			invalidFields = append(invalidFields, f)
		}
	}

	fields := append(append([]string(nil), missingFields...), invalidFields...)
	switch {
	case len(missingFields) > 0:
		return &domain.ValidationError{Fields: fields, Message: "Missing required fields: " + strings.Join(missingFields, ", ")}
	case len(invalidFields) > 0:
		return &domain.ValidationError{Fields: fields, Message: "Invalid fields: " + strings.Join(invalidFields, ", ")}
	default:
		return &domain.ValidationError{Message: "Invalid donation payload"}
	}
}
