package order

import (
	"strings"

	pkgvalidator "github.com/bookcourier/bookcourier/pkg/validator"
)

// Field names used as keys in the wizard's field error map.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldInstructions = "instructions"
	FieldPayment      = "paymentMethod"
)

const minAddressLen = 10

const (
	minPhoneLen    = 10
	maxPhoneLen    = 15
	minPhoneDigits = 10
)

// validatePhone accepts international formats such as "+8801712345678".
// The value must be 10 to 15 characters drawn from digits, spaces, '+',
// '-' and parentheses, and must contain at least 10 digits.
func validatePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "phone number is required"
	}
	if len(phone) < minPhoneLen || len(phone) > maxPhoneLen {
		return "phone number must be 10 to 15 characters"
	}
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return "phone number contains invalid characters"
		}
	}
	if digits < minPhoneDigits {
		return "phone number must contain at least 10 digits"
	}
	return ""
}

func validateAddress(address string) string {
	if len(strings.TrimSpace(address)) < minAddressLen {
		return "delivery address must be at least 10 characters"
	}
	return ""
}

func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	return ""
}

func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "email is required"
	}
	if err := pkgvalidator.Var(email, "email"); err != nil {
		return "email must be a valid email address"
	}
	return ""
}

// validateDetails checks every detail field and returns one message per
// failing field. An empty map means the details are ready for confirmation.
func validateDetails(d Details) map[string]string {
	errs := make(map[string]string)
	if msg := validateName(d.Name); msg != "" {
		errs[FieldName] = msg
	}
	if msg := validateEmail(d.Email); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := validatePhone(d.Phone); msg != "" {
		errs[FieldPhone] = msg
	}
	if msg := validateAddress(d.Address); msg != "" {
		errs[FieldAddress] = msg
	}
	return errs
}
