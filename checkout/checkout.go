package checkout

import (
	"regexp"

	"verda/models"
)

var (
	phoneRe  = regexp.MustCompile(`^[0-9]+$`)
	postalRe = regexp.MustCompile(`^[0-9]{5,6}$`)
)

// ValidateShippingAddress checks the delivery form rules: every field
// non-empty, digits-only phone, 5-6 digit postal code. The returned map is
// keyed by field name so callers can surface inline errors.
func ValidateShippingAddress(a models.ShippingAddress) map[string]string {
	errs := map[string]string{}

	if a.Address == "" {
		errs["address"] = "Address is required"
	}
	if a.City == "" {
		errs["city"] = "City is required"
	}
	if a.PostalCode == "" {
		errs["postalCode"] = "Postal code is required"
	} else if !postalRe.MatchString(a.PostalCode) {
		errs["postalCode"] = "Postal code must be 5 or 6 digits long"
	}
	if a.Country == "" {
		errs["country"] = "Country is required"
	}
	if a.Phone == "" {
		errs["phone"] = "Phone is required"
	} else if !phoneRe.MatchString(a.Phone) {
		errs["phone"] = "Phone number must contain only digits"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidPaymentMethod reports whether the method is one we accept.
func ValidPaymentMethod(method string) bool {
	switch method {
	case models.PaymentPayPal, models.PaymentCashOnDelivery:
		return true
	}
	return false
}
