package checkout

import (
	"testing"

	"verda/models"
)

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Address:    "12 Lake Rd",
		City:       "Colombo",
		PostalCode: "10250",
		Country:    "Sri Lanka",
		Phone:      "0765599810",
	}
}

func TestValidateShippingAddressAccepts(t *testing.T) {
	if errs := ValidateShippingAddress(validAddress()); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}

	a := validAddress()
	a.PostalCode = "123456" // 6 digits is also fine
	if errs := ValidateShippingAddress(a); errs != nil {
		t.Errorf("6-digit postal code rejected: %v", errs)
	}
}

func TestValidateShippingAddressRejects(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*models.ShippingAddress)
		field string
	}{
		{"non-digit phone", func(a *models.ShippingAddress) { a.Phone = "abc123" }, "phone"},
		{"empty phone", func(a *models.ShippingAddress) { a.Phone = "" }, "phone"},
		{"4-digit postal", func(a *models.ShippingAddress) { a.PostalCode = "1234" }, "postalCode"},
		{"7-digit postal", func(a *models.ShippingAddress) { a.PostalCode = "1234567" }, "postalCode"},
		{"empty address", func(a *models.ShippingAddress) { a.Address = "" }, "address"},
		{"empty city", func(a *models.ShippingAddress) { a.City = "" }, "city"},
		{"empty country", func(a *models.ShippingAddress) { a.Country = "" }, "country"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAddress()
			tt.mut(&a)
			errs := ValidateShippingAddress(a)
			if errs == nil {
				t.Fatal("expected validation errors, got none")
			}
			if _, ok := errs[tt.field]; !ok {
				t.Errorf("expected error on field %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if !ValidPaymentMethod("PayPal") || !ValidPaymentMethod("CashOnDelivery") {
		t.Error("known methods rejected")
	}
	if ValidPaymentMethod("Barter") || ValidPaymentMethod("") {
		t.Error("unknown method accepted")
	}
}
