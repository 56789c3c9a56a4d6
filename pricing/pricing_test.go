package pricing

import (
	"testing"

	"verda/models"
)

func items(pairs ...float64) []models.CartItem {
	// pairs are (price, qty) couples
	var out []models.CartItem
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.CartItem{Price: pairs[i], Quantity: int(pairs[i+1])})
	}
	return out
}

func TestItemsPrice(t *testing.T) {
	tests := []struct {
		name  string
		items []models.CartItem
		want  float64
	}{
		{"empty", nil, 0},
		{"single", items(500, 2), 1000},
		{"mixed", items(500, 2, 250, 1), 1250},
		{"cents", items(49.99, 3), 149.97},
		{"float drift", items(0.1, 3), 0.30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemsPrice(tt.items); got != tt.want {
				t.Errorf("ItemsPrice = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotalIdentity(t *testing.T) {
	tot := Compute(items(49.99, 3, 2.49, 2), DefaultShipping, DefaultTax)
	if tot.TotalPrice != tot.ItemsPrice+tot.ShippingPrice+tot.TaxPrice {
		t.Errorf("total %v != items %v + shipping %v + tax %v",
			tot.TotalPrice, tot.ItemsPrice, tot.ShippingPrice, tot.TaxPrice)
	}
}

func TestDefaultShippingThreshold(t *testing.T) {
	if got := DefaultShipping(999.99); got != flatShippingFee {
		t.Errorf("below threshold: got %v, want %v", got, flatShippingFee)
	}
	if got := DefaultShipping(1000); got != 0 {
		t.Errorf("at threshold: got %v, want 0", got)
	}
}

func TestComputeCheckoutScenario(t *testing.T) {
	// cart = [{500 x 2}, {250 x 1}], flat shipping 50, zero tax
	flat := func(float64) float64 { return 50 }
	tot := Compute(items(500, 2, 250, 1), flat, nil)

	if tot.ItemsPrice != 1250 {
		t.Errorf("itemsPrice = %v, want 1250", tot.ItemsPrice)
	}
	if tot.TotalPrice != 1300 {
		t.Errorf("totalPrice = %v, want 1300", tot.TotalPrice)
	}
	if tot.TaxPrice != 0 {
		t.Errorf("taxPrice = %v, want 0", tot.TaxPrice)
	}
}

func TestComputeNilPoliciesUseDefaults(t *testing.T) {
	tot := Compute(items(100, 1), nil, nil)
	if tot.ShippingPrice != flatShippingFee {
		t.Errorf("shippingPrice = %v, want default flat fee", tot.ShippingPrice)
	}
	if tot.TaxPrice != 0 {
		t.Errorf("taxPrice = %v, want 0", tot.TaxPrice)
	}
}
