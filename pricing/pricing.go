package pricing

import (
	"verda/models"

	"github.com/shopspring/decimal"
)

// ShippingPolicy and TaxPolicy derive their figure from the items subtotal.
type ShippingPolicy func(itemsPrice float64) float64
type TaxPolicy func(itemsPrice float64) float64

const (
	freeShippingThreshold = 1000.0
	flatShippingFee       = 50.0
)

// DefaultShipping is free at or above the threshold, a flat fee below it.
func DefaultShipping(itemsPrice float64) float64 {
	if itemsPrice >= freeShippingThreshold {
		return 0
	}
	return flatShippingFee
}

// DefaultTax charges no tax.
func DefaultTax(itemsPrice float64) float64 {
	return 0
}

// Totals holds the four checkout figures, each rounded to 2 decimal places.
type Totals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// ItemsPrice computes Σ(price × qty) over line items. Decimal arithmetic
// keeps repeated cent values from drifting the way float64 summation does.
func ItemsPrice(items []models.CartItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// Compute derives all four figures from the items and the given policies.
func Compute(items []models.CartItem, ship ShippingPolicy, tax TaxPolicy) Totals {
	if ship == nil {
		ship = DefaultShipping
	}
	if tax == nil {
		tax = DefaultTax
	}

	itemsPrice := ItemsPrice(items)
	shipping := round2(ship(itemsPrice))
	taxPrice := round2(tax(itemsPrice))

	total := decimal.NewFromFloat(itemsPrice).
		Add(decimal.NewFromFloat(shipping)).
		Add(decimal.NewFromFloat(taxPrice))
	totalPrice, _ := total.Round(2).Float64()

	return Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      taxPrice,
		TotalPrice:    totalPrice,
	}
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
