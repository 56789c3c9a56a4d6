package orders

import (
	"fmt"

	"verda/models"
)

// BuildOrderSummary renders the cash-on-delivery message relayed to the
// store's WhatsApp number.
func BuildOrderSummary(o models.Order) string {
	a := o.ShippingAddress
	return fmt.Sprintf(
		"Order Summary:\nItems: LKR%.2f\nShipping: LKR%.2f\nTax: LKR%.2f\nTotal: LKR%.2f\n\n"+
			"Delivering To:\nAddress: %s\nCity: %s\nPostal Code: %s\nCountry: %s\nPhone: %s\n\n"+
			"Payment Method: %s",
		o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.TotalPrice,
		a.Address, a.City, a.PostalCode, a.Country, a.Phone,
		o.PaymentMethod,
	)
}
