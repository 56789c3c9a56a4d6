package orders

import (
	"errors"
	"time"

	"verda/models"
)

// ErrNotPaid gates delivery: an order must be paid before it can be marked
// delivered. The UI implied this; here the service enforces it.
var ErrNotPaid = errors.New("order is not paid")

// ApplyPayment marks the order paid. A repeat capture for an already-paid
// order is a no-op that keeps the first paidAt; the report says whether this
// call changed anything.
func ApplyPayment(o *models.Order, result models.PaymentResult, now time.Time) bool {
	if o.IsPaid {
		return false
	}
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	return true
}

// ApplyDelivery marks a paid order delivered. Payment state is untouched.
// There is no reverse transition.
func ApplyDelivery(o *models.Order, now time.Time) (bool, error) {
	if !o.IsPaid {
		return false, ErrNotPaid
	}
	if o.IsDelivered {
		return false, nil
	}
	o.IsDelivered = true
	o.DeliveredAt = &now
	return true, nil
}
