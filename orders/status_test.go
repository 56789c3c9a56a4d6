package orders

import (
	"strings"
	"testing"
	"time"

	"verda/models"
)

func TestApplyPaymentSetsStateOnce(t *testing.T) {
	order := models.Order{OrderID: "o1"}
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	if !ApplyPayment(&order, models.PaymentResult{CaptureID: "cap1"}, first) {
		t.Fatal("first capture should apply")
	}
	if !order.IsPaid || order.PaidAt == nil || !order.PaidAt.Equal(first) {
		t.Fatalf("unexpected state after first capture: %+v", order)
	}

	// replayed capture keeps the first timestamp
	second := first.Add(5 * time.Minute)
	if ApplyPayment(&order, models.PaymentResult{CaptureID: "cap2"}, second) {
		t.Error("replayed capture should be a no-op")
	}
	if !order.PaidAt.Equal(first) {
		t.Errorf("paidAt overwritten: got %v, want %v", order.PaidAt, first)
	}
	if order.PaymentResult.CaptureID != "cap1" {
		t.Errorf("payment result overwritten: %+v", order.PaymentResult)
	}
}

func TestApplyDeliveryRequiresPayment(t *testing.T) {
	order := models.Order{OrderID: "o1"}
	if _, err := ApplyDelivery(&order, time.Now()); err != ErrNotPaid {
		t.Fatalf("expected ErrNotPaid, got %v", err)
	}
	if order.IsDelivered || order.DeliveredAt != nil {
		t.Error("delivery state mutated despite error")
	}
}

func TestApplyDeliveryLeavesPaymentAlone(t *testing.T) {
	paidAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	order := models.Order{OrderID: "o1", IsPaid: true, PaidAt: &paidAt}

	now := paidAt.Add(48 * time.Hour)
	changed, err := ApplyDelivery(&order, now)
	if err != nil || !changed {
		t.Fatalf("expected delivery to apply, got changed=%v err=%v", changed, err)
	}
	if !order.IsDelivered || order.DeliveredAt == nil || !order.DeliveredAt.Equal(now) {
		t.Fatalf("unexpected delivery state: %+v", order)
	}
	if !order.IsPaid || !order.PaidAt.Equal(paidAt) {
		t.Error("payment state disturbed by delivery")
	}

	// second delivery is a no-op
	changed, err = ApplyDelivery(&order, now.Add(time.Hour))
	if err != nil || changed {
		t.Errorf("repeat delivery: changed=%v err=%v, want no-op", changed, err)
	}
	if !order.DeliveredAt.Equal(now) {
		t.Error("deliveredAt overwritten by repeat call")
	}
}

func TestAllFourStatusCombinationsRepresentable(t *testing.T) {
	now := time.Now()
	unpaid := models.Order{}
	paid := models.Order{}
	ApplyPayment(&paid, models.PaymentResult{}, now)
	delivered := paid
	ApplyDelivery(&delivered, now)

	if unpaid.IsPaid || unpaid.IsDelivered {
		t.Error("fresh order should be Unpaid+NotDelivered")
	}
	if !paid.IsPaid || paid.IsDelivered {
		t.Error("paid order should be Paid+NotDelivered until delivery")
	}
	if !delivered.IsPaid || !delivered.IsDelivered {
		t.Error("delivered order should keep Paid")
	}
}

func TestBuildOrderSummary(t *testing.T) {
	order := models.Order{
		ItemsPrice:    1250,
		ShippingPrice: 50,
		TaxPrice:      0,
		TotalPrice:    1300,
		PaymentMethod: models.PaymentCashOnDelivery,
		ShippingAddress: models.ShippingAddress{
			Address:    "12 Lake Rd",
			City:       "Colombo",
			PostalCode: "10250",
			Country:    "Sri Lanka",
			Phone:      "0765599810",
		},
	}

	summary := BuildOrderSummary(order)

	for _, want := range []string{
		"Items: LKR1250.00",
		"Shipping: LKR50.00",
		"Total: LKR1300.00",
		"City: Colombo",
		"Payment Method: CashOnDelivery",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
