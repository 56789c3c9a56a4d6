package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"verda/globals"
	"verda/models"
)

func createRequest(t *testing.T, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), globals.UserIDKey, "u123")
	return r.WithContext(ctx)
}

func validShipping() models.ShippingAddress {
	return models.ShippingAddress{
		Address:    "12 Galle Road",
		City:       "Colombo",
		PostalCode: "10350",
		Country:    "Sri Lanka",
		Phone:      "0765599810",
	}
}

// Submitting with no items must be rejected up front, before anything is
// persisted.
func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := NewOrderService(nil)

	w := httptest.NewRecorder()
	r := createRequest(t, map[string]interface{}{
		"orderItems":      []models.CartItem{},
		"shippingAddress": validShipping(),
		"paymentMethod":   models.PaymentCashOnDelivery,
	})

	svc.Create(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateRejectsUnknownPaymentMethod(t *testing.T) {
	svc := NewOrderService(nil)

	w := httptest.NewRecorder()
	r := createRequest(t, map[string]interface{}{
		"orderItems": []models.CartItem{
			{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 1},
		},
		"shippingAddress": validShipping(),
		"paymentMethod":   "Barter",
	})

	svc.Create(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateRejectsBadShippingAddress(t *testing.T) {
	svc := NewOrderService(nil)

	addr := validShipping()
	addr.Phone = "abc123"

	w := httptest.NewRecorder()
	r := createRequest(t, map[string]interface{}{
		"orderItems": []models.CartItem{
			{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 1},
		},
		"shippingAddress": addr,
		"paymentMethod":   models.PaymentCashOnDelivery,
	})

	svc.Create(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Errors["phone"] == "" {
		t.Fatalf("expected a phone field error, got %v", resp.Errors)
	}
}
