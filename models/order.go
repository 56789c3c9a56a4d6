package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentPayPal         = "PayPal"
	PaymentCashOnDelivery = "CashOnDelivery"
)

type ShippingAddress struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phone" bson:"phone"`
}

// PaymentResult is what the payment processor's capture callback reports.
type PaymentResult struct {
	CaptureID    string `json:"id" bson:"id"`
	Status       string `json:"status" bson:"status"`
	UpdateTime   string `json:"update_time" bson:"update_time"`
	EmailAddress string `json:"email_address" bson:"email_address"`
}

// Order is the immutable record written at checkout submission. Items and
// shipping address are copied by value; later product or profile edits must
// not reach back into a placed order.
type Order struct {
	OrderID         string          `json:"orderid" bson:"orderid"`
	UserID          string          `json:"userid" bson:"userid"`
	Items           []CartItem      `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice" bson:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}

// IdempotencyRecord backs the Idempotency-Key middleware.
type IdempotencyRecord struct {
	Key         string                 `bson:"key" json:"key"`
	Method      string                 `bson:"method" json:"method"`
	Path        string                 `bson:"path" json:"path"`
	UserID      string                 `bson:"user_id" json:"user_id"`
	RequestHash string                 `bson:"request_hash" json:"request_hash"`
	Response    map[string]interface{} `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
	ExpiresAt   time.Time              `bson:"expires_at" json:"expires_at"`
}
