package models

import "time"

// CartItem is a product snapshot plus a quantity. The snapshot fields are
// captured at add time and are what gets copied into an order.
type CartItem struct {
	ProductID    string  `json:"productid" bson:"productid"`
	Name         string  `json:"name" bson:"name"`
	Image        string  `json:"image" bson:"image"`
	Brand        string  `json:"brand" bson:"brand"`
	Price        float64 `json:"price" bson:"price"`
	CountInStock int     `json:"countInStock" bson:"countInStock"`
	Quantity     int     `json:"qty" bson:"qty"`
}

// Cart is one document per user.
type Cart struct {
	UserID    string     `json:"userid" bson:"userid"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CheckoutSession holds the captured shipping address and payment method
// between the shipping step and order creation. Lives in Redis, not Mongo.
type CheckoutSession struct {
	UserID          string          `json:"userid"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
}
