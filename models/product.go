package models

import "time"

// Review is embedded in a Product, one per reviewer.
type Review struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ProductID    string    `json:"productid" bson:"productid"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Brand        string    `json:"brand" bson:"brand"`
	CategoryID   string    `json:"category" bson:"category"`
	Price        float64   `json:"price" bson:"price"`
	Quantity     int       `json:"quantity" bson:"quantity"` // intended restock figure
	CountInStock int       `json:"countInStock" bson:"countInStock"`
	Image        string    `json:"image" bson:"image"`
	Rating       float64   `json:"rating" bson:"rating"`
	NumReviews   int       `json:"numReviews" bson:"numReviews"`
	Reviews      []Review  `json:"reviews" bson:"reviews"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Category struct {
	CategoryID string    `json:"categoryid" bson:"categoryid"`
	Name       string    `json:"name" bson:"name"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
