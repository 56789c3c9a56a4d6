package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verda/db"
	"verda/models"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddReview appends a review to a product, one per user, and refreshes the
// denormalized rating and review count.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Username string  `json:"username"`
		Rating   float64 `json:"rating"`
		Comment  string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("AddReview decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Rating < 0 || input.Rating > 5 {
		http.Error(w, "Rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	productID := ps.ByName("productid")

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("AddReview lookup error:", err)
		http.Error(w, "Could not retrieve product", http.StatusInternalServerError)
		return
	}

	for _, rev := range product.Reviews {
		if rev.UserID == userID {
			http.Error(w, "Product already reviewed", http.StatusConflict)
			return
		}
	}

	review := models.Review{
		UserID:    userID,
		Username:  input.Username,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	product.Reviews = append(product.Reviews, review)
	product.NumReviews = len(product.Reviews)

	sum := 0.0
	for _, rev := range product.Reviews {
		sum += rev.Rating
	}
	product.Rating = sum / float64(len(product.Reviews))

	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{
			"reviews":    product.Reviews,
			"numReviews": product.NumReviews,
			"rating":     product.Rating,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		log.Println("AddReview update error:", err)
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, review)
}
