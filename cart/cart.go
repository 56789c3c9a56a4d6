package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verda/db"
	"verda/models"
	"verda/pricing"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartResponse struct {
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// GetCart returns the user's cart with derived totals. Totals are
// recomputed from the current items on every call, never cached.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := loadItems(ctx, userID)
	if err != nil {
		log.Println("GetCart load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cartResponse{
		Items:  items,
		Totals: pricing.Compute(items, nil, nil),
	})
}

// SetCartItem adds a product to the cart or replaces the quantity of an
// existing line. The product snapshot (name, image, price, stock) is taken
// from the catalog now, not at order time.
func SetCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ProductID string `json:"productid"`
		Quantity  int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("SetCartItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" || payload.Quantity < 1 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": payload.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("SetCartItem product lookup error:", err)
		http.Error(w, "Could not look up product", http.StatusInternalServerError)
		return
	}

	if product.CountInStock < 1 {
		http.Error(w, "Product is out of stock", http.StatusBadRequest)
		return
	}

	items, err := loadItems(ctx, userID)
	if err != nil {
		log.Println("SetCartItem load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	items = SetItem(items, models.CartItem{
		ProductID:    product.ProductID,
		Name:         product.Name,
		Image:        product.Image,
		Brand:        product.Brand,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Quantity:     payload.Quantity,
	})

	if err := saveItems(ctx, userID, items); err != nil {
		log.Println("SetCartItem save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cartResponse{
		Items:  items,
		Totals: pricing.Compute(items, nil, nil),
	})
}

// RemoveCartItem deletes one line; removing an absent product is a no-op.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := loadItems(ctx, userID)
	if err != nil {
		log.Println("RemoveCartItem load error:", err)
		http.Error(w, "Could not retrieve cart", http.StatusInternalServerError)
		return
	}

	items = RemoveItem(items, ps.ByName("productid"))

	if err := saveItems(ctx, userID, items); err != nil {
		log.Println("RemoveCartItem save error:", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cartResponse{
		Items:  items,
		Totals: pricing.Compute(items, nil, nil),
	})
}

// ClearCart empties the cart. Order creation calls Clear directly after a
// successful insert.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := Clear(ctx, userID); err != nil {
		log.Println("ClearCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Clear removes the user's cart document.
func Clear(ctx context.Context, userID string) error {
	_, err := db.CartCollection.DeleteOne(ctx, bson.M{"userid": userID})
	return err
}

func loadItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return c.Items, nil
}

func saveItems(ctx context.Context, userID string, items []models.CartItem) error {
	update := bson.M{"$set": bson.M{
		"items":     items,
		"updatedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	_, err := db.CartCollection.UpdateOne(ctx, bson.M{"userid": userID}, update, opts)
	return err
}
