package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"verda/db"
	"verda/models"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// FilterProducts applies the shop page's three filters:
//   - categories: multi-select, OR'd; empty slice means no category filter
//   - brand: exclusive single-select; empty string means no brand filter
//   - priceText: loose match — the price's string form contains the text,
//     or the price equals the text parsed as an integer. "1" matches 100
//     and 210 but not 15; "21" matches only 210.
func FilterProducts(prods []models.Product, categoryIDs []string, brand, priceText string) []models.Product {
	out := []models.Product{}
	for _, p := range prods {
		if len(categoryIDs) > 0 && !containsString(categoryIDs, p.CategoryID) {
			continue
		}
		if brand != "" && p.Brand != brand {
			continue
		}
		if priceText != "" && !priceMatches(p.Price, priceText) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func priceMatches(price float64, text string) bool {
	if strings.Contains(priceString(price), text) {
		return true
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	return price == float64(n)
}

// priceString renders the price the way the storefront displays it: whole
// prices without a decimal tail.
func priceString(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// GetFilteredProducts serves the shop page: category and brand selection
// narrow the Mongo query, the price text is applied loosely on top.
func GetFilteredProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Categories []string `json:"checked"`
		Brand      string   `json:"brand"`
		PriceText  string   `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("GetFilteredProducts decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("GetFilteredProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	prods := []models.Product{}
	if err := cursor.All(ctx, &prods); err != nil {
		log.Println("GetFilteredProducts cursor error:", err)
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK,
		FilterProducts(prods, payload.Categories, payload.Brand, payload.PriceText))
}
