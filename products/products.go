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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Brand        string  `json:"brand"`
	CategoryID   string  `json:"category"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CountInStock int     `json:"countInStock"`
	Image        string  `json:"image"`
}

func (in productInput) validate() map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Brand == "" {
		errs["brand"] = "Brand is required"
	}
	if in.Description == "" {
		errs["description"] = "Description is required"
	}
	if in.Price <= 0 {
		errs["price"] = "Price must be positive"
	}
	if in.CategoryID == "" {
		errs["category"] = "Category is required"
	}
	if in.CountInStock < 0 {
		errs["countInStock"] = "Stock cannot be negative"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateProduct adds a catalog entry. Admin only (gated in routes).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateProduct decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if errs := input.validate(); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	// the category must exist before a product can point at it
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": input.CategoryID}).Err()
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Could not look up category", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	product := models.Product{
		ProductID:    "p" + utils.GenerateID(12),
		Name:         input.Name,
		Description:  input.Description,
		Brand:        input.Brand,
		CategoryID:   input.CategoryID,
		Price:        input.Price,
		Quantity:     input.Quantity,
		CountInStock: input.CountInStock,
		Image:        input.Image,
		Reviews:      []models.Review{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct replaces the editable fields of an existing product.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("UpdateProduct decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if errs := input.validate(); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}

	update := bson.M{"$set": bson.M{
		"name":         input.Name,
		"description":  input.Description,
		"brand":        input.Brand,
		"category":     input.CategoryID,
		"price":        input.Price,
		"quantity":     input.Quantity,
		"countInStock": input.CountInStock,
		"image":        input.Image,
		"updatedAt":    time.Now(),
	}}

	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productid": ps.ByName("productid")}, update)
	if err != nil {
		log.Println("UpdateProduct UpdateOne error:", err)
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a catalog entry. Existing orders keep their copied
// snapshots, so history is unaffected.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetProduct returns one product with its embedded reviews.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetProduct error:", err)
		http.Error(w, "Could not retrieve product", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// GetProducts lists the catalog, paginated, with an optional keyword
// matched against the product name.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if q.Keyword != "" {
		filter["name"] = bson.M{"$regex": q.Keyword, "$options": "i"}
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := db.ProductCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	prods := []models.Product{}
	if err := cursor.All(ctx, &prods); err != nil {
		log.Println("GetProducts cursor error:", err)
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, prods)
}

// GetTopProducts returns the highest-rated products for the carousel.
func GetTopProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listWith(w, r, options.Find().SetSort(bson.M{"rating": -1}).SetLimit(4))
}

// GetNewProducts returns the most recently added products.
func GetNewProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listWith(w, r, options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(5))
}

func listWith(w http.ResponseWriter, r *http.Request, opts *options.FindOptions) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("product list error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	prods := []models.Product{}
	if err := cursor.All(ctx, &prods); err != nil {
		log.Println("product list cursor error:", err)
		http.Error(w, "Error reading products", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, prods)
}
