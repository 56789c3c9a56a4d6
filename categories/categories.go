package categories

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

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return false
}

// CreateCategory adds a uniquely named category. Duplicates surface as 409
// via the unique index, keeping the caller's form state retryable.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateCategory decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	category := models.Category{
		CategoryID: "c" + utils.GenerateID(12),
		Name:       input.Name,
		CreatedAt:  time.Now(),
	}

	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		if isDuplicateKeyError(err) {
			http.Error(w, "Category already exists", http.StatusConflict)
			return
		}
		log.Println("CreateCategory InsertOne error:", err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory renames a category.
func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	res, err := db.CategoryCollection.UpdateOne(ctx,
		bson.M{"categoryid": ps.ByName("categoryid")},
		bson.M{"$set": bson.M{"name": input.Name}},
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			http.Error(w, "Category already exists", http.StatusConflict)
			return
		}
		log.Println("UpdateCategory error:", err)
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteCategory removes a category. Products pointing at it keep their
// reference; the storefront simply stops offering the filter.
func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.CategoryCollection.DeleteOne(ctx, bson.M{"categoryid": ps.ByName("categoryid")})
	if err != nil {
		log.Println("DeleteCategory error:", err)
		http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCategories returns every category.
func ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("ListCategories Find error:", err)
		http.Error(w, "Could not retrieve categories", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	cats := []models.Category{}
	if err := cursor.All(ctx, &cats); err != nil {
		log.Println("ListCategories cursor error:", err)
		http.Error(w, "Error reading categories", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cats)
}

// GetCategory returns one category.
func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryid": ps.ByName("categoryid")}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetCategory error:", err)
		http.Error(w, "Could not retrieve category", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, category)
}
