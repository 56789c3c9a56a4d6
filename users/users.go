package users

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
	"golang.org/x/crypto/bcrypt"
)

func toResponse(u models.User) models.UserResponse {
	return models.UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// GetProfile returns the requesting user's own record.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toResponse(user))
}

// UpdateProfile lets a user change their username, email, or password.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Username != "" {
		set["username"] = input.Username
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		set["password"] = string(hashed)
	}

	_, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		if isDuplicateKeyError(err) {
			http.Error(w, "Username or email already taken", http.StatusConflict)
			return
		}
		log.Println("UpdateProfile error:", err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListUsers returns every account for the admin back-office.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("ListUsers Find error:", err)
		http.Error(w, "Could not retrieve users", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Println("ListUsers cursor error:", err)
		http.Error(w, "Error reading users", http.StatusInternalServerError)
		return
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetUser returns one account (admin).
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("userid")}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetUser error:", err)
		http.Error(w, "Could not retrieve user", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toResponse(user))
}

// UpdateUser lets an admin edit an account, including promotion to admin.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Role     []string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.Username != "" {
		set["username"] = input.Username
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.Role != nil {
		set["role"] = input.Role
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": ps.ByName("userid")}, bson.M{"$set": set})
	if err != nil {
		if isDuplicateKeyError(err) {
			http.Error(w, "Username or email already taken", http.StatusConflict)
			return
		}
		log.Println("UpdateUser error:", err)
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteUser removes an account. Admin accounts cannot be deleted through
// this flow; demote first.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": ps.ByName("userid")}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("DeleteUser lookup error:", err)
		http.Error(w, "Could not retrieve user", http.StatusInternalServerError)
		return
	}

	if user.IsAdmin() {
		http.Error(w, "Cannot delete an admin account", http.StatusBadRequest)
		return
	}

	if _, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": user.UserID}); err != nil {
		log.Println("DeleteUser error:", err)
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

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
