package checkout

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verda/models"
	"verda/rdx"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const sessionTTL = 2 * time.Hour

func sessionKey(userID string) string {
	return "checkout:" + userID
}

// SaveSession captures the validated shipping address and payment method in
// Redis for the order-creation step. Nothing is persisted to Mongo yet.
func SaveSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var session models.CheckoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Println("SaveSession decode error:", err)
		http.Error(w, "Invalid session data", http.StatusBadRequest)
		return
	}

	if errs := ValidateShippingAddress(session.ShippingAddress); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}
	if !ValidPaymentMethod(session.PaymentMethod) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported payment method")
		return
	}

	session.UserID = userID
	session.CreatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		http.Error(w, "Failed to store session", http.StatusInternalServerError)
		return
	}
	if err := rdx.SetWithExpiry(sessionKey(userID), string(data), sessionTTL); err != nil {
		log.Println("SaveSession redis error:", err)
		http.Error(w, "Failed to store session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, session)
}

// ClearSession drops the captured checkout state once an order consumes it.
func ClearSession(userID string) error {
	return rdx.RdxDel(sessionKey(userID))
}

// GetSession returns the captured shipping/payment selection, 404 when the
// shipping step was skipped or the capture expired.
func GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	raw, err := rdx.RdxGet(sessionKey(userID))
	if err == redis.Nil {
		http.Error(w, "No checkout session", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("GetSession redis error:", err)
		http.Error(w, "Failed to load session", http.StatusInternalServerError)
		return
	}

	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		http.Error(w, "Corrupt session data", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, session)
}
