package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"verda/cart"
	"verda/checkout"
	"verda/db"
	"verda/models"
	"verda/mq"
	"verda/orderlive"
	"verda/pricing"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService handles the order lifecycle. The hub receives paid/delivered
// transitions for live subscribers.
type OrderService struct {
	hub *orderlive.Hub
}

func NewOrderService(hub *orderlive.Hub) *OrderService {
	return &OrderService{hub: hub}
}

type createOrderInput struct {
	Items           []models.CartItem      `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// Create persists a new order from the finalized cart. The item list and
// shipping address are copied by value into the order document; prices are
// recomputed server-side rather than trusted from the client. On any
// persistence failure the user's cart is left untouched so the submission
// can be retried.
func (s *OrderService) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("CreateOrder decode error:", err)
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}

	if len(input.Items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}
	if errs := checkout.ValidateShippingAddress(input.ShippingAddress); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return
	}
	if !checkout.ValidPaymentMethod(input.PaymentMethod) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported payment method")
		return
	}

	totals := pricing.Compute(input.Items, nil, nil)

	order := models.Order{
		OrderID:         "o" + utils.GenerateID(12),
		UserID:          userID,
		Items:           append([]models.CartItem(nil), input.Items...),
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		TaxPrice:        totals.TaxPrice,
		TotalPrice:      totals.TotalPrice,
		IsPaid:          false,
		IsDelivered:     false,
		CreatedAt:       time.Now(),
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder InsertOne error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	// Cart and checkout-session cleanup and event emission must not fail
	// the created order.
	if err := cart.Clear(ctx, userID); err != nil {
		log.Println("CreateOrder cart cleanup error:", err)
	}
	if err := checkout.ClearSession(userID); err != nil {
		log.Println("CreateOrder session cleanup error:", err)
	}

	event := mq.OrderEvent{
		OrderID:       order.OrderID,
		UserID:        userID,
		PaymentMethod: order.PaymentMethod,
	}
	if order.PaymentMethod == models.PaymentCashOnDelivery {
		event.Summary = BuildOrderSummary(order)
	}
	mq.Emit(ctx, "order-placed", event)

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// Get returns one order, visible to its owner and to admins.
func (s *OrderService) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := s.fetchAuthorized(ctx, w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// Mine lists the requesting user's orders, newest first.
func (s *OrderService) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		log.Println("MyOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("MyOrders cursor error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// List returns every order for the admin back-office.
func (s *OrderService) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("ListOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("ListOrders cursor error:", err)
		http.Error(w, "Error reading orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// Pay records a successful payment capture. The update is filtered on
// isPaid=false, so a replayed capture matches nothing and the stored order
// with the original paidAt is returned instead of being overwritten.
func (s *OrderService) Pay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	order, ok := s.fetchAuthorized(ctx, w, r, orderID)
	if !ok {
		return
	}

	var result models.PaymentResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		log.Println("PayOrder decode error:", err)
		http.Error(w, "Invalid capture payload", http.StatusBadRequest)
		return
	}

	now := time.Now()
	if !ApplyPayment(&order, result, now) {
		// already paid, safe no-op
		utils.RespondWithJSON(w, http.StatusOK, order)
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "isPaid": false},
		bson.M{"$set": bson.M{
			"isPaid":        true,
			"paidAt":        now,
			"paymentResult": result,
		}},
	)
	if err != nil {
		log.Println("PayOrder UpdateOne error:", err)
		http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		// a concurrent capture won; return what it wrote
		if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, order)
		return
	}

	s.hub.NotifyStatus(orderID, "paid", true, order.IsDelivered)
	mq.Emit(ctx, "order-paid", mq.OrderEvent{
		OrderID:       orderID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// Deliver marks a paid order delivered. Admin only (gated in routes).
// Unpaid orders are refused: payment-before-delivery is enforced here, not
// just in the UI.
func (s *OrderService) Deliver(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Println("DeliverOrder lookup error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	changed, err := ApplyDelivery(&order, now)
	if err == ErrNotPaid {
		http.Error(w, "Order must be paid before delivery", http.StatusConflict)
		return
	}
	if !changed {
		// already delivered, safe no-op
		utils.RespondWithJSON(w, http.StatusOK, order)
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "isPaid": true, "isDelivered": false},
		bson.M{"$set": bson.M{
			"isDelivered": true,
			"deliveredAt": now,
		}},
	)
	if err != nil {
		log.Println("DeliverOrder UpdateOne error:", err)
		http.Error(w, "Failed to record delivery", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		// raced with another admin; re-read the settled state
		if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, order)
		return
	}

	s.hub.NotifyStatus(orderID, "delivered", order.IsPaid, true)
	mq.Emit(ctx, "order-delivered", mq.OrderEvent{
		OrderID:       orderID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// fetchAuthorized loads the order and enforces owner-or-admin visibility,
// writing the error response itself when the check fails.
func (s *OrderService) fetchAuthorized(ctx context.Context, w http.ResponseWriter, r *http.Request, orderID string) (models.Order, bool) {
	var order models.Order

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return order, false
	}

	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return order, false
	} else if err != nil {
		log.Println("Order lookup error:", err)
		http.Error(w, "Could not retrieve order", http.StatusInternalServerError)
		return order, false
	}

	if order.UserID != userID && !utils.IsAdminRequest(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return order, false
	}
	return order, true
}
