package orders

import (
	"context"
	"log"
	"net/http"
	"time"

	"verda/db"
	"verda/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// TotalSales sums totalPrice across all orders for the admin dashboard.
func (s *OrderService) TotalSales(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":        nil,
			"totalSales": bson.M{"$sum": "$totalPrice"},
		}},
	}
	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("TotalSales aggregate error:", err)
		http.Error(w, "Could not compute total sales", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalSales float64 `bson:"totalSales"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		log.Println("TotalSales cursor error:", err)
		http.Error(w, "Could not compute total sales", http.StatusInternalServerError)
		return
	}

	total := 0.0
	if len(results) > 0 {
		total = results[0].TotalSales
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"totalSales": total})
}

// TotalOrders counts all orders.
func (s *OrderService) TotalOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("TotalOrders count error:", err)
		http.Error(w, "Could not count orders", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"totalOrders": count})
}

// SalesByDate groups paid orders by the day they were paid.
func (s *OrderService) SalesByDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"isPaid": true}},
		{"$group": bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$paidAt"},
			},
			"totalSales": bson.M{"$sum": "$totalPrice"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("SalesByDate aggregate error:", err)
		http.Error(w, "Could not compute sales", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var results []struct {
		Date       string  `bson:"_id" json:"date"`
		TotalSales float64 `bson:"totalSales" json:"totalSales"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		log.Println("SalesByDate cursor error:", err)
		http.Error(w, "Could not compute sales", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}
