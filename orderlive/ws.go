package orderlive

import (
	"context"
	"log"
	"net/http"
	"time"

	"verda/db"
	"verda/middleware"
	"verda/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler subscribes the caller to one order's status stream.
// Only the order's owner or an admin may watch it.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		orderID := ps.ByName("id")

		token := r.Header.Get("Authorization")
		if token == "" {
			// browsers cannot set headers on WebSocket dials
			token = "Bearer " + r.URL.Query().Get("token")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		if order.UserID != claims.UserID && !claims.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Send:    make(chan []byte, 16),
			OrderID: orderID,
			UserID:  claims.UserID,
		}

		hub.register <- client
		go writePump(conn, client)
		go readPump(conn, client, hub)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the client going away; the stream is one-way.
func readPump(conn *websocket.Conn, c *Client, hub *Hub) {
	defer func() {
		// a stopped hub no longer drains unregister
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
