package mq

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"os"

	"verda/models"
	"verda/rdx"
)

const orderChannel = "order-events"

// OrderEvent is published on the order-events channel for every lifecycle
// transition: order-placed, order-paid, order-delivered.
type OrderEvent struct {
	Event         string `json:"event"`
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	PaymentMethod string `json:"payment_method"`
	Summary       string `json:"summary,omitempty"`
}

// Emit publishes fire-and-forget. A dead Redis must never fail the calling
// request; errors are logged and dropped.
func Emit(ctx context.Context, event string, content OrderEvent) {
	content.Event = event

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event: %v", event, err)
		return
	}
}

// StartOrderWorker relays cash-on-delivery summaries to the store's
// WhatsApp bridge. The bridge is an external collaborator; this side only
// produces the wa.me link.
func StartOrderWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderChannel)
	ch := sub.Channel()

	storeNumber := os.Getenv("STORE_WHATSAPP")
	if storeNumber == "" {
		storeNumber = "+94765599810"
	}

	log.Println("[OrderWorker] Listening for order events...")

	for msg := range ch {
		var event OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderWorker] Failed to parse event: %v", err)
			continue
		}

		if event.Event == "order-placed" && event.PaymentMethod == models.PaymentCashOnDelivery {
			link := WhatsAppURL(storeNumber, event.Summary)
			log.Printf("[OrderWorker] COD order %s summary ready: %s", event.OrderID, link)
		}
	}
}

// WhatsAppURL builds the wa.me link carrying the summary text.
func WhatsAppURL(storeNumber, summary string) string {
	return "https://wa.me/" + storeNumber + "?text=" + url.QueryEscape(summary)
}
