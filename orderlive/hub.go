package orderlive

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Client is one WebSocket subscriber watching a single order.
type Client struct {
	Send    chan []byte
	OrderID string
	UserID  string
}

type broadcastMsg struct {
	OrderID string
	Data    []byte
}

// Hub fans order-status transitions out to subscribers, one room per order.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.OrderID] == nil {
				h.rooms[c.OrderID] = make(map[*Client]bool)
			}
			h.rooms[c.OrderID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.OrderID]; conns != nil {
				// the broadcast branch may have evicted this client
				// already; closing Send twice would panic
				if _, ok := conns[c]; ok {
					delete(conns, c)
					close(c.Send)
				}
				if len(conns) == 0 {
					delete(h.rooms, c.OrderID)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			if conns := h.rooms[m.OrderID]; conns != nil {
				for c := range conns {
					select {
					case c.Send <- m.Data:
					default:
						// slow consumer, drop it
						close(c.Send)
						delete(conns, c)
					}
				}
				if len(conns) == 0 {
					delete(h.rooms, m.OrderID)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// StatusUpdate is what subscribers receive when an order transitions.
type StatusUpdate struct {
	OrderID     string `json:"orderid"`
	Event       string `json:"event"` // "paid" or "delivered"
	IsPaid      bool   `json:"isPaid"`
	IsDelivered bool   `json:"isDelivered"`
	Timestamp   int64  `json:"timestamp"`
}

// NotifyStatus broadcasts a transition to everyone watching the order.
func (h *Hub) NotifyStatus(orderID, event string, isPaid, isDelivered bool) {
	update := StatusUpdate{
		OrderID:     orderID,
		Event:       event,
		IsPaid:      isPaid,
		IsDelivered: isDelivered,
		Timestamp:   time.Now().Unix(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("orderlive marshal:", err)
		return
	}
	h.broadcast <- broadcastMsg{OrderID: orderID, Data: data}
}
