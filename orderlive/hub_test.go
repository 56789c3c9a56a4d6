package orderlive

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		OrderID: "ord1",
	}

	hub.register <- client

	hub.NotifyStatus("ord1", "paid", true, false)

	select {
	case got := <-client.Send:
		var update StatusUpdate
		if err := json.Unmarshal(got, &update); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if update.Event != "paid" || !update.IsPaid || update.IsDelivered {
			t.Fatalf("unexpected update: %+v", update)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

// A slow consumer evicted during broadcast must not panic the hub when its
// read loop later unregisters the same client.
func TestHubSlowClientEvictionThenUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte, 1), OrderID: "ord1"}
	hub.register <- slow

	// first fills the buffer, second trips the eviction close
	hub.NotifyStatus("ord1", "paid", true, false)
	hub.NotifyStatus("ord1", "paid", true, false)

	hub.unregister <- slow

	// hub must still be serving; a fresh client proves the goroutine survived
	fresh := &Client{Send: make(chan []byte, 10), OrderID: "ord1"}
	hub.register <- fresh
	hub.NotifyStatus("ord1", "delivered", true, true)

	select {
	case <-fresh.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("hub stopped delivering after slow-client eviction")
	}
}

func TestHubIsolatesRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	watching := &Client{Send: make(chan []byte, 10), OrderID: "ordA"}
	other := &Client{Send: make(chan []byte, 10), OrderID: "ordB"}
	hub.register <- watching
	hub.register <- other

	hub.NotifyStatus("ordA", "delivered", true, true)

	select {
	case <-watching.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message in ordA room")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("ordB subscriber got ordA update: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
