package mq

import (
	"net/url"
	"strings"
	"testing"
)

func TestWhatsAppURL(t *testing.T) {
	summary := "Order Summary:\nItems: LKR100.00"
	link := WhatsAppURL("+94765599810", summary)

	if !strings.HasPrefix(link, "https://wa.me/+94765599810?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != summary {
		t.Fatalf("text round-trip = %q, want %q", got, summary)
	}
}
