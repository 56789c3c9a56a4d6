package invoice

import (
	"strings"
	"testing"
	"time"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	now := time.Unix(1756700000, 0)
	payload := QRPayload("ord_abc123", "usr_xyz", now)

	orderID, userID, ts, err := VerifyQRPayload(payload)
	if err != nil {
		t.Fatalf("VerifyQRPayload: %v", err)
	}
	if orderID != "ord_abc123" || userID != "usr_xyz" {
		t.Fatalf("got %q %q", orderID, userID)
	}
	if !ts.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", ts, now)
	}
}

func TestQRPayloadTampered(t *testing.T) {
	payload := QRPayload("ord_abc123", "usr_xyz", time.Now())

	tampered := strings.Replace(payload, "usr_xyz", "usr_evil", 1)
	if _, _, _, err := VerifyQRPayload(tampered); err == nil {
		t.Fatal("tampered payload verified")
	}

	if _, _, _, err := VerifyQRPayload("not|a|payload"); err == nil {
		t.Fatal("short payload verified")
	}
}
