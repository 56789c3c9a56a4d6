package invoice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func hmacSecret() []byte {
	if s := os.Getenv("INVOICE_QR_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("verda_invoice_secret")
}

func sign(data string) string {
	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// QRPayload returns a signed payload string: orderID|userID|timestamp|signature.
// Scanning it lets warehouse staff verify an invoice came from us.
func QRPayload(orderID, userID string, now time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, userID, now.Unix())
	return fmt.Sprintf("%s|%s", data, sign(data))
}

var ErrBadPayload = errors.New("invalid invoice payload")

// VerifyQRPayload checks the signature and returns the order and user IDs.
func VerifyQRPayload(payload string) (orderID, userID string, ts time.Time, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", time.Time{}, ErrBadPayload
	}
	data := strings.Join(parts[:3], "|")
	if !hmac.Equal([]byte(sign(data)), []byte(parts[3])) {
		return "", "", time.Time{}, ErrBadPayload
	}
	unix, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", time.Time{}, ErrBadPayload
	}
	return parts[0], parts[1], time.Unix(unix, 0), nil
}
