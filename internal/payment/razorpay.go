package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	razorpay "github.com/razorpay/razorpay-go"
)

// receiptMaxUserChars caps how much of the user id goes into the receipt
// string; Razorpay rejects receipts longer than 40 characters.
const receiptMaxUserChars = 10

// RazorpayGateway talks to the live Razorpay API.  The key ID is public and
// included in every Order so clients can open checkout; the secret signs
// nothing locally except signature verification.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpayGateway builds a gateway from the configured key pair.
func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

// CreateOrder registers an order with Razorpay.  The amount is converted to
// paise and the registration intent is echoed in the order notes.  Any
// upstream failure comes back wrapped in ErrGateway.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, in OrderInput) (Order, error) {
	body, err := g.client.Order.Create(orderPayload(in), nil)
	if err != nil {
		return Order{}, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return Order{}, fmt.Errorf("%w: order response missing id", ErrGateway)
	}
	return Order{
		OrderID:  id,
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"], "INR"),
		Key:      g.keyID,
	}, nil
}

// VerifySignature checks that the confirmation genuinely originated from
// Razorpay: the signature must equal HMAC-SHA256(order_id|payment_id)
// keyed with the secret.  The comparison is constant-time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) error {
	if !signatureValid(orderID, paymentID, signature, g.secret) {
		return ErrSignatureMismatch
	}
	return nil
}

// orderPayload builds the request body for order creation: the amount in
// paise, the capped receipt string, and the registration intent echoed in
// the notes for reconciliation.
func orderPayload(in OrderInput) map[string]interface{} {
	return map[string]interface{}{
		"amount":   in.Amount * 100, // paise
		"currency": "INR",
		"receipt":  receiptFor(in.UserID, in.Season),
		"notes": map[string]interface{}{
			"user_id":       in.UserID,
			"event_name":    in.EventName,
			"season":        in.Season,
			"artwork_count": strconv.Itoa(in.ArtworkCount),
		},
	}
}

// signatureValid implements the gateway's documented scheme.  Split out so
// tests can produce valid signatures with a known secret.
func signatureValid(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// receiptFor derives the order receipt from a truncated user id and the
// season, keeping the whole string under the gateway's 40-character limit.
func receiptFor(userID, season string) string {
	if len(userID) > receiptMaxUserChars {
		userID = userID[:receiptMaxUserChars]
	}
	return fmt.Sprintf("order_%s_%s", userID, season)
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func asString(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
