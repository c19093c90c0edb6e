// Package payment wraps the Razorpay gateway behind a small interface so
// the registration flow can be exercised against a fake in tests.
package payment

import (
	"context"
	"errors"
)

// ErrGateway wraps any upstream failure while creating an order: network,
// auth, or validation.  It surfaces as a server error and is not retried.
var ErrGateway = errors.New("payment gateway error")

// ErrSignatureMismatch is returned when a payment confirmation's signature
// does not match the HMAC computed from the order and payment identifiers.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// OrderInput describes the registration intent an order is created for.
// The fields are echoed into the gateway's notes for reconciliation.
type OrderInput struct {
	UserID       string
	EventName    string
	Season       string
	ArtworkCount int
	Amount       int64 // whole currency units; converted to paise internally
}

// Order is the gateway's view of an amount to be collected.  Key is the
// public key ID clients need to open the checkout widget.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // minor currency units (paise)
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// Gateway is the contract the registration service depends on.  Duplicate
// CreateOrder calls produce duplicate gateway orders; no idempotency key is
// enforced, matching the deployed behavior.
type Gateway interface {
	CreateOrder(ctx context.Context, in OrderInput) (Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}
