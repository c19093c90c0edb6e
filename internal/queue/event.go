// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published after a paid registration commits.
// It carries enough for downstream consumers to log or reconcile against the
// gateway without querying the primary database.
type RegistrationConfirmedEvent struct {
	RegistrationID string `json:"registration_id"`
	UserID         string `json:"user_id"`
	EventName      string `json:"event_name"`
	Season         string `json:"season"`
	ArtworkCount   int    `json:"artwork_count"`
	PaymentID      string `json:"payment_id,omitempty"`
	OrderID        string `json:"order_id,omitempty"`
	Status         string `json:"status"`
	ConfirmedAt    string `json:"confirmed_at"`
}
