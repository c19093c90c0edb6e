package model

import "time"

// Registration status values.  A registration created directly starts as
// pending; one created through the payment-verified flow is written with
// success straight away.  The two paths are intentionally distinct.
const (
	RegistrationPending = "pending"
	RegistrationSuccess = "success"
	RegistrationFailed  = "failed"
)

// EventRegistration mirrors the 'event_registrations' table.  A row records
// a user's entry into one event/season combination together with the number
// of artworks they intend to submit.
type EventRegistration struct {
	EventRegistrationID string     `json:"event_registration_id"`
	UserID              string     `json:"user_id"`
	EventName           string     `json:"event_name"`
	Season              string     `json:"season"`
	ArtworkCount        int        `json:"artwork_count"`
	RegistrationStatus  string     `json:"registration_status"`
	CreatedDt           time.Time  `json:"created_dt"`
	UpdatedDt           *time.Time `json:"updated_dt,omitempty"`
}
