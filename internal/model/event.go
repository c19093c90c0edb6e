package model

import "time"

// Event mirrors the 'events' table.  Dates are stored as DATE columns and
// exchanged as "2006-01-02" strings at the API boundary.
type Event struct {
	EventID   string     `json:"event_id"`
	EventName string     `json:"event_name"`
	Season    string     `json:"season"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
