package model

import "time"

// Result mirrors the 'results' table: one scored placement per participant
// per event/season.
type Result struct {
	ResultID  string     `json:"result_id"`
	Name      string     `json:"name"`
	UserID    string     `json:"user_id"`
	Score     int        `json:"score"`
	Remarks   *string    `json:"remarks,omitempty"`
	Category  string     `json:"category"`
	Rank      int        `json:"rank"`
	EventName string     `json:"event_name"`
	Season    string     `json:"season"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
