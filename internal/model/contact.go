package model

import "time"

// ContactMessage mirrors the 'contact_us' table.  Messages arrive from the
// public contact form and are read by admins; the id is auto-incremented.
type ContactMessage struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Subject     string     `json:"subject"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
