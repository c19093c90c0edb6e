package model

import "time"

// User mirrors the 'users' table.  Users are never hard-deleted: aborting an
// account flips Status to false so registrations keep a valid foreign key.
type User struct {
	UserID             string     `json:"user_id"`
	Email              string     `json:"email"`
	FullName           string     `json:"full_name"`
	PasswordHash       string     `json:"-"`
	PhoneNumber        string     `json:"phone_number"`
	Age                *string    `json:"age,omitempty"`
	Address            *string    `json:"address,omitempty"`
	City               *string    `json:"city,omitempty"`
	State              *string    `json:"state,omitempty"`
	PreviousExperience *string    `json:"previous_experience,omitempty"`
	Role               string     `json:"role"`
	Status             bool       `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}
