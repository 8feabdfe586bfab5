package entities

import "time"

// Notification is an in-app message for a user. The booking flow appends one
// per successful booking; this core never mutates or re-reads them.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	UserID    string    `json:"user_id" db:"user_id"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
