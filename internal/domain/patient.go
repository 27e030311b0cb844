package domain

import (
	"time"
)

// Patient is a clinical patient record, separate from the users table: a
// patient here may or may not have a login account.
type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
