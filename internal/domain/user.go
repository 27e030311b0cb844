package domain

import (
	"time"
)

// User represents a registered account in the system. Every staff member and
// patient who can sign in has a row here; PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthResult bundles a user with a freshly issued access token. Register,
// login and profile updates all return this shape.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
