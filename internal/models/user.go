package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy of the user safe for API responses.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
