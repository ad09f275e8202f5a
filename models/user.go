package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID).
	UserID string `json:"id"`

	// Email is the unique identifier used during authentication.
	// Stored normalized to lower case.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Name is the optional display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name *string `json:"name"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
