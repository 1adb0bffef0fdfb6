package model

import "time"

// User represents a registered account.
//
// PasswordHash is the full bcrypt output (salt embedded — no separate salt
// column needed). It is opaque to everything outside internal/auth and must
// never be rendered or serialized to a page.
//
// WHY Email string (not *string)?
// An empty string is a perfectly fine zero value for a missing email —
// simpler to work with and safe to display, no nil checks anywhere.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique, used to log in
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
