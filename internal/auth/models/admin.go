// Package models holds office staff accounts and their sessions.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an office staff account. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a logged-in admin session. Tokens reference it by ID so logout
// invalidates outstanding tokens immediately.
type Session struct {
	ID        uuid.UUID `json:"id"`
	AdminID   uuid.UUID `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
