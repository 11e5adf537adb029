package domain

import "time"

// ResetToken models a persisted single-use password reset token. The used
// flag is monotonic false -> true; a used or expired token must never
// authorize a password change.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string // SHA-256 fingerprint of the opaque token
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
