package domain

import "time"

// TokenPair is what the session flows return: the short-lived access JWT
// and the longer-lived refresh JWT.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken models the stored refresh token record. One record is one
// session lease; a subject may hold several concurrently (multi-device).
// Records are insert-only except for the revoked flag, which moves
// false -> true exactly once and never back.
type RefreshToken struct {
	JTI       string // rotation handle, fresh UUID per issuance
	UserID    string
	TokenHash string // SHA-256 fingerprint of the signed token string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
