package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. These provide sensible security defaults but
// can be overridden per-service via configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Token type tags carried in the "type" claim. Access and refresh tokens
// share a signing secret, so the tag is what keeps them non-interchangeable:
// the authn middleware rejects anything that is not an access token, and the
// refresh flow rejects anything that is not a refresh token.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims are the token claims used across the service. Keep changes additive
// to preserve compatibility with already-issued tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated subject.
	Email string `json:"email,omitempty"`

	// Role is the subject's platform role ("player", "scout", "admin").
	Role string `json:"role,omitempty"`

	// TokenType tags the credential as "access" or "refresh".
	TokenType string `json:"type,omitempty"`
}

// NewAccessClaims builds minimally-correct access token claims.
func NewAccessClaims(subject, email, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     email,
		Role:      role,
		TokenType: TypeAccess,
	}
}

// NewRefreshClaims builds refresh token claims. The jti is the rotation
// handle: it is generated fresh on every issuance and is the key the
// server-side registry revokes on rotation or logout.
func NewRefreshClaims(subject, email, role, jti, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     email,
		Role:      role,
		TokenType: TypeRefresh,
	}
}

// RequireType enforces the token type tag.
func (c *Claims) RequireType(want string) error {
	if c.TokenType != want {
		return ErrWrongType
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
