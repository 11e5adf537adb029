package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives you back the claims if it's legit.
// Verification is pure computation: signature plus time claims, never a
// registry lookup. Callers that need server-side state (refresh rotation)
// must cross-check the jti themselves.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrWrongType   = errors.New("jwtx: wrong token type")
)

// HS256Verifier verifies HS256 tokens against the shared signing secret.
type HS256Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewVerifierHS256 creates a verifier bound to the shared secret and
// expected issuer. An empty issuer means "don't enforce".
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	return &HS256Verifier{
		secret: secret,
		issuer: issuer,
		leeway: 30 * time.Second, // time sync is never perfect
	}, nil
}

// Verify checks signature and time claims and returns the decoded claims.
// Errors are typed so callers can distinguish "expired" from "forged".
func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	claims, err := v.parse(raw)
	if err != nil {
		return Claims{}, err
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}

// VerifyIgnoringExpiry decodes and checks the signature but tolerates an
// expired token. Logout uses this so stale sessions can still be torn down.
func (v *HS256Verifier) VerifyIgnoringExpiry(raw string) (Claims, error) {
	claims, err := v.parse(raw)
	if err != nil && !errors.Is(err, ErrExpired) {
		return Claims{}, err
	}

	// Same issuer policy as Verify; expiry is the only check relaxed.
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Claims{}, ErrIssuer
	}

	return claims, nil
}

func (v *HS256Verifier) parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, v.keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return claims, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}

func (v *HS256Verifier) keyFunc(*jwt.Token) (any, error) {
	return v.secret, nil
}
