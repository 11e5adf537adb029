package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/pkg/cryptox"
	"github.com/pitchside/pitchside/pkg/jwtx"
)

// TokenService mints the access/refresh token pairs. Signing is pure
// computation against the process-wide secret; persistence of the refresh
// lease is the caller's job so it can happen inside the right transaction.
type TokenService struct {
	Signer     jwtx.Signer
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(u domain.User, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(u.ID, u.Email, u.Role.String(), s.Issuer, s.AccessTTL, now)
	return s.Signer.Sign(claims)
}

// IssuePair signs a new access+refresh pair and returns the refresh lease
// record to persist. The jti is a fresh random UUID on every issuance -
// it is the rotation handle the registry revokes later.
func (s *TokenService) IssuePair(u domain.User, now time.Time) (domain.TokenPair, domain.RefreshToken, error) {
	access, err := s.IssueAccessToken(u, now)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	jti := uuid.NewString()
	refreshClaims := jwtx.NewRefreshClaims(u.ID, u.Email, u.Role.String(), jti, s.Issuer, s.RefreshTTL, now)
	refresh, err := s.Signer.Sign(refreshClaims)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	record := domain.RefreshToken{
		JTI:       jti,
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(s.RefreshTTL),
	}

	pair := domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}

	return pair, record, nil
}
