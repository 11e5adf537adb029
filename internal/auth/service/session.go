package service

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/store"
	"github.com/pitchside/pitchside/pkg/cryptox"
	"github.com/pitchside/pitchside/pkg/idx"
	"github.com/pitchside/pitchside/pkg/jwtx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

func newUserID() string { return idx.New().String() }

var (
	// ErrEmailTaken means the email already has an account.
	ErrEmailTaken = errors.New("email_taken")

	// ErrInvalidCredentials covers every login precondition failure,
	// including "no such user", so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh collapses every refresh precondition failure into
	// one value; the internal reason is logged, never returned.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrInvalidReset means the reset token is unknown, used or expired.
	ErrInvalidReset = errors.New("invalid_reset_token")

	// ErrStoreUnavailable means the backing store failed for reasons
	// unrelated to the credentials themselves.
	ErrStoreUnavailable = errors.New("store_unavailable")
)

// SessionService sequences the credential verifier, token issuer and
// refresh token registry for register, login, refresh and logout.
type SessionService struct {
	Store    store.Store
	Tokens   *TokenService
	Verifier *jwtx.HS256Verifier
}

// RegisterParams is the validated input for Register; the role has already
// been parsed at the transport boundary.
type RegisterParams struct {
	Email     string
	Password  string
	Role      domain.Role
	FirstName string
	LastName  string
	Country   string
	City      string
}

// Register creates a new subject and opens its first session.
func (s *SessionService) Register(ctx context.Context, p RegisterParams) (domain.User, domain.TokenPair, error) {
	now := time.Now().UTC()

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	u := domain.User{
		ID:           newUserID(),
		Email:        p.Email,
		PasswordHash: hash,
		Role:         p.Role,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Country:      p.Country,
		City:         p.City,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	pair, lease, err := s.Tokens.IssuePair(u, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, lease)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.TokenPair{}, ErrEmailTaken
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	return u, pair, nil
}

// Login verifies the credentials and opens a new session lease. Unknown
// email, inactive account and wrong password are indistinguishable to the
// caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		l.Error("user lookup failed during login", "err", err)
		return domain.User{}, domain.TokenPair{}, ErrStoreUnavailable
	}

	if !u.Active {
		l.Info("login rejected for inactive account", "user_id", u.ID)
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	if !cryptox.CheckPassword(password, u.PasswordHash) {
		l.Info("login password verification failed", "user_id", u.ID)
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, lease, err := s.Tokens.IssuePair(u, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, lease); err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	return u, pair, nil
}

// Refresh rotates a session lease: the presented token must verify
// cryptographically AND name a live lease in the registry - the signed
// payload alone is necessary but never sufficient. On success the old jti
// is revoked in the same transaction that persists the new lease, so the
// old token is immediately unusable and of two concurrent refreshes at
// most one wins.
func (s *SessionService) Refresh(ctx context.Context, rawToken string) (domain.User, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	claims, err := s.Verifier.Verify(rawToken)
	if err != nil {
		l.Info("refresh token failed verification", "err", err)
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}
	if err := claims.RequireType(jwtx.TypeRefresh); err != nil {
		l.Info("refresh rejected non-refresh token", "sub", claims.Subject)
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.User{}, domain.TokenPair{}, err
	}
	if !u.Active {
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	pair, lease, err := s.Tokens.IssuePair(u, now)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	fingerprint := cryptox.FingerprintToken(rawToken)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.RefreshTokens().ValidateRefreshToken(ctx, claims.ID, fingerprint, u.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidRefresh
		}

		if err := tx.RefreshTokens().CreateRefreshToken(ctx, lease); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeRefreshToken(ctx, claims.ID)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRefresh) {
			l.Info("refresh rejected by registry", "jti", claims.ID, "user_id", u.ID)
			return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	return u, pair, nil
}

// Logout revokes the lease named by the presented refresh token. Expiry is
// deliberately ignored so stale sessions can still be torn down; an
// absent or undecodable token means there is nothing to revoke, which is
// success, not an error.
func (s *SessionService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	claims, err := s.Verifier.VerifyIgnoringExpiry(rawToken)
	if err != nil || claims.ID == "" {
		return nil
	}

	return s.Store.RefreshTokens().RevokeRefreshToken(ctx, claims.ID)
}
