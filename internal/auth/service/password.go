package service

import (
	"context"
	"errors"
	"time"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/store"
	"github.com/pitchside/pitchside/pkg/cryptox"
	"github.com/pitchside/pitchside/pkg/idx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

// DefaultResetTokenTTL bounds how long a password reset token stays
// redeemable.
const DefaultResetTokenTTL = 15 * time.Minute

// ResetNotifier delivers a freshly minted reset token to the subject.
// Delivery (email, SMS, push) belongs to the surrounding platform; the
// auth service only hands the token over.
type ResetNotifier interface {
	SendResetToken(ctx context.Context, email, token string) error
}

// NopNotifier discards reset tokens. Used when no delivery channel is
// wired, e.g. in tests.
type NopNotifier struct{}

func (NopNotifier) SendResetToken(context.Context, string, string) error { return nil }

// PasswordService owns the reset and change-password flows.
type PasswordService struct {
	Store    store.Store
	Notifier ResetNotifier
	ResetTTL time.Duration
}

// RequestReset mints a single-use reset token when the email belongs to an
// active account, and does nothing otherwise. Callers must respond
// identically in both cases; the outcome is never surfaced.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Unknown email: same outward behaviour, no token minted.
			return nil
		}
		l.Error("user lookup failed during reset request", "err", err)
		return ErrStoreUnavailable
	}
	if !u.Active {
		return nil
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}

	ttl := s.ResetTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}

	rec := domain.ResetToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	if err := s.Store.ResetTokens().CreateResetToken(ctx, rec); err != nil {
		return err
	}

	l.Info("reset token minted", "user_id", u.ID, "token_fp", rec.TokenHash)

	notifier := s.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if err := notifier.SendResetToken(ctx, u.Email, opaque); err != nil {
		// The token row exists and will expire on its own; delivery
		// failure must not leak account existence to the caller.
		l.Error("reset token delivery failed", "user_id", u.ID, "err", err)
	}

	return nil
}

// ConfirmReset redeems a reset token for a new password. The consume is a
// single conditional flip, so a token can never authorize two changes even
// under concurrent confirms. All outstanding session leases are revoked in
// the same transaction as the hash update.
func (s *PasswordService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	fingerprint := cryptox.FingerprintToken(token)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		userID, err := tx.ResetTokens().ConsumeResetToken(ctx, fingerprint)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidReset
			}
			return err
		}

		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidReset) {
			l.Info("reset confirm rejected", "token_fp", fingerprint)
			return ErrInvalidReset
		}
		return err
	}

	return nil
}

// ChangePassword rotates a password after re-verifying the old one, and
// revokes every outstanding session lease so stolen refresh tokens die
// with the old password.
func (s *PasswordService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		l.Error("user lookup failed during password change", "err", err)
		return ErrStoreUnavailable
	}

	if !u.Active || !cryptox.CheckPassword(oldPassword, u.PasswordHash) {
		l.Info("password change verification failed", "user_id", u.ID)
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, u.ID)
	})
}
