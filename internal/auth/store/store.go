package store

import (
	"context"
	"errors"

	"github.com/pitchside/pitchside/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Use it for
	// multi-step operations that must be atomic (e.g. refresh rotation).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store scoped to a single transaction.
type Tx interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and the reset-request flow.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record. Always an
	// insert: every issuance is a new session lease.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshToken returns the record for a jti.
	GetRefreshToken(ctx context.Context, jti string) (domain.RefreshToken, error)

	// ValidateRefreshToken reports whether the (jti, token fingerprint,
	// subject) triple names a live lease: the record exists, is not
	// revoked, is not expired, belongs to userID, and its stored
	// fingerprint equals tokenHash. Any single failing condition means
	// false; the signed payload alone is never trusted.
	ValidateRefreshToken(ctx context.Context, jti, tokenHash, userID string) (bool, error)

	// RevokeRefreshToken flips revoked=1. Idempotent: revoking a missing
	// or already-revoked jti is a no-op, not an error.
	RevokeRefreshToken(ctx context.Context, jti string) error

	// RevokeAllUserRefreshTokens bulk-revokes every live lease for a user
	// (password change / reset).
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping; expired rows are already
	// inert, this just bounds table growth.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type ResetTokens interface {
	// CreateResetToken stores a fresh single-use reset token record.
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// ConsumeResetToken atomically checks that the token exists, is
	// unused and unexpired, flips used=1 and returns the owning user id.
	// Returns ErrNotFound in every other case, including a concurrent
	// consume racing this one.
	ConsumeResetToken(ctx context.Context, tokenHash string) (string, error)

	// DeleteExpiredResetTokens is housekeeping.
	DeleteExpiredResetTokens(ctx context.Context) error
}
