package sqlite

import (
	"context"
	"time"

	"github.com/pitchside/pitchside/internal/auth/domain"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (jti, user_id, token_hash, expires_at, revoked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		t.JTI, t.UserID, t.TokenHash, t.ExpiresAt.UTC(), now, now,
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshToken(ctx context.Context, jti string) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT jti, user_id, token_hash, expires_at, revoked, created_at, updated_at
		 FROM refresh_tokens WHERE jti = ?`, jti)

	var t domain.RefreshToken
	err := row.Scan(&t.JTI, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Revoked, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

// ValidateRefreshToken checks every lease condition in a single predicate:
// the row exists, is not revoked, belongs to the subject, is not expired,
// and its stored fingerprint matches the presented token. A stolen jti with
// a different payload fails the fingerprint check.
func (r *refreshTokensRepo) ValidateRefreshToken(ctx context.Context, jti, tokenHash, userID string) (bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM refresh_tokens
		 WHERE jti = ? AND token_hash = ? AND user_id = ?
		   AND revoked = 0 AND expires_at > ?`,
		jti, tokenHash, userID, time.Now().UTC(),
	)

	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, jti string) error {
	// Conditional on revoked=0 so revocation is idempotent and the
	// updated_at timestamp records the first revocation only.
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE jti = ? AND revoked = 0`,
		time.Now().UTC(), jti,
	)
	return err
}

func (r *refreshTokensRepo) RevokeAllUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE user_id = ? AND revoked = 0`,
		time.Now().UTC(), userID,
	)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
