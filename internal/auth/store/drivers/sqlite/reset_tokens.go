package sqlite

import (
	"context"
	"time"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/store"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, user_id, token_hash, expires_at, used, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return mapConstraint(err)
}

// ConsumeResetToken flips used 0 -> 1 and returns the owning user id. The
// validity check and the flip are one conditional UPDATE, so of two
// concurrent consumes exactly one sees a row to update; sqlite serializes
// the writers.
func (r *resetTokensRepo) ConsumeResetToken(ctx context.Context, tokenHash string) (string, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used = 1
		 WHERE token_hash = ? AND used = 0 AND expires_at > ?`,
		tokenHash, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", store.ErrNotFound
	}

	var userID string
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM reset_tokens WHERE token_hash = ?`, tokenHash)
	if err := row.Scan(&userID); err != nil {
		return "", mapNotFound(err)
	}
	return userID, nil
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
