package sqlite

import (
	"database/sql"

	"github.com/pitchside/pitchside/internal/auth/store"
)

// txStore scopes the repositories to a single transaction. Nested
// transactions are not supported; WithTx lives on the root store only.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{db: t.tx} }
func (t *txStore) ResetTokens() store.ResetTokens     { return &resetTokensRepo{db: t.tx} }
