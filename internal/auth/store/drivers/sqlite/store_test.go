package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/store"
	"github.com/pitchside/pitchside/pkg/cryptox"
	"github.com/pitchside/pitchside/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RolePlayer,
		FirstName:    "Test",
		LastName:     "User",
		Active:       true,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u := seedUser(t, st, "alice@example.com")

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)
		require.Equal(t, domain.RolePlayer, got.Role)
		require.True(t, got.Active)

		got, err = st.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("unknown lookups map to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("password hash update", func(t *testing.T) {
		require.NoError(t, st.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))
		got, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "new-hash", got.PasswordHash)
	})
}

func seedRefreshToken(t *testing.T, st *Store, userID string, ttl time.Duration) domain.RefreshToken {
	t.Helper()

	rt := domain.RefreshToken{
		JTI:       uuid.NewString(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken("token-" + uuid.NewString()),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(context.Background(), rt))
	return rt
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "bob@example.com")

	t.Run("validate requires every condition", func(t *testing.T) {
		rt := seedRefreshToken(t, st, u.ID, time.Hour)

		ok, err := st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, rt.TokenHash, u.ID)
		require.NoError(t, err)
		require.True(t, ok)

		// Wrong fingerprint: stolen jti with a different payload.
		ok, err = st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, cryptox.FingerprintToken("forged"), u.ID)
		require.NoError(t, err)
		require.False(t, ok)

		// Wrong subject.
		ok, err = st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, rt.TokenHash, "other-user")
		require.NoError(t, err)
		require.False(t, ok)

		// Unknown jti.
		ok, err = st.RefreshTokens().ValidateRefreshToken(ctx, uuid.NewString(), rt.TokenHash, u.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expired lease fails validation", func(t *testing.T) {
		rt := seedRefreshToken(t, st, u.ID, -time.Minute)
		ok, err := st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, rt.TokenHash, u.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("revoke is effective and idempotent", func(t *testing.T) {
		rt := seedRefreshToken(t, st, u.ID, time.Hour)

		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, rt.JTI))
		ok, err := st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, rt.TokenHash, u.ID)
		require.NoError(t, err)
		require.False(t, ok)

		// Revoking again, or revoking a jti that never existed, is a no-op.
		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, rt.JTI))
		require.NoError(t, st.RefreshTokens().RevokeRefreshToken(ctx, "never-issued"))
	})

	t.Run("bulk revocation covers every live lease", func(t *testing.T) {
		a := seedRefreshToken(t, st, u.ID, time.Hour)
		b := seedRefreshToken(t, st, u.ID, time.Hour)

		require.NoError(t, st.RefreshTokens().RevokeAllUserRefreshTokens(ctx, u.ID))

		for _, rt := range []domain.RefreshToken{a, b} {
			ok, err := st.RefreshTokens().ValidateRefreshToken(ctx, rt.JTI, rt.TokenHash, u.ID)
			require.NoError(t, err)
			require.False(t, ok)
		}
	})

	t.Run("housekeeping deletes only expired rows", func(t *testing.T) {
		live := seedRefreshToken(t, st, u.ID, time.Hour)
		dead := seedRefreshToken(t, st, u.ID, -time.Hour)

		require.NoError(t, st.RefreshTokens().DeleteExpiredRefreshTokens(ctx))

		_, err := st.RefreshTokens().GetRefreshToken(ctx, live.JTI)
		require.NoError(t, err)
		_, err = st.RefreshTokens().GetRefreshToken(ctx, dead.JTI)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestResetTokensRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "carol@example.com")

	newResetToken := func(ttl time.Duration) (string, domain.ResetToken) {
		opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		rec := domain.ResetToken{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: cryptox.FingerprintToken(opaque),
			ExpiresAt: time.Now().UTC().Add(ttl),
		}
		require.NoError(t, st.ResetTokens().CreateResetToken(ctx, rec))
		return opaque, rec
	}

	t.Run("consume succeeds exactly once", func(t *testing.T) {
		opaque, _ := newResetToken(15 * time.Minute)
		hash := cryptox.FingerprintToken(opaque)

		userID, err := st.ResetTokens().ConsumeResetToken(ctx, hash)
		require.NoError(t, err)
		require.Equal(t, u.ID, userID)

		_, err = st.ResetTokens().ConsumeResetToken(ctx, hash)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired token cannot be consumed", func(t *testing.T) {
		opaque, _ := newResetToken(-time.Minute)
		_, err := st.ResetTokens().ConsumeResetToken(ctx, cryptox.FingerprintToken(opaque))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown token cannot be consumed", func(t *testing.T) {
		_, err := st.ResetTokens().ConsumeResetToken(ctx, cryptox.FingerprintToken("unknown"))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("housekeeping deletes expired rows", func(t *testing.T) {
		opaque, _ := newResetToken(-time.Hour)
		require.NoError(t, st.ResetTokens().DeleteExpiredResetTokens(ctx))
		_, err := st.ResetTokens().ConsumeResetToken(ctx, cryptox.FingerprintToken(opaque))
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "dave@example.com")

	rt := domain.RefreshToken{
		JTI:       uuid.NewString(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken("tx-token"),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	sentinel := store.ErrAlreadyExists
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.RefreshTokens().GetRefreshToken(ctx, rt.JTI)
	require.ErrorIs(t, err, store.ErrNotFound)
}
