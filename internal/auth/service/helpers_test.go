package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/store/drivers/sqlite"
	"github.com/pitchside/pitchside/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

const testIssuer = "pitchside-test"

// captureNotifier records the last reset token handed to it, so tests can
// redeem tokens without a real delivery channel.
type captureNotifier struct {
	email string
	token string
}

func (n *captureNotifier) SendResetToken(_ context.Context, email, token string) error {
	n.email = email
	n.token = token
	return nil
}

type testEnv struct {
	store     *sqlite.Store
	tokens    *TokenService
	sessions  *SessionService
	passwords *PasswordService
	notifier  *captureNotifier
	signer    *jwtx.HS256Signer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := jwtx.NewVerifierHS256(testSecret, testIssuer)
	require.NoError(t, err)

	tokens := &TokenService{
		Signer:     signer,
		Issuer:     testIssuer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}

	notifier := &captureNotifier{}

	return &testEnv{
		store:  st,
		tokens: tokens,
		sessions: &SessionService{
			Store:    st,
			Tokens:   tokens,
			Verifier: verifier,
		},
		passwords: &PasswordService{
			Store:    st,
			Notifier: notifier,
			ResetTTL: DefaultResetTokenTTL,
		},
		notifier: notifier,
		signer:   signer,
	}
}

func (e *testEnv) register(t *testing.T, email, password string) (domain.User, domain.TokenPair) {
	t.Helper()

	u, pair, err := e.sessions.Register(context.Background(), RegisterParams{
		Email:     email,
		Password:  password,
		Role:      domain.RolePlayer,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return u, pair
}

// signRefresh mints a refresh token signed with the real secret but with
// caller-chosen claims, for exercising registry rejections.
func (e *testEnv) signRefresh(t *testing.T, subject, email, jti string, ttl time.Duration) string {
	t.Helper()

	claims := jwtx.NewRefreshClaims(subject, email, domain.RolePlayer.String(), jti, testIssuer, ttl, time.Now().UTC())
	token, err := e.signer.Sign(claims)
	require.NoError(t, err)
	return token
}
