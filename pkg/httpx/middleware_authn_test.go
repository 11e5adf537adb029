package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/pkg/jwtx"
)

var guardSecret = []byte("test-secret-test-secret-test-sec")

func guardStack(t *testing.T) (*jwtx.HS256Signer, http.Handler, *string) {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(guardSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(guardSecret, "pitchside-auth")
	require.NoError(t, err)

	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserIDFromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	return signer, Chain(inner, AuthnMiddleware(verifier)), &seenUserID
}

func doGuarded(t *testing.T, h http.Handler, authz string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthnMiddlewareAcceptsValidAccessToken(t *testing.T) {
	signer, h, seen := guardStack(t)

	raw, err := signer.Sign(jwtx.NewAccessClaims("user-7", "a@b.c", "scout", "pitchside-auth", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	rec := doGuarded(t, h, "Bearer "+raw)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "user-7", *seen)
}

func TestAuthnMiddlewareRejectsMissingHeader(t *testing.T) {
	_, h, _ := guardStack(t)

	for _, authz := range []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer "} {
		rec := doGuarded(t, h, authz)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "authz %q", authz)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "unauthorized", body["error"])
		require.EqualValues(t, http.StatusUnauthorized, body["statusCode"])
	}
}

func TestAuthnMiddlewareRejectsExpiredToken(t *testing.T) {
	signer, h, _ := guardStack(t)

	issued := time.Now().UTC().Add(-2 * time.Hour)
	raw, err := signer.Sign(jwtx.NewAccessClaims("user-7", "a@b.c", "scout", "pitchside-auth", time.Minute, issued))
	require.NoError(t, err)

	rec := doGuarded(t, h, "Bearer "+raw)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthnMiddlewareRejectsRefreshTokenAsBearer(t *testing.T) {
	signer, h, _ := guardStack(t)

	raw, err := signer.Sign(jwtx.NewRefreshClaims("user-7", "a@b.c", "scout", "jti-1", "pitchside-auth", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	rec := doGuarded(t, h, "Bearer "+raw)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthnMiddlewareTokenTypePolicy(t *testing.T) {
	signer, h, _ := guardStack(t)
	now := time.Now().UTC()

	t.Run("unknown type rejected", func(t *testing.T) {
		// Only absent-or-"access" passes; any other tag is not a bearer
		// credential even with a valid signature.
		claims := jwtx.NewAccessClaims("user-7", "a@b.c", "scout", "pitchside-auth", time.Minute, now)
		claims.TokenType = "session"
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		rec := doGuarded(t, h, "Bearer "+raw)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("absent type accepted", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("user-7", "a@b.c", "scout", "pitchside-auth", time.Minute, now)
		claims.TokenType = ""
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		rec := doGuarded(t, h, "Bearer "+raw)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAuthnMiddlewareRejectsGarbageToken(t *testing.T) {
	_, h, _ := guardStack(t)

	rec := doGuarded(t, h, "Bearer not.a.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
