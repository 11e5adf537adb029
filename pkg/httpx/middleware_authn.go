package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/jwtx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

// AuthnMiddleware is the access guard: it verifies the bearer token's
// signature, expiry and type, then exposes the resolved identity to
// downstream handlers. The check is stateless per request; only the
// verifier's shared secret is consulted, never a registry.
//
// A token whose type is "refresh" is rejected even when otherwise
// well-formed: access and refresh tokens are not interchangeable.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				authapi.ErrInvalidToken.WriteError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer token rejected", "err", err)
				authapi.ErrInvalidToken.WriteError(w)
				return
			}

			// Only an absent or "access" type passes. Refresh tokens and
			// any future type tag are not bearer credentials.
			if claims.TokenType != "" && claims.TokenType != jwtx.TypeAccess {
				log.Warn("non-access token presented as bearer token", "sub", claims.Subject, "type", claims.TokenType)
				authapi.ErrInvalidToken.WriteError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
