package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

type RefreshHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP rotates a refresh token. The token comes from the body field
// or, for browser clients, the refresh_token cookie; an empty body is fine
// when the cookie is present. On success the cookie is rotated alongside
// the body token.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	token := refreshTokenFromRequest(r, req.RefreshToken)
	if token == "" {
		authapi.ErrInvalidRefreshToken.WriteError(w)
		return
	}

	u, pair, err := h.SessionService.Refresh(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			authapi.ErrInvalidRefreshToken.WriteError(w)
		default:
			log.Error("failed to refresh session", "err", err)
			authapi.ErrStoreUnavailable.WriteError(w)
		}
		return
	}

	h.Cookies.set(w, pair.RefreshToken)
	httpx.WriteJSON(w, http.StatusOK, authapi.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userView(u),
	})
}
