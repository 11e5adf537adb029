package http

import (
	"errors"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP authenticates with email and password. Every verification
// failure maps to the same 401, so the endpoint cannot be used to probe
// which emails have accounts.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	u, pair, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authapi.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			authapi.ErrStoreUnavailable.WriteError(w)
		default:
			log.Error("failed to log in user", "err", err)
			authapi.ErrServerError.WriteError(w)
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
