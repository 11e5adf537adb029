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

type LogoutHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP tears down a session. Always succeeds: a missing or
// undecodable token means there is nothing to revoke. The refresh cookie
// is cleared unconditionally.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LogoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	token := refreshTokenFromRequest(r, req.RefreshToken)

	if err := h.SessionService.Logout(ctx, token); err != nil {
		log.Error("failed to revoke session on logout", "err", err)
		h.Cookies.clear(w)
		authapi.ErrStoreUnavailable.WriteError(w)
		return
	}

	h.Cookies.clear(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{
		Message: "logged out",
	})
}
