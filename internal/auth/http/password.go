package http

import (
	"errors"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

type ChangePasswordHandler struct {
	PasswordService *service.PasswordService
}

// ServeHTTP rotates a password after re-verifying the old one. Wrong old
// password and unknown email map to the same 401.
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if err := h.PasswordService.ChangePassword(ctx, req.Email, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authapi.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			authapi.ErrStoreUnavailable.WriteError(w)
		default:
			log.Error("failed to change password", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{
		Message: "password updated",
	})
}
