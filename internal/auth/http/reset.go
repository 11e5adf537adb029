package http

import (
	"errors"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

// resetRequestedMessage is the single response body for reset-request.
// Known and unknown emails must produce byte-identical responses.
const resetRequestedMessage = "if the email is registered, a reset token has been issued"

type ResetRequestHandler struct {
	PasswordService *service.PasswordService
}

// ServeHTTP asks for a password reset token. The response never reveals
// whether the email has an account.
func (h *ResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.ResetRequestRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if req.Email == "" {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if err := h.PasswordService.RequestReset(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrStoreUnavailable):
			authapi.ErrStoreUnavailable.WriteError(w)
		default:
			log.Error("failed to issue reset token", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{
		Message: resetRequestedMessage,
	})
}

type ResetConfirmHandler struct {
	PasswordService *service.PasswordService
}

// ServeHTTP redeems a reset token for a new password. Unknown, expired and
// already-used tokens all map to the same 401.
func (h *ResetConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.ResetConfirmRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if req.Token == "" || req.NewPassword == "" {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if err := h.PasswordService.ConfirmReset(ctx, req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReset):
			authapi.ErrInvalidResetToken.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			authapi.ErrStoreUnavailable.WriteError(w)
		default:
			log.Error("failed to confirm password reset", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{
		Message: "password updated",
	})
}
