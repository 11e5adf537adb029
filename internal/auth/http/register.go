package http

import (
	"errors"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

type RegisterHandler struct {
	SessionService *service.SessionService
	Cookies        refreshCookies
}

// ServeHTTP creates a new account and opens its first session. The refresh
// token is returned in the body and mirrored into the refresh_token cookie.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" || req.Role == "" ||
		req.FirstName == "" || req.LastName == "" {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	// Unknown role strings are rejected at the boundary; the domain only
	// ever sees the closed set.
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		authapi.ErrBadRequest.WriteError(w)
		return
	}

	u, pair, err := h.SessionService.Register(ctx, service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		City:      req.City,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			authapi.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrStoreUnavailable):
			authapi.ErrStoreUnavailable.WriteError(w)
		default:
			log.Error("failed to register user", "err", err)
			authapi.ErrServerError.WriteError(w)
		}
		return
	}

	h.Cookies.set(w, pair.RefreshToken)
	httpx.WriteJSON(w, http.StatusCreated, authapi.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         userView(u),
	})
}
