package http

import (
	"errors"
	"net/http"

	"github.com/pitchside/pitchside/internal/auth/store"
	"github.com/pitchside/pitchside/pkg/authapi"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

type MeHandler struct {
	Store store.Store
}

// ServeHTTP returns the authenticated subject's sanitized view. Runs
// behind the authn middleware, so the context always carries an id; a
// token for a since-deleted or deactivated account still gets a 401.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	u, err := h.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			authapi.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to load user for /me", "err", err)
		authapi.ErrStoreUnavailable.WriteError(w)
		return
	}

	if !u.Active {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userView(u))
}
