package http

import (
	"time"

	"github.com/pitchside/pitchside/internal/auth/domain"
	"github.com/pitchside/pitchside/pkg/authapi"
)

// userView sanitizes a domain user for responses. The password hash never
// leaves the service.
func userView(u domain.User) authapi.UserView {
	return authapi.UserView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Country:   u.Country,
		City:      u.City,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
