package authapi

// Request and response bodies for the /v1/auth endpoints. Kept in their own
// package so non-browser API clients can share the wire types with the
// server.

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
}

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new pair. The token may
// instead be presented via the refresh_token cookie; the body field wins
// when both are present.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// LogoutRequest optionally names the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// ResetRequestRequest asks for a password reset token to be issued.
type ResetRequestRequest struct {
	Email string `json:"email"`
}

// ResetConfirmRequest redeems a reset token for a new password.
type ResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest rotates a password using the old one.
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UserView is the sanitized subject representation returned to clients.
// It never carries the password hash.
type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// MessageResponse is the constant-shape body for logout, reset-request,
// reset-confirm and change-password.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
