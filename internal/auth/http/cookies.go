package http

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the refresh token for browser
// clients. API clients use the response body instead.
const RefreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the auth endpoints so it never
// rides along on business-domain requests.
const refreshCookiePath = "/v1/auth"

// refreshCookies centralises the refresh_token cookie policy so every
// session handler sets and clears it identically.
type refreshCookies struct {
	secure   bool
	sameSite http.SameSite
	ttl      time.Duration
}

func (c refreshCookies) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}

func (c refreshCookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
	})
}

// refreshTokenFromRequest resolves the refresh token for refresh/logout.
// An explicit body field wins over the cookie.
func refreshTokenFromRequest(r *http.Request, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	if c, err := r.Cookie(RefreshCookieName); err == nil {
		return c.Value
	}
	return ""
}
