package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pitchside/pitchside/internal/auth/service"
	"github.com/pitchside/pitchside/internal/auth/store"
	"github.com/pitchside/pitchside/pkg/httpx"
	"github.com/pitchside/pitchside/pkg/jwtx"
	"github.com/pitchside/pitchside/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	env          string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	SessionService  *service.SessionService
	PasswordService *service.PasswordService

	// RefreshTokenTTL drives the refresh_token cookie MaxAge; it must
	// match the TTL the token service signs with.
	RefreshTokenTTL time.Duration
}

func NewRouter(
	verifier jwtx.Verifier,
	env, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		env:          env,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerPasswords()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// cookies builds the refresh cookie policy for the configured environment.
// Production gets Secure + SameSite=Strict; everything else stays usable
// over plain http with SameSite=Lax.
func (r *Router) cookies() refreshCookies {
	prod := r.env == "production"

	sameSite := http.SameSiteLaxMode
	if prod {
		sameSite = http.SameSiteStrictMode
	}

	ttl := r.RefreshTokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultRefreshTokenTTL
	}

	return refreshCookies{
		secure:   prod,
		sameSite: sameSite,
		ttl:      ttl,
	}
}

func (r *Router) registerSessions() {
	cookies := r.cookies()

	registerHandler := &RegisterHandler{
		SessionService: r.SessionService,
		Cookies:        cookies,
	}
	loginHandler := &LoginHandler{
		SessionService: r.SessionService,
		Cookies:        cookies,
	}
	refreshHandler := &RefreshHandler{
		SessionService: r.SessionService,
		Cookies:        cookies,
	}
	logoutHandler := &LogoutHandler{
		SessionService: r.SessionService,
		Cookies:        cookies,
	}

	r.Mux.Handle("POST /v1/auth/register", registerHandler)
	r.Mux.Handle("POST /v1/auth/login", loginHandler)
	r.Mux.Handle("POST /v1/auth/refresh", refreshHandler)
	r.Mux.Handle("POST /v1/auth/logout", logoutHandler)

	// GET /me - requires a valid access token
	meHandler := &MeHandler{Store: r.store}
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerPasswords() {
	resetRequestHandler := &ResetRequestHandler{PasswordService: r.PasswordService}
	resetConfirmHandler := &ResetConfirmHandler{PasswordService: r.PasswordService}
	changePasswordHandler := &ChangePasswordHandler{PasswordService: r.PasswordService}

	r.Mux.Handle("POST /v1/auth/reset-request", resetRequestHandler)
	r.Mux.Handle("POST /v1/auth/reset-confirm", resetConfirmHandler)
	r.Mux.Handle("POST /v1/auth/change-password", changePasswordHandler)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
