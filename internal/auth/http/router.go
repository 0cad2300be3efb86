package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/northarcade/gameauth/internal/auth/service"
	"github.com/northarcade/gameauth/internal/auth/store"
	"github.com/northarcade/gameauth/pkg/httpx"
	"github.com/northarcade/gameauth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AccountService      *service.AccountService
	VerificationService *service.VerificationService
	ProfileService      *service.ProfileService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerAccounts()
	r.registerVerification()
	r.registerProfile()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	// POST /auth/register - strict rate limit by IP (account creation)
	registerHandler := &RegisterHandler{Accounts: r.AccountService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP (credential guessing)
	loginHandler := &LoginHandler{Accounts: r.AccountService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/logout - moderate rate limit
	logoutHandler := &LogoutHandler{Accounts: r.AccountService}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVerification() {
	h := &VerificationHandler{Verification: r.VerificationService}

	// Begin endpoints send mail, complete endpoints accept code guesses.
	// Both get the strict profile on top of the service-level cooldown.
	r.Mux.Handle("POST /v1/auth/register/begin",
		httpx.Chain(http.HandlerFunc(h.HandleBeginRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/register/complete",
		httpx.Chain(http.HandlerFunc(h.HandleCompleteRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/password-reset/begin",
		httpx.Chain(http.HandlerFunc(h.HandleBeginReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/password-reset/complete",
		httpx.Chain(http.HandlerFunc(h.HandleCompleteReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	// POST /profile/image - moderate rate limit (session-gated lookup)
	h := &ProfileImageHandler{Profiles: r.ProfileService}
	r.Mux.Handle("POST /v1/profile/image",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
