package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/lamenar/internal/service"
)

// Options configures the routes and middleware of the HTTP API.
type Options struct {
	// MetricsPath is the path at which prometheus metrics are served.
	MetricsPath string
	// CORSOrigins lists the origins allowed to make credentialed requests.
	CORSOrigins []string
	// CookieSecure marks the auth cookie as Secure.
	CookieSecure bool
	// TrustProxyHeaders keys rate limits by X-Forwarded-For / X-Real-IP
	// instead of the peer address. Enable only behind a trusted proxy.
	TrustProxyHeaders bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
// Signup and login are throttled per client IP by limiter.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, limiter *service.TokenBucket, opts Options) {
	authHandler := NewAuthHandler(auth, opts.CookieSecure)

	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.HandleFunc("GET /health", HandleHealth)

	mux.Handle("POST /api/auth/signup", RateLimit(limiter, opts.TrustProxyHeaders, http.HandlerFunc(authHandler.HandleSignup)))
	mux.Handle("POST /api/auth/login", RateLimit(limiter, opts.TrustProxyHeaders, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	if opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.Handler())
	}
}

// NewHandler builds the API handler with its middleware chain.
func NewHandler(auth *service.AuthService, limiter *service.TokenBucket, opts Options) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, auth, limiter, opts)

	return WithLogger(WithCORS(opts.CORSOrigins, SecurityHeaders(mux)))
}
