package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/handlers"
	"github.com/tooldex/tooldex/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	// Credential endpoints are the obvious brute-force target.
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             5,
		RefillPerIPPerMin: 10,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}))
	limited.Post("/auth/login", handlers.Login(d))
	limited.Post("/auth/register", handlers.Register(d))

	r.Post("/auth/logout", handlers.Logout(d))
	r.With(mw.RequireAuth(d.JWTSecret)).Get("/auth/me", handlers.Me(d))
}
