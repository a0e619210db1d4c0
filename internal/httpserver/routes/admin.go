package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/handlers"
	"github.com/tooldex/tooldex/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.RequireAuth(d.JWTSecret),
		mw.RequireAdmin(),
	)
	admin.Get("/admin/users", handlers.AdminListUsers(d))
	admin.Put("/admin/users/{id}/status", handlers.AdminSetUserStatus(d))
}
