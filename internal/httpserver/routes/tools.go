package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/handlers"
)

func init() { Register(registerTools) }

func registerTools(r chi.Router, d deps.Deps) {
	r.Get("/tools", handlers.Tools(d))
	r.Get("/tools/{id}", handlers.Tool(d))
	r.Get("/categories", handlers.Categories(d))
}
