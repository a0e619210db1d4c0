package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/compare"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/handlers"
)

func init() { Register(registerClientState) }

func registerClientState(r chi.Router, d deps.Deps) {
	favorites := func(d deps.Deps) *compare.List { return d.Favorites }
	comparison := func(d deps.Deps) *compare.List { return d.Comparison }

	r.Get("/favorites", handlers.ListIDs(d, favorites))
	r.Post("/favorites/{id}/toggle", handlers.ToggleID(d, favorites))
	r.Delete("/favorites", handlers.ClearIDs(d, favorites))

	r.Get("/comparison", handlers.ListIDs(d, comparison))
	r.Post("/comparison/{id}/toggle", handlers.ToggleID(d, comparison))
	r.Delete("/comparison", handlers.ClearIDs(d, comparison))

	r.Get("/chat", handlers.ChatHistory(d))
	r.Post("/chat", handlers.ChatAppend(d))
	r.Delete("/chat", handlers.ChatClear(d))

	r.Get("/prefs/filters", handlers.FilterPrefs(d))
	r.Delete("/prefs/filters", handlers.ClearFilterPrefs(d))

	r.Get("/prefs/theme", handlers.Theme(d))
	r.Put("/prefs/theme", handlers.SetTheme(d))
}
