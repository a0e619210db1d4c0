package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/httpserver/handlers"
	"github.com/tooldex/tooldex/internal/httpserver/mw"
)

func init() { Register(registerCollections) }

// Specialized paths are registered before the generic {collection} tree;
// chi prefers the literal match.
func registerCollections(r chi.Router, d deps.Deps) {
	r.Put("/reviews/{id}/helpful", handlers.MarkReviewHelpful(d))

	admin := r.With(mw.RequireAuth(d.JWTSecret), mw.RequireAdmin())
	admin.Put("/reviews/{id}/visible", handlers.SetReviewVisible(d))
	admin.Put("/submissions/{id}/status", handlers.SetSubmissionStatus(d))

	r.Post("/{collection}", handlers.CollectionCreate(d))
	r.Get("/{collection}", handlers.CollectionList(d))
	r.Put("/{collection}/{id}", handlers.CollectionUpdate(d))
	r.Delete("/{collection}/{id}", handlers.CollectionDelete(d))
}
