package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/prefs"
)

// Tools runs the catalog query pipeline. Filter parameters in the URL win
// over the remembered preference state; a URL that carries any filter also
// refreshes that remembered state, so the next parameterless visit resumes
// where the user left off.
func Tools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, fromURL := prefs.Decode(r.URL.Query())
		if fromURL {
			if err := d.Prefs.Save(ctx, state); err != nil {
				d.Logger.Debug("filter state not persisted")
			}
		} else {
			state = d.Prefs.Load(ctx)
		}

		page := domain.Query(d.Catalog.All(), state)

		if state.SearchTerm != "" && d.Debouncer != nil {
			// Coalesce keystroke-by-keystroke queries into one event.
			snapshot, total := state, page.Total
			d.Debouncer.Trigger(func() {
				d.Analytics.RecordSearch(context.Background(), snapshot, total)
			})
		}

		respondJSON(w, http.StatusOK, page)
	}
}

// Tool returns a single catalog entry by id.
func Tool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown tool"})
			return
		}
		tool, ok := d.Catalog.Get(id)
		if !ok {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown tool"})
			return
		}
		respondJSON(w, http.StatusOK, tool)
	}
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

// Categories lists the distinct catalog categories, sorted.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, categoriesResponse{Categories: d.Catalog.Categories()})
	}
}
