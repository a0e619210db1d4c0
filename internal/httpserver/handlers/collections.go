package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
)

// CollectionCreate handles POST /{collection}. Reviews and submissions go
// through their services for validation; anything else is unknown.
func CollectionCreate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		switch chi.URLParam(r, "collection") {
		case domain.CollectionReviews:
			var in collections.ReviewInput
			if err := decodeBody(r, &in); err != nil {
				respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
				return
			}
			created, err := d.Reviews.Create(ctx, in)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, created)

		case domain.CollectionSubmissions:
			var in collections.SubmissionInput
			if err := decodeBody(r, &in); err != nil {
				respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
				return
			}
			created, err := d.Submissions.Create(ctx, in)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, created)

		default:
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown collection"})
		}
	}
}

// CollectionList handles GET /{collection}?field=value. Query parameters
// become exact-match filters; results come back newest first.
func CollectionList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := chi.URLParam(r, "collection")
		if !knownCollection(collection) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown collection"})
			return
		}

		filters := store.Filters{}
		for key, vals := range r.URL.Query() {
			if len(vals) > 0 {
				filters[key] = vals[0]
			}
		}

		recs, err := d.Store.Get(r.Context(), collection, filters)
		if err != nil {
			d.Logger.Warn("collection read failed",
				logger.String("collection", collection), logger.Error(err))
			recs = []store.Record{}
		}
		respondJSON(w, http.StatusOK, recs)
	}
}

// CollectionUpdate handles PUT /{collection}/{id} with a JSON patch body.
// Identity fields in the patch are ignored by the adapters.
func CollectionUpdate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := chi.URLParam(r, "collection")
		if !knownCollection(collection) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown collection"})
			return
		}

		var patch store.Record
		if err := decodeBody(r, &patch); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}

		if err := d.Store.Update(r.Context(), collection, chi.URLParam(r, "id"), patch); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CollectionDelete handles DELETE /{collection}/{id}. Deleting an absent
// record is a success.
func CollectionDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := chi.URLParam(r, "collection")
		if !knownCollection(collection) {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "unknown collection"})
			return
		}
		if err := d.Store.Delete(r.Context(), collection, chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MarkReviewHelpful handles PUT /reviews/{id}/helpful.
func MarkReviewHelpful(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Reviews.MarkHelpful(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetReviewVisible handles PUT /reviews/{id}/visible, admin-only.
func SetReviewVisible(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Visible bool `json:"visible"`
		}
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}
		if err := d.Reviews.SetVisible(r.Context(), chi.URLParam(r, "id"), body.Visible); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetSubmissionStatus handles PUT /submissions/{id}/status, admin-only.
func SetSubmissionStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}
		if err := d.Submissions.SetStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// knownCollection lists what the public CRUD tree serves. The users
// collection is reachable only through the guarded admin routes.
func knownCollection(name string) bool {
	switch name {
	case domain.CollectionReviews, domain.CollectionSubmissions:
		return true
	}
	return false
}
