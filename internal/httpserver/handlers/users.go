package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
)

// AdminListUsers handles GET /admin/users, password hashes stripped.
func AdminListUsers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := d.Store.Get(r.Context(), domain.CollectionUsers, nil)
		if err != nil {
			d.Logger.Warn("user listing failed", logger.Error(err))
			recs = []store.Record{}
		}
		for _, rec := range recs {
			delete(rec, "password")
		}
		respondJSON(w, http.StatusOK, recs)
	}
}

// AdminSetUserStatus handles PUT /admin/users/{id}/status, toggling an
// account between Active and Blocked.
func AdminSetUserStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed body"})
			return
		}
		if body.Status != domain.UserActive && body.Status != domain.UserBlocked {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "status must be Active or Blocked"})
			return
		}

		err := d.Store.Update(r.Context(), domain.CollectionUsers, chi.URLParam(r, "id"),
			store.Record{"status": body.Status})
		if err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
