package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/compare"
	"github.com/tooldex/tooldex/internal/httpserver/deps"
	"github.com/tooldex/tooldex/internal/kv"
)

// Client-state endpoints: shortlists, chat transcript, and remembered
// filters. These mirror what a browser would keep in local storage.

type idListResponse struct {
	IDs    []string `json:"ids"`
	Member bool     `json:"member,omitempty"`
}

// ListIDs handles GET on a shortlist.
func ListIDs(d deps.Deps, pick func(deps.Deps) *compare.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, idListResponse{IDs: pick(d).IDs(r.Context())})
	}
}

// ToggleID handles POST /{list}/{id}/toggle. The response reports the
// final membership; a toggle that bumps into the comparison cap comes back
// member=false with the list unchanged.
func ToggleID(d deps.Deps, pick func(deps.Deps) *compare.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, member, err := pick(d).Toggle(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, idListResponse{IDs: ids, Member: member})
	}
}

// ClearIDs handles DELETE on a shortlist.
func ClearIDs(d deps.Deps, pick func(deps.Deps) *compare.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pick(d).Clear(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ChatHistory handles GET /chat.
func ChatHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, d.Chat.Load(r.Context()))
	}
}

// ChatAppend handles POST /chat.
func ChatAppend(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg collections.Message
		if err := decodeBody(r, &msg); err != nil || msg.Text == "" {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "message text required"})
			return
		}
		if msg.Role == "" {
			msg.Role = "user"
		}
		if err := d.Chat.Append(r.Context(), msg); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, d.Chat.Load(r.Context()))
	}
}

// ChatClear handles DELETE /chat.
func ChatClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Chat.Clear(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type themeResponse struct {
	Dark bool `json:"dark"`
}

// Theme handles GET /prefs/theme. Absent or unreadable state means light.
func Theme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dark bool
		if data, err := d.KV.Get(r.Context(), kv.KeyTheme); err == nil {
			_ = json.Unmarshal(data, &dark)
		}
		respondJSON(w, http.StatusOK, themeResponse{Dark: dark})
	}
}

// SetTheme handles PUT /prefs/theme.
func SetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body themeResponse
		if err := decodeBody(r, &body); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
			return
		}
		data, _ := json.Marshal(body.Dark)
		if err := d.KV.Set(r.Context(), kv.KeyTheme, data); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, body)
	}
}

// FilterPrefs handles GET /prefs/filters, returning the remembered state.
func FilterPrefs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := d.Prefs.Load(r.Context())
		respondJSON(w, http.StatusOK, map[string]any{
			"searchTerm": s.SearchTerm,
			"category":   s.Category,
			"pricing":    s.Pricing,
			"popularity": s.Popularity,
			"sort":       s.Sort,
		})
	}
}

// ClearFilterPrefs handles DELETE /prefs/filters.
func ClearFilterPrefs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Prefs.Clear(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
