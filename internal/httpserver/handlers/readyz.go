package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
	Tools int  `json:"tools"`
}

// Readyz reports ready once the catalog index holds at least one tool.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Catalog.Count()
		ready := count > 0

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: ready, Tools: count})
	}
}
