package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tooldex/tooldex/internal/collections"
	"github.com/tooldex/tooldex/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto the API's status codes: invalid
// input is 400, missing records 404, backend outages 503, anything else a
// plain 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collections.ErrInvalidInput):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, store.ErrUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "backend unavailable"})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}
