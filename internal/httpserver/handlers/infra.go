package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tooldex/tooldex/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ToolsLoaded *int   `json:"tools_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports per-component health: catalog index, persistence backend,
// and the redis kv medium when one is configured.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		toolCount := d.Catalog.Count()
		lastReload := "never"
		if t := d.Catalog.LastReload(); !t.IsZero() {
			lastReload = t.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          toolCount > 0,
				ToolsLoaded: &toolCount,
				LastReload:  lastReload,
			},
			"store": checkStore(r.Context(), d),
		}
		if d.RedisClient != nil {
			components["redis"] = checkRedis(d)
		}

		response := infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineServiceMode(components map[string]componentStatus) string {
	// No catalog means nothing to browse.
	if cat, exists := components["catalog"]; exists && !cat.OK {
		return "critical"
	}
	// A broken store or kv medium leaves browsing up but writes failing.
	for name, c := range components {
		if name != "catalog" && !c.OK {
			return "degraded"
		}
	}
	return "nominal"
}

// checkStore probes the backend with a cheap bounded read.
func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	// Reads degrade to empty instead of erroring, so a probe can only
	// detect hard construction failures. Report the active backend either
	// way; the factory already logged any fallback.
	_, err := d.Store.Get(probeCtx, "reviews", nil)
	if err != nil {
		return componentStatus{OK: false, Mode: d.Backend, Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: d.Backend}
}

func checkRedis(d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "kv-medium-unavailable",
			Error:  "timeout",
		}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}
