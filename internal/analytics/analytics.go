// Package analytics records lightweight usage events and client errors in
// capped kv ring buffers. Recording is best-effort: a full buffer evicts
// its oldest entries, and storage failures never propagate to the caller's
// main path.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
)

// Buffer caps. Events churn faster than errors, so they get more room.
const (
	EventCap = 100
	ErrorCap = 50
)

// Event is one recorded user action.
type Event struct {
	Kind string         `json:"kind"`
	At   time.Time      `json:"at"`
	Meta map[string]any `json:"meta,omitempty"`
}

// ErrorEntry is one recorded failure.
type ErrorEntry struct {
	Message string    `json:"message"`
	Source  string    `json:"source,omitempty"`
	At      time.Time `json:"at"`
}

// Recorder appends to both ring buffers.
type Recorder struct {
	kv  kv.Store
	log logger.Logger
	now func() time.Time
}

func NewRecorder(kvStore kv.Store, log logger.Logger) *Recorder {
	return &Recorder{kv: kvStore, log: log, now: time.Now}
}

// RecordEvent appends an event, evicting the oldest past the cap.
func (r *Recorder) RecordEvent(ctx context.Context, kind string, meta map[string]any) {
	ev := Event{Kind: kind, At: r.now().UTC(), Meta: meta}
	if err := appendCapped(ctx, r.kv, kv.KeyAnalyticsEvents, ev, EventCap); err != nil {
		r.log.Debug("analytics event dropped", logger.Error(err))
	}
}

// RecordSearch captures a search along with its outcome so popular terms
// and dead ends can both be seen later.
func (r *Recorder) RecordSearch(ctx context.Context, state domain.FilterState, results int) {
	r.RecordEvent(ctx, "search", map[string]any{
		"term":       state.SearchTerm,
		"category":   state.Category,
		"pricing":    state.Pricing,
		"popularity": state.Popularity,
		"results":    results,
	})
}

// RecordError appends a failure to the error log.
func (r *Recorder) RecordError(ctx context.Context, source, message string) {
	entry := ErrorEntry{Message: message, Source: source, At: r.now().UTC()}
	if err := appendCapped(ctx, r.kv, kv.KeyErrorLog, entry, ErrorCap); err != nil {
		r.log.Debug("error entry dropped", logger.Error(err))
	}
}

// Events returns the recorded events, oldest first.
func (r *Recorder) Events(ctx context.Context) []Event {
	var out []Event
	readBuffer(ctx, r.kv, kv.KeyAnalyticsEvents, &out)
	if out == nil {
		out = []Event{}
	}
	return out
}

// Errors returns the recorded failures, oldest first.
func (r *Recorder) Errors(ctx context.Context) []ErrorEntry {
	var out []ErrorEntry
	readBuffer(ctx, r.kv, kv.KeyErrorLog, &out)
	if out == nil {
		out = []ErrorEntry{}
	}
	return out
}

// appendCapped does a read-modify-write on one buffer key. Corrupt buffers
// restart empty rather than blocking new entries.
func appendCapped[T any](ctx context.Context, kvStore kv.Store, key string, entry T, limit int) error {
	var entries []T
	readBuffer(ctx, kvStore, key, &entries)

	entries = append(entries, entry)
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return kvStore.Set(ctx, key, raw)
}

func readBuffer(ctx context.Context, kvStore kv.Store, key string, out any) {
	raw, err := kvStore.Get(ctx, key)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, out)
}
