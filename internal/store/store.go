// Package store defines the persistence adapter contract: one interface
// over named collections with four interchangeable backends (local
// key-value, REST, Postgres, SurrealDB). Adapters differ only in where
// the data lives and how filters and ordering are expressed.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors. Adapters translate transport-level failures into these
// before they reach callers; no lower-level error escapes untranslated.
var (
	// ErrNotFound is returned by Update for an absent record.
	ErrNotFound = errors.New("store: record not found")
	// ErrUnavailable means the underlying medium cannot be reached or
	// written. Read paths degrade to empty results instead.
	ErrUnavailable = errors.New("store: storage unavailable")
)

// Record is a generic persisted entity: a JSON object with at minimum an
// "id" plus "createdAt"/"updatedAt" RFC 3339 timestamps, all assigned by
// the adapter.
type Record = map[string]any

// Filters restricts Get to records whose fields equal every given value.
// Supported keys include at minimum toolId, userId, and status.
type Filters = map[string]string

// SaveResult reports a successful Save.
type SaveResult struct {
	ID string `json:"id"`
}

// Adapter is the capability interface every backend satisfies.
//
// Failure semantics: Get never propagates internal failures (it returns an
// empty slice), while Save/Update/Delete surface them as errors. A failed
// Update must leave the stored record untouched. Delete is idempotent.
type Adapter interface {
	Save(ctx context.Context, collection string, data Record) (SaveResult, error)
	Get(ctx context.Context, collection string, filters Filters) ([]Record, error)
	Update(ctx context.Context, collection string, id string, patch Record) error
	Delete(ctx context.Context, collection string, id string) error
}

// ─────────────────────────────────────────────────────────────────
// Shared helpers used by the in-process adapters
// ─────────────────────────────────────────────────────────────────

// Stamp assigns id and createdAt to a new record, returning the id.
// An id already present on the record is respected.
func Stamp(data Record, now time.Time) string {
	id, _ := data["id"].(string)
	if id == "" {
		id = uuid.NewString()
		data["id"] = id
	}
	if _, ok := data["createdAt"]; !ok {
		data["createdAt"] = now.UTC().Format(time.RFC3339Nano)
	}
	return id
}

// Matches reports whether the record satisfies every filter by exact
// string equality. Non-string field values are compared via fmt.
func Matches(rec Record, filters Filters) bool {
	for k, want := range filters {
		v, ok := rec[k]
		if !ok {
			return false
		}
		got, isStr := v.(string)
		if !isStr {
			got = fmt.Sprintf("%v", v)
		}
		if got != want {
			return false
		}
	}
	return true
}

// SortNewestFirst orders records by createdAt descending, in place.
// Records without a parseable createdAt sink to the end.
func SortNewestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return createdAt(recs[i]).After(createdAt(recs[j]))
	})
}

func createdAt(rec Record) time.Time {
	s, _ := rec["createdAt"].(string)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}
