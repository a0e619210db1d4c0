// Package compare keeps the user's tool shortlists: favorites, which grow
// without bound, and the comparison tray, which holds at most four tools.
// Both are ordered id lists stored as single kv blobs.
package compare

import (
	"context"
	"encoding/json"

	"github.com/tooldex/tooldex/internal/kv"
)

// ComparisonCap is the most tools a side-by-side view can hold. Adding a
// fifth is a silent no-op.
const ComparisonCap = 4

// List is an ordered, duplicate-free set of tool ids persisted under one
// kv key. A zero cap means unbounded.
type List struct {
	kv  kv.Store
	key string
	cap int
}

// NewFavorites returns the unbounded favorites list.
func NewFavorites(kvStore kv.Store) *List {
	return &List{kv: kvStore, key: kv.KeyFavorites}
}

// NewComparison returns the capped comparison tray.
func NewComparison(kvStore kv.Store) *List {
	return &List{kv: kvStore, key: kv.KeyComparison, cap: ComparisonCap}
}

// IDs returns the list in insertion order. Missing or corrupt data reads
// as empty.
func (l *List) IDs(ctx context.Context) []string {
	raw, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil || ids == nil {
		return []string{}
	}
	return ids
}

// Contains reports whether the id is in the list.
func (l *List) Contains(ctx context.Context, id string) bool {
	for _, existing := range l.IDs(ctx) {
		if existing == id {
			return true
		}
	}
	return false
}

// Add appends the id. Duplicates and additions past the cap are no-ops;
// the returned list is the state after the call either way.
func (l *List) Add(ctx context.Context, id string) ([]string, error) {
	ids := l.IDs(ctx)
	for _, existing := range ids {
		if existing == id {
			return ids, nil
		}
	}
	if l.cap > 0 && len(ids) >= l.cap {
		return ids, nil
	}
	ids = append(ids, id)
	return ids, l.persist(ctx, ids)
}

// Remove drops the id if present.
func (l *List) Remove(ctx context.Context, id string) ([]string, error) {
	ids := l.IDs(ctx)
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return ids, nil
	}
	return kept, l.persist(ctx, kept)
}

// Toggle adds the id when absent and removes it when present. The boolean
// reports membership after the call.
func (l *List) Toggle(ctx context.Context, id string) ([]string, bool, error) {
	if l.Contains(ctx, id) {
		ids, err := l.Remove(ctx, id)
		return ids, false, err
	}
	before := len(l.IDs(ctx))
	ids, err := l.Add(ctx, id)
	return ids, len(ids) > before, err
}

// Clear empties the list.
func (l *List) Clear(ctx context.Context) error {
	return l.kv.Delete(ctx, l.key)
}

func (l *List) persist(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, l.key, raw)
}
