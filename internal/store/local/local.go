// Package local implements the store contract on top of the kv namespace:
// each collection is one JSON array blob, deserialized wholesale, filtered
// and sorted in process. It is the default backend and the fallback when a
// managed backend cannot initialize.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/store"
)

// Adapter persists collections in a kv.Store.
type Adapter struct {
	kv  kv.Store
	now func() time.Time
}

// New creates a local adapter over the given kv namespace.
func New(kvStore kv.Store) *Adapter {
	return &Adapter{kv: kvStore, now: time.Now}
}

func (a *Adapter) Save(ctx context.Context, collection string, data store.Record) (store.SaveResult, error) {
	recs, err := a.load(ctx, collection)
	if err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	id := store.Stamp(data, a.now())
	recs = append(recs, data)

	if err := a.persist(ctx, collection, recs); err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return store.SaveResult{ID: id}, nil
}

func (a *Adapter) Get(ctx context.Context, collection string, filters store.Filters) ([]store.Record, error) {
	recs, err := a.load(ctx, collection)
	if err != nil {
		// Read paths degrade to empty, never error.
		return []store.Record{}, nil
	}

	out := make([]store.Record, 0, len(recs))
	for _, rec := range recs {
		if store.Matches(rec, filters) {
			out = append(out, rec)
		}
	}
	store.SortNewestFirst(out)
	return out, nil
}

func (a *Adapter) Update(ctx context.Context, collection string, id string, patch store.Record) error {
	recs, err := a.load(ctx, collection)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	idx := -1
	for i, rec := range recs {
		if recID, _ := rec["id"].(string); recID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}

	// Merge into a copy first; the stored blob only changes if the write
	// below commits.
	merged := make(store.Record, len(recs[idx])+len(patch))
	for k, v := range recs[idx] {
		merged[k] = v
	}
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue // immutable after creation
		}
		merged[k] = v
	}
	merged["updatedAt"] = a.now().UTC().Format(time.RFC3339Nano)
	recs[idx] = merged

	if err := a.persist(ctx, collection, recs); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, collection string, id string) error {
	recs, err := a.load(ctx, collection)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	out := recs[:0]
	for _, rec := range recs {
		if recID, _ := rec["id"].(string); recID != id {
			out = append(out, rec)
		}
	}
	if len(out) == len(recs) {
		return nil // idempotent
	}

	if err := a.persist(ctx, collection, out); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (a *Adapter) load(ctx context.Context, collection string) ([]store.Record, error) {
	data, err := a.kv.Get(ctx, kv.CollectionKey(collection))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return []store.Record{}, nil
		}
		return nil, err
	}

	var recs []store.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("corrupt collection %s: %w", collection, err)
	}
	return recs, nil
}

func (a *Adapter) persist(ctx context.Context, collection string, recs []store.Record) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, kv.CollectionKey(collection), data)
}
