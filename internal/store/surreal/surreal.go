// Package surreal implements the store contract on a SurrealDB instance
// over its websocket RPC. Each collection maps to a table and filters
// become WHERE predicates. Initialization is deferred and optional: if the
// server is unreachable or credentials are rejected, New fails fast and
// the factory substitutes the local adapter.
package surreal

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/tooldex/tooldex/internal/store"
)

var fieldPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Config holds SurrealDB connection settings.
type Config struct {
	URL       string // ex: "ws://localhost:8000/rpc"
	User      string
	Password  string
	Namespace string
	Database  string
}

// Adapter persists collections in SurrealDB tables.
type Adapter struct {
	db  *surrealdb.DB
	now func() time.Time
}

// New connects, authenticates, and selects the namespace/database.
func New(cfg Config) (*Adapter, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("surreal connect error: %w", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.User, "pass": cfg.Password}); err != nil {
		db.Close()
		return nil, fmt.Errorf("surreal signin error: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		db.Close()
		return nil, fmt.Errorf("surreal use error: %w", err)
	}
	return &Adapter{db: db, now: time.Now}, nil
}

// Close shuts the websocket down.
func (a *Adapter) Close() {
	a.db.Close()
}

// thing builds a SurrealDB record pointer. Record ids are angle-bracket
// escaped so UUIDs with hyphens survive.
func thing(collection, id string) string {
	return fmt.Sprintf("%s:⟨%s⟩", collection, id)
}

// stripThing turns "reviews:⟨abc⟩" back into "abc".
func stripThing(raw string) string {
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		raw = raw[i+1:]
	}
	raw = strings.TrimPrefix(raw, "⟨")
	return strings.TrimSuffix(raw, "⟩")
}

func (a *Adapter) Save(ctx context.Context, collection string, data store.Record) (store.SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	id := store.Stamp(data, a.now())
	payload := make(map[string]any, len(data))
	for k, v := range data {
		if k == "id" {
			continue // the record pointer carries the id
		}
		payload[k] = v
	}

	if _, err := a.db.Create(thing(collection, id), payload); err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return store.SaveResult{ID: id}, nil
}

func (a *Adapter) Get(ctx context.Context, collection string, filters store.Filters) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return []store.Record{}, nil
	}

	sql := "SELECT * FROM type::table($tb)"
	vars := map[string]any{"tb": collection}
	var where []string
	for k, v := range filters {
		if !fieldPattern.MatchString(k) {
			return []store.Record{}, nil
		}
		// Booleans are stored typed; string filter values must follow.
		switch v {
		case "true":
			vars["w_"+k] = true
		case "false":
			vars["w_"+k] = false
		default:
			vars["w_"+k] = v
		}
		where = append(where, fmt.Sprintf("%s = $w_%s", k, k))
	}
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY createdAt DESC"

	res, err := a.db.Query(sql, vars)
	if err != nil {
		return []store.Record{}, nil
	}

	recs := decodeQueryResult(res)
	// Callers expect newest first even when the server ordering differs.
	store.SortNewestFirst(recs)
	return recs, nil
}

func (a *Adapter) Update(ctx context.Context, collection string, id string, patch store.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	// Change merges into the existing record server-side.
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		clean[k] = v
	}
	clean["updatedAt"] = a.now().UTC().Format(time.RFC3339Nano)

	// A Change against an absent record would upsert; probe first.
	if _, err := a.db.Select(thing(collection, id)); err != nil {
		return store.ErrNotFound
	}
	if _, err := a.db.Change(thing(collection, id), clean); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, collection string, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	// SurrealDB deletes are idempotent already.
	if _, err := a.db.Delete(thing(collection, id)); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

// decodeQueryResult unpacks the RPC query envelope
// ([{"result": [...], "status": "OK"}]) into records, aliasing the
// record pointer back to a plain id.
func decodeQueryResult(res any) []store.Record {
	raw, err := json.Marshal(res)
	if err != nil {
		return []store.Record{}
	}

	var envelope []struct {
		Result []store.Record `json:"result"`
		Status string         `json:"status"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope) == 0 {
		return []store.Record{}
	}

	recs := envelope[0].Result
	for _, rec := range recs {
		if full, ok := rec["id"].(string); ok {
			rec["id"] = stripThing(full)
		}
	}
	if recs == nil {
		recs = []store.Record{}
	}
	return recs
}
