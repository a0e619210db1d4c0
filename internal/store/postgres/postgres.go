// Package postgres implements the store contract on a Postgres database.
// Every collection shares one records table keyed by (collection, id) with
// the record body as jsonb, so new collections need no schema changes.
// Filters become jsonb equality predicates.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tooldex/tooldex/internal/store"
	"github.com/tooldex/tooldex/internal/store/postgres/migrations"
)

// filterKeyPattern guards against filter keys reaching SQL text. Keys come
// from internal callers, but the jsonb path is interpolated so only simple
// identifiers are accepted.
var filterKeyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Adapter persists collections in a Postgres records table.
type Adapter struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the database, verifies connectivity, and applies embedded
// migrations. Any failure here is returned immediately so the factory can
// fall back to the local adapter.
func New(ctx context.Context, dsn string) (*Adapter, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Adapter{db: db, now: time.Now}, nil
}

// Close releases the connection pool.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Save(ctx context.Context, collection string, data store.Record) (store.SaveResult, error) {
	now := a.now()
	id := store.Stamp(data, now)

	body, err := json.Marshal(data)
	if err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	query := `INSERT INTO records (collection, id, body, created_at)
	          VALUES ($1, $2, $3, $4)`
	if _, err := a.db.ExecContext(ctx, query, collection, id, body, now.UTC()); err != nil {
		return store.SaveResult{}, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return store.SaveResult{ID: id}, nil
}

func (a *Adapter) Get(ctx context.Context, collection string, filters store.Filters) ([]store.Record, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT body FROM records WHERE collection = $1`)
	args := []any{collection}

	for k, v := range filters {
		if !filterKeyPattern.MatchString(k) {
			return []store.Record{}, nil
		}
		args = append(args, v)
		fmt.Fprintf(&sb, ` AND body->>'%s' = $%d`, k, len(args))
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	rows, err := a.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		// Read paths degrade to empty.
		return []store.Record{}, nil
	}
	defer func() { _ = rows.Close() }()

	var out []store.Record
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			continue
		}
		var rec store.Record
		if err := json.Unmarshal(body, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	if out == nil {
		out = []store.Record{}
	}
	return out, nil
}

func (a *Adapter) Update(ctx context.Context, collection string, id string, patch store.Record) error {
	stamped := a.now().UTC()

	// Strip immutable fields, then merge server-side so a lost race still
	// yields last-write-wins on whole fields rather than a torn body.
	clean := make(store.Record, len(patch))
	for k, v := range patch {
		if k == "id" || k == "createdAt" {
			continue
		}
		clean[k] = v
	}
	clean["updatedAt"] = stamped.Format(time.RFC3339Nano)

	body, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	query := `UPDATE records
	          SET body = body || $3::jsonb, updated_at = $4
	          WHERE collection = $1 AND id = $2`
	res, err := a.db.ExecContext(ctx, query, collection, id, body, stamped)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (a *Adapter) Delete(ctx context.Context, collection string, id string) error {
	query := `DELETE FROM records WHERE collection = $1 AND id = $2`
	if _, err := a.db.ExecContext(ctx, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}
