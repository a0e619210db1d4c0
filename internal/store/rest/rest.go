// Package rest implements the store contract against a remote HTTP API
// speaking the tooldex wire shape: POST /{collection} to create,
// GET /{collection}?{filters} to list, PUT /{collection}/{id} to update,
// DELETE /{collection}/{id} to remove.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/store"
)

const defaultTimeout = 10 * time.Second

// Adapter talks to a remote tooldex-compatible API.
type Adapter struct {
	baseURL string
	client  *http.Client
	tokens  kv.Store // bearer token source; may be nil
}

// New creates a REST adapter for the given API base URL. When tokens is
// non-nil, a stored auth token is attached to every request.
func New(baseURL string, tokens kv.Store) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

func (a *Adapter) Save(ctx context.Context, collection string, data store.Record) (store.SaveResult, error) {
	body, err := a.do(ctx, http.MethodPost, "/"+collection, nil, data)
	if err != nil {
		return store.SaveResult{}, err
	}

	created := normalizeOne(body)
	id, _ := created["id"].(string)
	if id == "" {
		return store.SaveResult{}, fmt.Errorf("%w: response carried no id", store.ErrUnavailable)
	}
	return store.SaveResult{ID: id}, nil
}

func (a *Adapter) Get(ctx context.Context, collection string, filters store.Filters) ([]store.Record, error) {
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	path := "/" + collection
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	body, err := a.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		// Read paths degrade to empty.
		return []store.Record{}, nil
	}

	recs := normalizeList(body)
	store.SortNewestFirst(recs)
	return recs, nil
}

func (a *Adapter) Update(ctx context.Context, collection string, id string, patch store.Record) error {
	_, err := a.do(ctx, http.MethodPut, specializedPath(collection, id, patch), nil, patch)
	return err
}

func (a *Adapter) Delete(ctx context.Context, collection string, id string) error {
	_, err := a.do(ctx, http.MethodDelete, "/"+collection+"/"+id, nil, nil)
	if errors.Is(err, store.ErrNotFound) {
		return nil // idempotent
	}
	return err
}

// specializedPath routes single-field patches onto their dedicated
// endpoints: the helpful counter for reviews, the status field for
// submissions. Everything else uses the generic update route.
func specializedPath(collection, id string, patch store.Record) string {
	base := "/" + collection + "/" + id
	if len(patch) != 1 {
		return base
	}
	if collection == "reviews" {
		if _, ok := patch["helpful"]; ok {
			return base + "/helpful"
		}
	}
	if collection == "submissions" {
		if _, ok := patch["status"]; ok {
			return base + "/status"
		}
	}
	return base
}

func (a *Adapter) do(ctx context.Context, method, path string, _ url.Values, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := a.bearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w (http 404)", store.ErrNotFound)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: http %d: %s", store.ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

func (a *Adapter) bearerToken(ctx context.Context) string {
	if a.tokens == nil {
		return ""
	}
	data, err := a.tokens.Get(ctx, kv.KeyAuthToken)
	if err != nil {
		return ""
	}
	var token string
	if json.Unmarshal(data, &token) == nil {
		return token
	}
	return string(data)
}

// ─────────────────────────────────────────────────────────────────
// Response envelope normalization
// ─────────────────────────────────────────────────────────────────

// normalizeList accepts a bare array, a {data:[...]} envelope, or a single
// object, and returns records with any backend id field aliased to "id".
func normalizeList(raw json.RawMessage) []store.Record {
	var arr []store.Record
	if json.Unmarshal(raw, &arr) == nil {
		return aliasAll(arr)
	}

	var envelope struct {
		Data []store.Record `json:"data"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Data != nil {
		return aliasAll(envelope.Data)
	}

	if one := normalizeOne(raw); len(one) > 0 {
		return []store.Record{one}
	}
	return []store.Record{}
}

func normalizeOne(raw json.RawMessage) store.Record {
	var rec store.Record
	if json.Unmarshal(raw, &rec) != nil {
		return store.Record{}
	}
	if inner, ok := rec["data"].(map[string]any); ok {
		rec = inner
	}
	return aliasID(rec)
}

// aliasID copies a backend-issued "_id" into "id" when "id" is absent.
func aliasID(rec store.Record) store.Record {
	if rec == nil {
		return rec
	}
	if _, ok := rec["id"]; !ok {
		if mongoID, ok := rec["_id"].(string); ok {
			rec["id"] = mongoID
		}
	}
	return rec
}

func aliasAll(recs []store.Record) []store.Record {
	for i := range recs {
		recs[i] = aliasID(recs[i])
	}
	return recs
}
