// Package prefs persists filter preferences and encodes them into URL
// query strings so a filtered view can be bookmarked and shared. The kv
// namespace remembers the last-used dimensions across sessions; the URL,
// when present, wins over the remembered state.
package prefs

import (
	"context"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
)

// Manager mirrors the five filter dimensions into individual kv keys.
// Each dimension is an independent write so a partial failure loses at
// most one dimension, never the whole state.
type Manager struct {
	kv kv.Store
}

func New(kvStore kv.Store) *Manager {
	return &Manager{kv: kvStore}
}

// dimension keys in storage order: search, category, pricing, popularity,
// sort. Page is deliberately not persisted; a restored session starts on
// page 1.
var dimensionKeys = []string{
	kv.KeyFilterSearch,
	kv.KeyFilterCat,
	kv.KeyFilterPricing,
	kv.KeyFilterPop,
	kv.KeyFilterSort,
}

func dimensions(s domain.FilterState) []string {
	return []string{s.SearchTerm, s.Category, s.Pricing, s.Popularity, s.Sort}
}

// Save writes every dimension of s. The first write error is returned but
// the remaining dimensions are still attempted.
func (m *Manager) Save(ctx context.Context, s domain.FilterState) error {
	s = s.Normalize()
	values := dimensions(s)

	var firstErr error
	for i, key := range dimensionKeys {
		if err := m.kv.Set(ctx, key, []byte(values[i])); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Load rebuilds the remembered state. Missing or unreadable dimensions
// fall back to their defaults individually.
func (m *Manager) Load(ctx context.Context) domain.FilterState {
	s := domain.DefaultFilters()
	targets := []*string{&s.SearchTerm, &s.Category, &s.Pricing, &s.Popularity, &s.Sort}

	for i, key := range dimensionKeys {
		raw, err := m.kv.Get(ctx, key)
		if err != nil {
			continue
		}
		*targets[i] = string(raw)
	}
	return s.Normalize()
}

// Clear removes every persisted dimension. Each delete is independent.
func (m *Manager) Clear(ctx context.Context) error {
	var firstErr error
	for _, key := range dimensionKeys {
		if err := m.kv.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Resolve merges a request's query values with the remembered state. A URL
// carrying any filter parameter wins wholesale; otherwise the remembered
// state is used.
func (m *Manager) Resolve(ctx context.Context, query map[string][]string) domain.FilterState {
	if s, ok := Decode(query); ok {
		return s
	}
	return m.Load(ctx)
}
