// Package kv provides the flat key-value namespace backing everything
// tooldex persists locally: collections, session markers, filter
// preferences, favorites, and the analytics ring buffers.
//
// The namespace is a single shared mutable map of string keys to JSON
// blobs. There are no transactions across keys; clearing five filter keys
// is five independent writes. Concurrent writers from multiple processes
// are not coordinated — an accepted limitation, matching the single-tab
// assumption of the original design.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is a flat string-keyed blob namespace.
type Store interface {
	// Get returns the blob at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the blob at key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists keys with the given prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
