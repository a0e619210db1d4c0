// Package collections holds the directory's user-generated content
// services: tool reviews, catalog submissions, and the assistant chat
// transcript. Reviews and submissions live behind the store adapter, the
// transcript in the kv namespace.
package collections

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tooldex/tooldex/internal/store"
)

// ErrInvalidInput marks validation failures. Handlers map it to a 400.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// toRecord flattens a typed value into an adapter record through JSON.
func toRecord(v any) (store.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// fromRecord decodes an adapter record into out. Records that do not fit
// the target shape decode to zero fields rather than erroring; persisted
// data may predate the current schema.
func fromRecord(rec store.Record, out any) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = json.Unmarshal(raw, out)
}
