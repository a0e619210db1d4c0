package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/store"
)

func newAdapter(t *testing.T) *Adapter {
	t.Helper()
	return New(kv.NewMemory())
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	res, err := a.Save(ctx, "reviews", store.Record{"toolId": "1", "rating": 5})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)

	recs, err := a.Get(ctx, "reviews", nil)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, res.ID, recs[0]["id"])
	assert.NotEmpty(t, recs[0]["createdAt"])
	assert.Equal(t, "1", recs[0]["toolId"])
}

func TestGetFiltersAndOrder(t *testing.T) {
	a := newAdapter(t)
	a.now = stepClock(t)
	ctx := context.Background()

	_, err := a.Save(ctx, "reviews", store.Record{"toolId": "1", "comment": "oldest"})
	require.NoError(t, err)
	_, err = a.Save(ctx, "reviews", store.Record{"toolId": "2", "comment": "other tool"})
	require.NoError(t, err)
	_, err = a.Save(ctx, "reviews", store.Record{"toolId": "1", "comment": "newest"})
	require.NoError(t, err)

	recs, err := a.Get(ctx, "reviews", store.Filters{"toolId": "1"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	// createdAt descending
	assert.Equal(t, "newest", recs[0]["comment"])
	assert.Equal(t, "oldest", recs[1]["comment"])
}

func TestGetMissingCollectionIsEmpty(t *testing.T) {
	a := newAdapter(t)

	recs, err := a.Get(context.Background(), "nothing-here", nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestUpdateMergesAndStamps(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	res, err := a.Save(ctx, "reviews", store.Record{"toolId": "1", "helpful": float64(0), "comment": "hi"})
	require.NoError(t, err)

	require.NoError(t, a.Update(ctx, "reviews", res.ID, store.Record{"helpful": float64(1)}))

	recs, _ := a.Get(ctx, "reviews", nil)
	require.Len(t, recs, 1)
	assert.Equal(t, float64(1), recs[0]["helpful"])
	assert.Equal(t, "hi", recs[0]["comment"], "unpatched fields survive")
	firstStamp := recs[0]["updatedAt"]
	require.NotEmpty(t, firstStamp)

	// Applying the same patch again restamps updatedAt but changes nothing else.
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, a.Update(ctx, "reviews", res.ID, store.Record{"helpful": float64(1)}))
	recs, _ = a.Get(ctx, "reviews", nil)
	assert.Equal(t, float64(1), recs[0]["helpful"])
	assert.NotEqual(t, firstStamp, recs[0]["updatedAt"])
}

func TestUpdateMissingRecord(t *testing.T) {
	a := newAdapter(t)

	err := a.Update(context.Background(), "reviews", "no-such-id", store.Record{"x": 1})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateCannotChangeIdentity(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	res, _ := a.Save(ctx, "reviews", store.Record{"toolId": "1"})
	require.NoError(t, a.Update(ctx, "reviews", res.ID, store.Record{"id": "hijacked", "createdAt": "2001-01-01T00:00:00Z"}))

	recs, _ := a.Get(ctx, "reviews", nil)
	assert.Equal(t, res.ID, recs[0]["id"])
	assert.NotEqual(t, "2001-01-01T00:00:00Z", recs[0]["createdAt"])
}

func TestDeleteIsIdempotent(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	res, _ := a.Save(ctx, "reviews", store.Record{"toolId": "1"})
	require.NoError(t, a.Delete(ctx, "reviews", res.ID))
	require.NoError(t, a.Delete(ctx, "reviews", res.ID), "second delete still succeeds")
	require.NoError(t, a.Delete(ctx, "reviews", "never-existed"))

	recs, _ := a.Get(ctx, "reviews", nil)
	assert.Empty(t, recs)
}

func TestPersistsAcrossAdapterInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fileKV, err := kv.NewFile(dir)
	require.NoError(t, err)

	first := New(fileKV)
	res, err := first.Save(ctx, "reviews", store.Record{"toolId": "7", "comment": "sticky"})
	require.NoError(t, err)

	// Fresh adapter over a fresh kv handle on the same directory.
	fileKV2, err := kv.NewFile(dir)
	require.NoError(t, err)
	second := New(fileKV2)

	recs, err := second.Get(ctx, "reviews", store.Filters{"toolId": "7"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, res.ID, recs[0]["id"])
	assert.Equal(t, "sticky", recs[0]["comment"])
}

func TestCorruptCollectionDegradesReads(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), kv.CollectionKey("reviews"), []byte("{not json")))
	a := New(mem)

	recs, err := a.Get(context.Background(), "reviews", nil)
	require.NoError(t, err, "reads never propagate internal failures")
	assert.Empty(t, recs)

	_, err = a.Save(context.Background(), "reviews", store.Record{"x": 1})
	assert.Error(t, err, "writes must surface the corruption")
	assert.True(t, errors.Is(err, store.ErrUnavailable))
}

// stepClock returns a clock advancing one second per call, so createdAt
// ordering is deterministic.
func stepClock(t *testing.T) func() time.Time {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}
