package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
	"github.com/tooldex/tooldex/internal/kv"
	"github.com/tooldex/tooldex/internal/logger"
	"github.com/tooldex/tooldex/internal/store"
	"github.com/tooldex/tooldex/internal/store/local"
)

func TestGarbageCollectorCollect(t *testing.T) {
	ctx := context.Background()
	adapter := local.New(kv.NewMemory())
	now := time.Now()

	seed := func(collection string, rec store.Record, age time.Duration) {
		t.Helper()
		rec["createdAt"] = now.Add(-age).UTC().Format(time.RFC3339Nano)
		if _, err := adapter.Save(ctx, collection, rec); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	// Submissions: one rejected long ago, one rejected recently, one old
	// but still pending.
	seed(domain.CollectionSubmissions,
		store.Record{"name": "old-rejected", "status": domain.StatusRejected}, 35*24*time.Hour)
	seed(domain.CollectionSubmissions,
		store.Record{"name": "new-rejected", "status": domain.StatusRejected}, 10*24*time.Hour)
	seed(domain.CollectionSubmissions,
		store.Record{"name": "old-pending", "status": domain.StatusPending}, 40*24*time.Hour)

	// Reviews: one hidden long ago, one old but visible.
	seed(domain.CollectionReviews,
		store.Record{"name": "old-hidden", "visible": false}, 40*24*time.Hour)
	seed(domain.CollectionReviews,
		store.Record{"name": "old-visible", "visible": true}, 40*24*time.Hour)

	gc := NewGarbageCollector(adapter, logger.NewNop(), 24*time.Hour, 30*24*time.Hour, nil)
	if err := gc.Collect(ctx); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	subs, err := adapter.Get(ctx, domain.CollectionSubmissions, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Errorf("submissions remaining = %d, want 2", len(subs))
	}
	for _, rec := range subs {
		if rec["name"] == "old-rejected" {
			t.Error("old rejected submission survived collection")
		}
	}

	reviews, err := adapter.Get(ctx, domain.CollectionReviews, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 || reviews[0]["name"] != "old-visible" {
		t.Errorf("reviews remaining = %+v, want only old-visible", reviews)
	}
}

func TestGarbageCollectorThresholdDefault(t *testing.T) {
	gc := NewGarbageCollector(local.New(kv.NewMemory()), logger.NewNop(), time.Hour, 0, nil)
	if gc.threshold != DefaultGCThreshold {
		t.Errorf("threshold = %v, want %v", gc.threshold, DefaultGCThreshold)
	}
}

func TestRecordAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  store.Record
		want time.Duration
	}{
		{
			"updatedAt preferred",
			store.Record{
				"createdAt": now.Add(-48 * time.Hour).Format(time.RFC3339Nano),
				"updatedAt": now.Add(-24 * time.Hour).Format(time.RFC3339Nano),
			},
			24 * time.Hour,
		},
		{
			"createdAt fallback",
			store.Record{"createdAt": now.Add(-72 * time.Hour).Format(time.RFC3339Nano)},
			72 * time.Hour,
		},
		{"no timestamps", store.Record{"name": "x"}, 0},
		{"garbage timestamp", store.Record{"createdAt": "yesterday"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recordAge(tt.rec, now); got != tt.want {
				t.Errorf("recordAge() = %v, want %v", got, tt.want)
			}
		})
	}
}
