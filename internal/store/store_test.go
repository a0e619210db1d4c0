package store

import (
	"testing"
	"time"
)

func TestStampAssignsOnlyMissing(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rec := Record{"x": 1}
	id := Stamp(rec, now)
	if id == "" || rec["id"] != id {
		t.Fatalf("Stamp() id = %q, record id = %v", id, rec["id"])
	}
	if rec["createdAt"] != now.Format(time.RFC3339Nano) {
		t.Errorf("createdAt = %v", rec["createdAt"])
	}

	// Pre-existing identity is respected.
	rec = Record{"id": "keep-me", "createdAt": "2020-01-01T00:00:00Z"}
	if got := Stamp(rec, now); got != "keep-me" {
		t.Errorf("Stamp() = %q, want keep-me", got)
	}
	if rec["createdAt"] != "2020-01-01T00:00:00Z" {
		t.Errorf("Stamp() overwrote createdAt: %v", rec["createdAt"])
	}
}

func TestMatches(t *testing.T) {
	rec := Record{"toolId": "7", "status": "pending", "rating": float64(5)}

	tests := []struct {
		name    string
		filters Filters
		want    bool
	}{
		{"nil filters match", nil, true},
		{"empty filters match", Filters{}, true},
		{"single match", Filters{"toolId": "7"}, true},
		{"all must match", Filters{"toolId": "7", "status": "pending"}, true},
		{"one mismatch fails", Filters{"toolId": "7", "status": "approved"}, false},
		{"absent key fails", Filters{"userId": "u1"}, false},
		{"non-string value compared as text", Filters{"rating": "5"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(rec, tt.filters); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.filters, got, tt.want)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	recs := []Record{
		{"id": "a", "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "c"}, // no timestamp sinks to the end
		{"id": "b", "createdAt": "2024-03-01T00:00:00Z"},
	}

	SortNewestFirst(recs)

	want := []string{"b", "a", "c"}
	for i, id := range want {
		if recs[i]["id"] != id {
			t.Errorf("recs[%d] = %v, want %s", i, recs[i]["id"], id)
		}
	}
}
