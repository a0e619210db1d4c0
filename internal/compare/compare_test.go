package compare

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/tooldex/tooldex/internal/kv"
)

func TestFavoritesToggle(t *testing.T) {
	ctx := context.Background()
	fav := NewFavorites(kv.NewMemory())

	ids, added, err := fav.Toggle(ctx, "midjourney")
	if err != nil || !added {
		t.Fatalf("Toggle() = %v, %v, %v", ids, added, err)
	}
	if !fav.Contains(ctx, "midjourney") {
		t.Error("Contains() = false after add")
	}

	ids, added, err = fav.Toggle(ctx, "midjourney")
	if err != nil || added || len(ids) != 0 {
		t.Errorf("second Toggle() = %v, %v, %v, want removal", ids, added, err)
	}
}

func TestFavoritesUnbounded(t *testing.T) {
	ctx := context.Background()
	fav := NewFavorites(kv.NewMemory())

	for i := 0; i < 20; i++ {
		if _, err := fav.Add(ctx, fmt.Sprintf("tool-%02d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if got := fav.IDs(ctx); len(got) != 20 {
		t.Errorf("len(IDs()) = %d, want 20", len(got))
	}
}

func TestComparisonCap(t *testing.T) {
	ctx := context.Background()
	tray := NewComparison(kv.NewMemory())

	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := tray.Add(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	// The fifth tool does not go in and does not error.
	ids, err := tray.Add(ctx, "e")
	if err != nil {
		t.Fatalf("Add() past cap error = %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c", "d"}) {
		t.Errorf("IDs() = %v", ids)
	}

	// Removing one opens a slot.
	if _, err := tray.Remove(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	ids, err = tray.Add(ctx, "e")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "c", "d", "e"}) {
		t.Errorf("IDs() after refill = %v", ids)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tray := NewComparison(kv.NewMemory())

	if _, err := tray.Add(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	ids, err := tray.Add(ctx, "a")
	if err != nil || len(ids) != 1 {
		t.Errorf("duplicate Add() = %v, %v", ids, err)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	fav := NewFavorites(kv.NewMemory())

	ids, err := fav.Remove(ctx, "ghost")
	if err != nil || len(ids) != 0 {
		t.Errorf("Remove(missing) = %v, %v", ids, err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	fav := NewFavorites(kv.NewMemory())

	if _, err := fav.Add(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := fav.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := fav.IDs(ctx); len(got) != 0 {
		t.Errorf("IDs() after Clear = %v", got)
	}

	// Clearing an empty list is fine.
	if err := fav.Clear(ctx); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestListsAreIndependent(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	fav := NewFavorites(mem)
	tray := NewComparison(mem)

	if _, err := fav.Add(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if tray.Contains(ctx, "a") {
		t.Error("comparison sees favorites data")
	}
}
