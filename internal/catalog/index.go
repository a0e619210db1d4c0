package catalog

import (
	"sort"
	"sync"
	"time"

	"github.com/tooldex/tooldex/internal/domain"
)

// Index holds the in-memory catalog snapshot queried by the pipeline.
// The catalog is replaced wholesale on reload, never mutated in place.
type Index struct {
	mu         sync.RWMutex
	tools      map[int]*domain.Tool
	ordered    []*domain.Tool // dataset order
	lastReload time.Time
}

// NewIndex creates an empty catalog index.
func NewIndex() *Index {
	return &Index{
		tools: make(map[int]*domain.Tool),
	}
}

// Replace swaps in a new catalog snapshot.
func (idx *Index) Replace(tools []*domain.Tool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.tools = make(map[int]*domain.Tool, len(tools))
	idx.ordered = make([]*domain.Tool, len(tools))
	copy(idx.ordered, tools)
	for _, t := range tools {
		idx.tools[t.ID] = t
	}
	idx.lastReload = time.Now()
}

// All returns the current snapshot in dataset order. The returned slice is
// a copy; the tools it points to are shared and must not be mutated.
func (idx *Index) All() []*domain.Tool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Tool, len(idx.ordered))
	copy(out, idx.ordered)
	return out
}

// Get retrieves a tool by ID.
func (idx *Index) Get(id int) (*domain.Tool, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	t, ok := idx.tools[id]
	return t, ok
}

// Categories returns the distinct categories present, sorted.
func (idx *Index) Categories() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, t := range idx.ordered {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Count returns the number of tools in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.ordered)
}

// LastReload returns the timestamp of the last snapshot replacement.
func (idx *Index) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
