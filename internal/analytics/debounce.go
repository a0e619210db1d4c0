package analytics

import (
	"sync"
	"time"
)

// SearchDebounceDelay is how long typing must pause before a search event
// is recorded.
const SearchDebounceDelay = 300 * time.Millisecond

// SearchDebouncer coalesces keystroke-level search updates. Each call
// replaces the pending one, so only the final state of a typing burst
// fires.
type SearchDebouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewSearchDebouncer() *SearchDebouncer {
	return &SearchDebouncer{delay: SearchDebounceDelay}
}

// Trigger schedules fn after the delay, cancelling any pending call.
func (d *SearchDebouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call. Safe to call repeatedly.
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
