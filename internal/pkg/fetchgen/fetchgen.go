// Package fetchgen stamps asynchronous fetches with a generation number so a
// result is only applied when no newer fetch has started since.
package fetchgen

import (
	"context"
	"sync"
)

// Tracker hands out generations. Starting a new one cancels the previous
// in-flight context. The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin starts a new generation derived from parent and cancels the one before it.
func (t *Tracker) Begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	t.cancel = cancel
	return ctx, t.gen
}

// Current returns the latest generation handed out.
func (t *Tracker) Current() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Commit runs apply only when gen is still the latest generation, and reports
// whether it did. apply runs under the tracker lock so two commits never interleave.
func (t *Tracker) Commit(gen uint64, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	apply()
	return true
}

// Finish releases the context of gen if it is still current.
func (t *Tracker) Finish(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen == t.gen && t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Stop cancels whatever generation is in flight and invalidates it.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}
