package domain

import (
	"sync"
	"sync/atomic"
)

// AddProgress tracks the running counters of one add batch. Created per
// batch, discarded after the batch's terminal event. Total grows as
// directories and playlist files expand: each expanded container replaces
// its own placeholder entry with the count of its contents.
type AddProgress struct {
	added atomic.Int64
	total atomic.Int64

	mu       sync.Mutex
	failures []AddFailure

	autoplayFired atomic.Bool
}

// NewAddProgress creates a progress tracker seeded with the number of
// top-level inputs.
func NewAddProgress(inputs int) *AddProgress {
	p := &AddProgress{}
	p.total.Store(int64(inputs))
	return p
}

// TrackAdded increments the added counter and returns the new
// (added, total) pair.
func (p *AddProgress) TrackAdded() (added, total int) {
	a := p.added.Add(1)
	return int(a), int(p.total.Load())
}

// Expanded adjusts the total after a container expanded into n entries:
// the container's placeholder entry is replaced by its contents.
func (p *AddProgress) Expanded(n int) {
	p.total.Add(int64(n) - 1)
}

// Skipped removes one entry from the total without counting it as added,
// for duplicates and failed inputs.
func (p *AddProgress) Skipped() {
	p.total.Add(-1)
}

// Snapshot returns the current (added, total) pair.
func (p *AddProgress) Snapshot() (added, total int) {
	return int(p.added.Load()), int(p.total.Load())
}

// Fail records a failure for one input path.
func (p *AddProgress) Fail(path string, err error) {
	p.mu.Lock()
	p.failures = append(p.failures, AddFailure{Path: path, Err: err})
	p.mu.Unlock()
}

// Failures returns a copy of the accumulated failure records.
func (p *AddProgress) Failures() []AddFailure {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]AddFailure, len(p.failures))
	copy(out, p.failures)
	return out
}

// FireAutoplay reports whether autoplay may fire now. It returns true
// exactly once per batch.
func (p *AddProgress) FireAutoplay() bool {
	return p.autoplayFired.CompareAndSwap(false, true)
}
