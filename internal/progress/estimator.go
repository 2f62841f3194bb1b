// Package progress tracks crawl completion counts and estimates the
// remaining time from the average pace so far.
package progress

import (
	"sync"
	"time"
)

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// Snapshot is a point-in-time view of crawl progress.
type Snapshot struct {
	Done    int
	Total   int
	Elapsed time.Duration
	// Remaining and Finish are estimates from the average time per URL.
	// Known is false until at least one completion has been observed.
	Remaining time.Duration
	Finish    time.Time
	Known     bool
}

// Estimator accumulates completion counts for one crawl run. It is only
// mutated from the orchestrator's single-threaded completion loop, but
// snapshots may be taken concurrently by the presentation layer, so a mutex
// guards the state anyway.
type Estimator struct {
	mu        sync.Mutex
	clock     Clock
	total     int
	done      int
	startedAt time.Time
}

// NewEstimator builds an Estimator using clock for timestamps.
func NewEstimator(clock Clock) *Estimator {
	return &Estimator{clock: clock}
}

// Start resets the estimator for a run over total URLs.
func (e *Estimator) Start(total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total = total
	e.done = 0
	e.startedAt = e.clock.Now()
}

// Observe records that done tasks have completed so far and returns the
// updated snapshot.
func (e *Estimator) Observe(done int) Snapshot {
	e.mu.Lock()
	e.done = done
	e.mu.Unlock()
	return e.Snapshot()
}

// Snapshot returns the current progress view.
func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	snap := Snapshot{
		Done:    e.done,
		Total:   e.total,
		Elapsed: now.Sub(e.startedAt),
	}
	if e.done <= 0 || e.startedAt.IsZero() {
		return snap
	}
	perURL := snap.Elapsed / time.Duration(e.done)
	remaining := max(e.total-e.done, 0)
	snap.Remaining = perURL * time.Duration(remaining)
	snap.Finish = now.Add(snap.Remaining)
	snap.Known = true
	return snap
}
