package scraper

import (
	"context"
	"sync"
	"time"
)

// pausePollInterval is how often a paused task rechecks the control flags,
// keeping a stop request observable during a pause.
const pausePollInterval = 200 * time.Millisecond

// Control carries the cooperative pause/stop signals for one crawl run. It
// is passed by reference into every task instead of living in globals. Stop
// is one-way: once requested it is never cleared within a run. Pause is a
// toggle.
type Control struct {
	mu       sync.Mutex
	paused   bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewControl returns a Control with neither flag set.
func NewControl() *Control {
	return &Control{stopCh: make(chan struct{})}
}

// Stop requests a permanent stop. Safe to call multiple times and from any
// goroutine.
func (c *Control) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Stopped reports whether a stop has been requested.
func (c *Control) Stopped() bool {
	select {
	case <-c.stopCh:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when a stop is requested, for wiring the
// stop signal into context cancellation so in-flight I/O is interrupted.
func (c *Control) Done() <-chan struct{} {
	return c.stopCh
}

// Pause suspends task progress at the next checkpoint.
func (c *Control) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Resume clears the pause flag.
func (c *Control) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// Paused reports whether the run is currently paused.
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// WaitWhilePaused blocks while the pause flag is set, polling at a short
// fixed interval. It returns false if a stop was requested or ctx finished
// while waiting, in which case the caller must abandon its task.
func (c *Control) WaitWhilePaused(ctx context.Context) bool {
	for c.Paused() {
		timer := time.NewTimer(pausePollInterval)
		select {
		case <-c.stopCh:
			timer.Stop()
			return false
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
	return !c.Stopped() && ctx.Err() == nil
}
