package search

import (
	"sync"
	"time"
)

// Rebuilder coalesces bursts of change notifications into a single index
// rebuild. Each Trigger resets a trailing timer; the rebuild function runs
// once the burst goes quiet for the configured interval.
type Rebuilder struct {
	interval time.Duration
	rebuild  func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewRebuilder creates a debounced rebuilder. A non-positive interval
// defaults to 300ms, roughly one typing pause.
func NewRebuilder(interval time.Duration, rebuild func()) *Rebuilder {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &Rebuilder{interval: interval, rebuild: rebuild}
}

// Trigger schedules a rebuild after the quiet interval, extending any
// pending one.
func (r *Rebuilder) Trigger() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	if r.timer != nil && r.timer.Stop() {
		r.wg.Done()
	}

	r.wg.Add(1)
	r.timer = time.AfterFunc(r.interval, func() {
		defer r.wg.Done()

		r.mu.Lock()
		stopped := r.stopped
		r.mu.Unlock()
		if !stopped {
			r.rebuild()
		}
	})
}

// Flush runs a pending rebuild immediately instead of waiting out the
// interval. No-op when nothing is pending.
func (r *Rebuilder) Flush() {
	r.mu.Lock()
	if r.stopped || r.timer == nil || !r.timer.Stop() {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()

	r.rebuild()
	r.wg.Done()
}

// Close stops accepting triggers and waits for any in-flight rebuild.
func (r *Rebuilder) Close() {
	r.mu.Lock()
	r.stopped = true
	if r.timer != nil && r.timer.Stop() {
		r.wg.Done()
	}
	r.mu.Unlock()

	r.wg.Wait()
}
