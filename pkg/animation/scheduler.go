// Package animation provides the per-mount frame scheduler and the shared
// timeline engine handed to effect components.
//
// Unlike a process-global frame loop, every mount owns a dedicated
// [Scheduler]. Disposing the scheduler during teardown guarantees that no
// per-frame callback belonging to that mount can fire again, even if an
// effect forgot to stop its own tickers.
package animation

import (
	"sync"
	"time"
)

// Ticker calls a callback on each frame while active.
//
// Tickers are created from a [Scheduler] and are advanced only by that
// scheduler's Step. The callback receives the total time the ticker has
// been active.
type Ticker struct {
	sched    *Scheduler
	callback func(elapsed time.Duration)
	isActive bool
	elapsed  time.Duration
}

// Start activates the ticker. Starting a ticker whose scheduler has been
// disposed is a no-op.
func (t *Ticker) Start() {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || t.isActive {
		return
	}
	t.isActive = true
	t.elapsed = 0
	s.active[t] = struct{}{}
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if !t.isActive {
		return
	}
	t.isActive = false
	delete(s.active, t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.isActive
}

// Elapsed returns the accumulated active time.
func (t *Ticker) Elapsed() time.Duration {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	return t.elapsed
}

// Scheduler drives the per-frame callbacks of a single mount.
//
// Step advances every active ticker by a fixed delta, which keeps frame
// timing deterministic for headless rendering and tests. Dispose stops all
// tickers permanently.
type Scheduler struct {
	mu       sync.Mutex
	active   map[*Ticker]struct{}
	disposed bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{active: make(map[*Ticker]struct{})}
}

// NewTicker creates a ticker bound to this scheduler. The ticker starts
// stopped.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{sched: s, callback: callback}
}

// Step advances all active tickers by dt. Callbacks run outside the
// scheduler lock so they may start or stop tickers. A disposed scheduler
// steps nothing.
func (s *Scheduler) Step(dt time.Duration) {
	s.mu.Lock()
	if s.disposed || len(s.active) == 0 {
		s.mu.Unlock()
		return
	}
	tickers := make([]*Ticker, 0, len(s.active))
	for t := range s.active {
		t.elapsed += dt
		tickers = append(tickers, t)
	}
	s.mu.Unlock()

	for _, t := range tickers {
		s.mu.Lock()
		run := t.isActive && !s.disposed
		elapsed := t.elapsed
		s.mu.Unlock()
		if run && t.callback != nil {
			t.callback(elapsed)
		}
	}
}

// ActiveCount returns the number of running tickers.
func (s *Scheduler) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Dispose stops every ticker and marks the scheduler dead. Tickers created
// or started afterwards never run. Dispose is idempotent.
func (s *Scheduler) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	for t := range s.active {
		t.isActive = false
	}
	s.active = nil
}

// Disposed reports whether Dispose has run.
func (s *Scheduler) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
