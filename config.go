package smtx

import (
	"runtime"
	"time"
)

// ============================================================================
// Configuration
// ============================================================================

// config carries the waiting-strategy tuning of one SMutex. Locks built by
// New share nothing; the zero-value SMutex reads the package defaults.
type config struct {
	// nextSpins advances the spin count between backoff iterations.
	// The count always starts at 1.
	nextSpins func(int) int

	// maxWriterWaitSpins caps the spin count while a reader waits for the
	// writer flag to clear.
	maxWriterWaitSpins int

	// maxReaderWaitSpins caps the spin count on the exclusive path, both
	// while racing for the flag and while draining admitted readers.
	maxReaderWaitSpins int

	// yieldThreshold is the spin count past which a backoff iteration also
	// yields the goroutine.
	yieldThreshold int

	// yield is the cooperative reschedule hint.
	yield func()

	// now reads a monotonic clock in nanoseconds. Timed acquisitions
	// normalize their absolute deadline to this clock once on entry.
	now func() int64
}

var defaultConfig = config{
	nextSpins:          func(spins int) int { return spins * 2 },
	maxWriterWaitSpins: 1024,
	maxReaderWaitSpins: 1024,
	yieldThreshold:     512,
	yield:              runtime.Gosched,
	now:                nanotime,
}

// Option configures an SMutex built by [New].
type Option func(*config)

// WithNextSpins replaces the spin-count progression. The default doubles
// the count each iteration, giving exponential backoff from 1.
func WithNextSpins(next func(spins int) int) Option {
	return func(c *config) {
		c.nextSpins = next
	}
}

// WithMaxWriterWaitSpins caps the spin count of readers waiting out a
// writer. The default is 1024.
func WithMaxWriterWaitSpins(max int) Option {
	return func(c *config) {
		c.maxWriterWaitSpins = max
	}
}

// WithMaxReaderWaitSpins caps the spin count of a writer, both while it
// races for the flag and while it drains readers. The default is 1024.
func WithMaxReaderWaitSpins(max int) Option {
	return func(c *config) {
		c.maxReaderWaitSpins = max
	}
}

// WithYieldThreshold sets the spin count past which backoff also yields
// the goroutine. The default is 512.
func WithYieldThreshold(threshold int) Option {
	return func(c *config) {
		c.yieldThreshold = threshold
	}
}

// WithYield replaces the cooperative yield call. The default is
// runtime.Gosched.
func WithYield(yield func()) Option {
	return func(c *config) {
		c.yield = yield
	}
}

// WithClock replaces the monotonic clock read by timed acquisitions.
// The clock must report nanoseconds and must never go backward.
func WithClock(now func() int64) Option {
	return func(c *config) {
		c.now = now
	}
}

// monoDeadline converts an absolute time point to the config's monotonic
// scale, so the timed loops compare plain integers.
func (c *config) monoDeadline(t time.Time) int64 {
	return c.now() + int64(time.Until(t))
}
