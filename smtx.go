// Package smtx provides a spin-based shared/exclusive (reader-writer) lock
// built from lock-free atomics with a spin-then-yield waiting strategy.
//
// It targets short critical sections where parking on the runtime's
// semaphores would dominate the cost of the protected work. Multiple
// readers may hold the lock concurrently; a writer is exclusive.
package smtx

import (
	"sync"
	"time"
)

// SMutex is a shared/exclusive spin lock.
//
// The zero value is an unlocked SMutex with default tuning; use [New] to
// apply [Option] values. An SMutex must not be copied after first use.
//
// Properties:
//   - Writer-preferred at the boundary: a claiming writer blocks new readers
//     while it drains the ones already admitted. No fairness guarantee is
//     made beyond that; the claim is a plain compare-and-swap among
//     writers, so a writer that keeps losing it can wait indefinitely.
//   - Busy-wait only. No operation parks on an OS wait queue; waiting is
//     spinning with exponential backoff and a cooperative yield past a
//     threshold.
//   - Not reentrant and owner-free: the lock does not know which goroutine
//     holds it, so Unlock/RUnlock may be called from a different goroutine
//     than the one that acquired.
type SMutex struct {
	_     noCopy
	state lockState
	cfg   *config
}

// New returns an SMutex tuned by the given options.
// New() with no options is equivalent to new(SMutex).
func New(opts ...Option) *SMutex {
	m := &SMutex{}
	if len(opts) > 0 {
		c := defaultConfig
		for _, o := range opts {
			o(&c)
		}
		m.cfg = &c
	}
	return m
}

//go:nosplit
func (m *SMutex) conf() *config {
	if m.cfg != nil {
		return m.cfg
	}
	return &defaultConfig
}

// Init resets m to the unlocked state, keeping its tuning.
// It allows reuse of the storage of a lock that is known to be idle.
// Calling Init on an SMutex that is held, or that another goroutine may
// touch concurrently, corrupts the lock.
func (m *SMutex) Init() {
	m.state.readers.Store(0)
	m.state.writer.Store(false)
}

// RLock acquires the lock in shared mode, spinning until admitted.
//
// Admission is optimistic: the reader count is incremented first and the
// writer flag re-checked afterwards. A writer that claimed the flag in the
// window between the two steps sees the increment and waits; the reader
// sees the flag and backs out. One of the two always yields, so the
// invariant "writer established implies zero readers" holds.
func (m *SMutex) RLock() {
	c := m.conf()
	spins := 1
	for {
		for m.state.writer.Load() {
			c.spinWait(spins)
			spins = c.advance(spins, c.maxWriterWaitSpins)
		}

		m.state.readers.Add(1)

		if !m.state.writer.Load() {
			return
		}

		// Lost the race against a claiming writer. Back out so its
		// drain wait can complete, then start over.
		m.state.readers.Add(^uint32(0))
	}
}

// TryRLock attempts a single shared acquisition without spinning.
// It reports whether the lock is now held in shared mode.
func (m *SMutex) TryRLock() bool {
	if m.state.writer.Load() {
		return false
	}

	m.state.readers.Add(1)

	if m.state.writer.Load() {
		m.state.readers.Add(^uint32(0))
		return false
	}

	return true
}

// TryRLockUntil acquires the lock in shared mode, giving up once the
// monotonic clock passes deadline. It reports whether the lock is held.
// On timeout the reader count is left untouched.
//
// The deadline is absolute, so nested timed acquisitions can share one
// deadline without drift.
func (m *SMutex) TryRLockUntil(deadline time.Time) bool {
	c := m.conf()
	limit := c.monoDeadline(deadline)
	spins := 1
	for c.now() < limit {
		if m.state.writer.Load() {
			c.spinWait(spins)
			spins = c.advance(spins, c.maxWriterWaitSpins)
			continue
		}

		m.state.readers.Add(1)

		if !m.state.writer.Load() {
			return true
		}

		m.state.readers.Add(^uint32(0))

		c.spinWait(spins)
		spins = c.advance(spins, c.maxWriterWaitSpins)
	}
	return false
}

// TryRLockFor is TryRLockUntil with a deadline of now+d.
func (m *SMutex) TryRLockFor(d time.Duration) bool {
	return m.TryRLockUntil(time.Now().Add(d))
}

// RUnlock releases one shared hold.
// It panics if no shared hold exists, unless built with smtx_nochecks.
func (m *SMutex) RUnlock() {
	if debugChecks && m.state.readers.Load() == 0 {
		panic("smtx: RUnlock of unlocked SMutex")
	}
	m.state.readers.Add(^uint32(0))
}

// Lock acquires the lock in exclusive mode, spinning until it is the sole
// holder.
//
// Acquisition is two-phase: claim the writer flag, then wait for admitted
// readers to drain. New readers observe the claimed flag and back out, so
// the drain terminates once the current holders release.
func (m *SMutex) Lock() {
	c := m.conf()
	spins := 1
	for !m.state.writer.CompareAndSwap(false, true) {
		c.spinWait(spins)
		spins = c.advance(spins, c.maxReaderWaitSpins)
	}

	spins = 1
	for m.state.readers.Load() != 0 {
		c.spinWait(spins)
		spins = c.advance(spins, c.maxReaderWaitSpins)
	}
}

// TryLock attempts a single exclusive acquisition without spinning.
// It reports whether the lock is now held exclusively. If the flag is
// claimed but readers are present, the claim is rolled back.
func (m *SMutex) TryLock() bool {
	if !m.state.writer.CompareAndSwap(false, true) {
		return false
	}

	if m.state.readers.Load() != 0 {
		m.state.writer.Store(false)
		return false
	}

	return true
}

// TryLockUntil acquires the lock in exclusive mode, giving up once the
// monotonic clock passes deadline. It reports whether the lock is held.
// A timeout during the reader drain releases the claimed flag, so the
// lock is never left half-acquired.
func (m *SMutex) TryLockUntil(deadline time.Time) bool {
	c := m.conf()
	limit := c.monoDeadline(deadline)
	if c.now() >= limit {
		return false
	}

	spins := 1
	for !m.state.writer.CompareAndSwap(false, true) {
		if c.now() >= limit {
			return false
		}
		c.spinWait(spins)
		spins = c.advance(spins, c.maxReaderWaitSpins)
	}

	for m.state.readers.Load() != 0 {
		if c.now() >= limit {
			m.state.writer.Store(false)
			return false
		}
		c.spinWait(spins)
		spins = c.advance(spins, c.maxReaderWaitSpins)
	}

	return true
}

// TryLockFor is TryLockUntil with a deadline of now+d.
func (m *SMutex) TryLockFor(d time.Duration) bool {
	return m.TryLockUntil(time.Now().Add(d))
}

// Unlock releases the exclusive hold.
// It panics if the lock is not held exclusively, unless built with
// smtx_nochecks.
func (m *SMutex) Unlock() {
	if debugChecks && !m.state.writer.Load() {
		panic("smtx: Unlock of unlocked SMutex")
	}
	m.state.writer.Store(false)
}

// RLocker returns a sync.Locker whose Lock and Unlock call RLock and
// RUnlock.
func (m *SMutex) RLocker() sync.Locker {
	return (*rlocker)(m)
}

type rlocker SMutex

func (r *rlocker) Lock()   { (*SMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*SMutex)(r).RUnlock() }
