package smtx

import (
	"sync/atomic"

	"github.com/llxisdsh/pb"
)

// Group allows shared/exclusive locking on arbitrary keys.
//
// Features:
//   - RLock/RUnlock for shared access, Lock/Unlock for exclusive access.
//   - TryLock/TryRLock single-attempt variants.
//   - Infinite Keys & Auto-Cleanup: a key's lock exists only while held or
//     contended.
//
// Usage:
//
//	var group smtx.Group[string]
//
//	// Readers
//	group.RLock("config")
//	read(config)
//	group.RUnlock("config")
//
//	// Writer
//	group.Lock("config")
//	write(config)
//	group.Unlock("config")
type Group[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *groupEntry]
}

type groupEntry struct {
	mu  SMutex
	ref int32
}

func (g *Group[K]) enter(k K) *groupEntry {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l != nil {
				atomic.AddInt32(&l.Value.ref, 1)
				return l, l.Value, true
			}
			e := &groupEntry{ref: 1}
			return &pb.EntryOf[K, *groupEntry]{Value: e}, e, false
		},
	)
	return v
}

func (g *Group[K]) leave(k K) {
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			if atomic.AddInt32(&l.Value.ref, -1) <= 0 {
				return nil, nil, true
			}
			return l, l.Value, false
		},
	)
}

// Lock acquires the exclusive lock for key k.
func (g *Group[K]) Lock(k K) {
	g.enter(k).mu.Lock()
}

// TryLock attempts the exclusive lock for key k without spinning.
func (g *Group[K]) TryLock(k K) bool {
	if g.enter(k).mu.TryLock() {
		return true
	}
	g.leave(k)
	return false
}

// Unlock releases the exclusive lock for key k.
func (g *Group[K]) Unlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Unlock()
	g.leave(k)
}

// RLock acquires the shared lock for key k.
func (g *Group[K]) RLock(k K) {
	g.enter(k).mu.RLock()
}

// TryRLock attempts the shared lock for key k without spinning.
func (g *Group[K]) TryRLock(k K) bool {
	if g.enter(k).mu.TryRLock() {
		return true
	}
	g.leave(k)
	return false
}

// RUnlock releases the shared lock for key k.
func (g *Group[K]) RUnlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.RUnlock()
	g.leave(k)
}
