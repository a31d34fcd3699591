package smtx

import (
	"sync"
	"testing"
	"time"
)

func TestGroup_Basic(t *testing.T) {
	var g Group[string]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)

	// Test Concurrent Readers
	for range n {
		go func() {
			defer wg.Done()
			g.RLock("key")
			time.Sleep(time.Microsecond)
			g.RUnlock("key")
		}()
	}
	wg.Wait()

	// Test Writer Exclusion
	g.Lock("key")
	done := make(chan struct{})
	go func() {
		g.RLock("key") // Should block
		close(done)
		g.RUnlock("key")
	}()

	select {
	case <-done:
		t.Fatal("RLock acquired while Lock held")
	case <-time.After(10 * time.Millisecond):
	}
	g.Unlock("key")

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("RLock not acquired after Unlock")
	}
}

func TestGroup_RefCounting(t *testing.T) {
	var g Group[int]

	g.RLock(1)
	if _, ok := g.m.Load(1); !ok {
		t.Fatal("Entry should exist after RLock")
	}

	g.RUnlock(1)

	if _, ok := g.m.Load(1); ok {
		t.Fatal("Entry should be auto-deleted after RUnlock (ref=0)")
	}
}

func TestGroup_TryVariants(t *testing.T) {
	var g Group[string]

	if !g.TryLock("a") {
		t.Fatal("TryLock failed on idle key")
	}
	if g.TryLock("a") {
		t.Fatal("TryLock succeeded on held key")
	}
	if g.TryRLock("a") {
		t.Fatal("TryRLock succeeded on exclusively held key")
	}
	if !g.TryLock("b") {
		t.Fatal("TryLock failed on independent key")
	}
	g.Unlock("b")
	g.Unlock("a")

	if _, ok := g.m.Load("a"); ok {
		t.Fatal("failed try attempts leaked a reference")
	}

	if !g.TryRLock("a") {
		t.Fatal("TryRLock failed on idle key")
	}
	if !g.TryRLock("a") {
		t.Fatal("second TryRLock failed with readers present")
	}
	g.RUnlock("a")
	g.RUnlock("a")

	if _, ok := g.m.Load("a"); ok {
		t.Fatal("entry not cleaned up after last RUnlock")
	}
}

func TestGroup_IndependentKeys(t *testing.T) {
	var g Group[int]
	g.Lock(1)

	done := make(chan struct{})
	go func() {
		g.Lock(2) // Different key, must not block
		g.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Lock on independent key blocked")
	}
	g.Unlock(1)
}
