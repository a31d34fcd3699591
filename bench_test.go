package smtx

import (
	"sync"
	"testing"
)

func BenchmarkRLock(b *testing.B) {
	var m SMutex
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.RLock()
			m.RUnlock()
		}
	})
}

func BenchmarkLock(b *testing.B) {
	var m SMutex
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Lock()
			m.Unlock()
		}
	})
}

func BenchmarkMixed(b *testing.B) {
	var m SMutex
	var value int
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%10 == 0 {
				m.Lock()
				value++
				m.Unlock()
			} else {
				m.RLock()
				_ = value
				m.RUnlock()
			}
			i++
		}
	})
}

func BenchmarkStdRWMutexRLock(b *testing.B) {
	var m sync.RWMutex
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.RLock()
			m.RUnlock()
		}
	})
}

func BenchmarkStdRWMutexMixed(b *testing.B) {
	var m sync.RWMutex
	var value int
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%10 == 0 {
				m.Lock()
				value++
				m.Unlock()
			} else {
				m.RLock()
				_ = value
				m.RUnlock()
			}
			i++
		}
	})
}
