//go:build smtx_prevent_false_sharing

package smtx

import (
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/smtx/internal/opt"
)

// lockState holds the two independent atomics of the protocol, each padded
// out to its own cache line. Readers hammer the count while a writer
// hammers the flag; separating the lines keeps those two streams from
// invalidating each other.
type lockState struct {
	readers atomic.Uint32
	_       [(opt.CacheLineSize - unsafe.Sizeof(atomic.Uint32{})%opt.CacheLineSize) % opt.CacheLineSize]byte
	writer  atomic.Bool
	_       [(opt.CacheLineSize - unsafe.Sizeof(atomic.Bool{})%opt.CacheLineSize) % opt.CacheLineSize]byte
}
