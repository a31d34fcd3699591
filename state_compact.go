//go:build !smtx_prevent_false_sharing

package smtx

import (
	"sync/atomic"
)

// lockState holds the two independent atomics of the protocol. In the
// default layout they share a cache line; build with
// smtx_prevent_false_sharing to pad them apart on multi-socket systems.
type lockState struct {
	readers atomic.Uint32
	writer  atomic.Bool
}
