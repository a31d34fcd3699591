//go:build smtx_cachelinesize_32

package opt

// CacheLineSize is forced to 32 bytes.
const CacheLineSize = 32
