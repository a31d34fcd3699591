//go:build smtx_cachelinesize_64

package opt

// CacheLineSize is forced to 64 bytes.
const CacheLineSize = 64
