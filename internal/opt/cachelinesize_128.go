//go:build smtx_cachelinesize_128

package opt

// CacheLineSize is forced to 128 bytes.
const CacheLineSize = 128
