//go:build smtx_cachelinesize_256

package opt

// CacheLineSize is forced to 256 bytes.
const CacheLineSize = 256
