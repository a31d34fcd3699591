//go:build !smtx_nochecks

package smtx

// debugChecks guards the release-path precondition panics. Build with
// smtx_nochecks to compile them out.
const debugChecks = true
