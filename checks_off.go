//go:build smtx_nochecks

package smtx

const debugChecks = false
