//go:build !unix

package daemon

// RaiseFileLimit is a no-op on platforms without rlimits.
func RaiseFileLimit() {}
