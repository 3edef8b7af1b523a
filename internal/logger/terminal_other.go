//go:build !linux && !darwin

package logger

// isTerminal always reports false on platforms without termios support,
// disabling colored output.
func isTerminal(uintptr) bool {
	return false
}
