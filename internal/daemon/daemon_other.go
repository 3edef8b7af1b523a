//go:build !unix

package daemon

// Detach is not available without POSIX sessions.
func Detach(args []string) (int, error) {
	return 0, ErrUnsupported
}

// FinishDetach is a no-op on platforms without Detach.
func FinishDetach() {}
