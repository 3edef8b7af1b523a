// Package daemon detaches the caskd process from its controlling
// terminal and adjusts process resource limits. Detachment re-executes
// the binary in a new session rather than forking: the Go runtime cannot
// survive a bare fork, so the child is a fresh process that skips
// detachment and runs the server in the foreground.
package daemon

import (
	"errors"
	"os"
)

// childEnvMarker tells the re-executed child it is the detached daemon.
const childEnvMarker = "CASKD_DAEMONIZED"

// ErrUnsupported is returned by Detach on platforms without sessions.
var ErrUnsupported = errors.New("daemon mode is not supported on this platform")

// IsDaemonChild reports whether this process is the detached child of a
// Detach call.
func IsDaemonChild() bool {
	return os.Getenv(childEnvMarker) == "1"
}
