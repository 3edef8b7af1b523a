//go:build unix

package daemon

import (
	"golang.org/x/sys/unix"

	"github.com/caskdb/caskdb/internal/logger"
)

// RaiseFileLimit lifts the soft limit on open file descriptors to the
// hard limit. The server holds one descriptor per connection plus the
// storage engine's files, so the default soft limit is easy to exhaust.
// Failure is logged and tolerated.
func RaiseFileLimit() {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		logger.Warn("Failed to read open file limit", "error", err)
		return
	}
	if rl.Cur >= rl.Max {
		return
	}
	rl.Cur = rl.Max
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		logger.Warn("Failed to raise open file limit", "limit", rl.Max, "error", err)
		return
	}
	logger.Debug("Raised open file limit", "limit", rl.Cur)
}
