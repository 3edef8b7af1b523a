// Package supervisor drives the server lifecycle: start, wait for a
// stop request from either a signal or the server itself, then stop.
package supervisor

import (
	"fmt"
	"time"

	"github.com/caskdb/caskdb/internal/logger"
	"github.com/caskdb/caskdb/internal/signals"
)

// PollInterval is how often Run checks for a stop request.
const PollInterval = 500 * time.Millisecond

// A Runner is a server whose lifecycle the supervisor manages. Start
// must return once the server is accepting work; IsStopRequested
// reports whether the server asked to shut itself down, for example
// through an administrative command.
type Runner interface {
	Start() error
	Stop() error
	IsStopRequested() bool
}

// Run starts the runner and blocks until the stop flag is raised or the
// runner requests its own shutdown, polling every interval. A zero
// interval means PollInterval. The runner is stopped before Run
// returns; a stop failure is logged but does not mask a clean run.
func Run(runner Runner, flag *signals.StopFlag, interval time.Duration) error {
	if interval <= 0 {
		interval = PollInterval
	}

	if err := runner.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if flag.IsSet() || runner.IsStopRequested() {
			break
		}
	}

	logger.Info("Stopping server")
	if err := runner.Stop(); err != nil {
		logger.Error("Failed to stop server cleanly", "error", err)
	}
	return nil
}
