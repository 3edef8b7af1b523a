// Package signals translates process signals into server lifecycle
// events: termination signals raise a stop flag the supervisor polls,
// and fatal signals dump a backtrace before exiting.
package signals

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/caskdb/caskdb/internal/logger"
)

// StopFlag is a one-shot flag shared between the signal handler and the
// supervisor loop.
type StopFlag struct {
	stopped atomic.Bool
}

// Set raises the flag. Further calls have no effect.
func (f *StopFlag) Set() {
	f.stopped.Store(true)
}

// IsSet reports whether the flag has been raised.
func (f *StopFlag) IsSet() bool {
	return f.stopped.Load()
}

// NotifyTermination raises flag when SIGINT or SIGTERM arrives. Signals
// received after the first are ignored; shutdown is already underway.
func NotifyTermination(flag *StopFlag) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range ch {
			if flag.IsSet() {
				logger.Debug("Ignoring signal, shutdown already in progress", "signal", sig.String())
				continue
			}
			logger.Info("Received signal, stopping server", "signal", sig.String())
			flag.Set()
		}
	}()
}
