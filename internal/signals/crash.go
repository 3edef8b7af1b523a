package signals

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// maxBacktraceFrames caps the number of stack frames printed on a fatal
// signal.
const maxBacktraceFrames = 20

// NotifyCrash prints a backtrace and exits with a failure status when a
// fatal signal is delivered to the process. Synchronous faults inside
// the runtime are still handled by the runtime itself; this covers
// signals sent from outside.
func NotifyCrash() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGSEGV, syscall.SIGBUS, syscall.SIGABRT)
	go func() {
		sig := <-ch
		fmt.Fprintf(os.Stderr, "caskd: caught fatal signal %s\n", sig)
		printBacktrace()
		os.Exit(1)
	}()
}

func printBacktrace() {
	pcs := make([]uintptr, maxBacktraceFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for i := 0; ; i++ {
		frame, more := frames.Next()
		fmt.Fprintf(os.Stderr, "  #%d %s\n      %s:%d\n", i, frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
}
