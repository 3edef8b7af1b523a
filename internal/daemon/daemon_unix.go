//go:build unix

package daemon

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/caskdb/caskdb/internal/logger"
)

// Detach re-executes the current binary as a session leader with
// --foreground appended to args, detached from the terminal. It returns
// the child's PID; the caller is expected to exit successfully. The
// child's standard streams are pointed at /dev/null, so daemon runs
// should set log.target to a file or to syslog.
func Detach(args []string) (int, error) {
	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to locate executable: %w", err)
	}

	// Resolve the working directory before spawning so relative paths
	// on the command line mean the same thing in the child.
	cwd, err := os.Getwd()
	if err != nil {
		return 0, fmt.Errorf("failed to get working directory: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(executable, append(args, "--foreground")...)
	cmd.Dir = cwd
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.Env = append(os.Environ(), childEnvMarker+"=1")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon process: %w", err)
	}
	return cmd.Process.Pid, nil
}

// FinishDetach completes detachment inside the child: clear the file
// creation mask and move off any mounted filesystem the parent was
// started from.
func FinishDetach() {
	unix.Umask(0)
	if err := os.Chdir("/"); err != nil {
		logger.Warn("Failed to change working directory to /", "error", err)
	}
}
