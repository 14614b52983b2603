// Package dss drives the Debug Server Scripting engine as an external
// process. The engine performs all real hardware interaction; this package
// only composes argument batches, runs the executable under a deadline, and
// parses its textual responses.
package dss

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds engine invocations when the caller gives none.
const DefaultTimeout = 60 * time.Second

var (
	// ErrTimeout reports an engine invocation that exceeded its deadline.
	ErrTimeout = errors.New("engine call timed out")
	// ErrProcess reports an engine invocation that exited unsuccessfully.
	ErrProcess = errors.New("engine call failed")
	// ErrParse reports engine output that could not be interpreted.
	ErrParse = errors.New("unable to parse engine response")
)

// Result is the outcome of one engine invocation. Output holds the combined
// stdout/stderr of the process, or a diagnostic when it was killed on
// timeout.
type Result struct {
	Success  bool
	Output   string
	TimedOut bool
}

// Bridge runs engine batches. Implementations do not return errors; every
// failure mode is carried in the Result so callers classify it themselves.
// Tests substitute a Bridge that never spawns a process.
type Bridge interface {
	Call(exe string, args []string, timeout time.Duration) Result
}

// ExecBridge is the production Bridge: it spawns the engine executable and
// waits for it, killing the process if the timeout fires first.
type ExecBridge struct{}

// Call runs exe with args, capturing combined output, for at most timeout
// (DefaultTimeout when zero or negative).
func (ExecBridge) Call(exe string, args []string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe, args...)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Output:   fmt.Sprintf("engine did not finish within %s and was killed", timeout),
			TimedOut: true,
		}
	}
	if err != nil {
		return Result{Output: string(out)}
	}
	return Result{Success: true, Output: string(out)}
}
