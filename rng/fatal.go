package rng

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/safing/securerand/log"
)

// ExitCodeEntropyFailure is the exit code of the process when no secure
// randomness could be obtained.
const ExitCodeEntropyFailure = 70

// Reasons for an UnrecoverableError that do not come from the OS.
var (
	ErrTooManyRetries = errors.New("too many retries")
	ErrShortRead      = errors.New("short read")
	ErrSourceClosed   = errors.New("entropy source already closed")
)

// UnrecoverableError describes a failure to obtain secure randomness.
// It is never returned to callers, the process terminates instead.
type UnrecoverableError struct {
	Op  string
	Err error
}

func (e *UnrecoverableError) Error() string {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return fmt.Sprintf("%s error. Reason: %s. Error code: %d.", e.Op, errno.Error(), uint64(errno))
	}
	return fmt.Sprintf("%s failed. Reason: %s.", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *UnrecoverableError) Unwrap() error {
	return e.Err
}

// abortHandler terminates the process. It must not return.
var abortHandler = abort

func abort(err *UnrecoverableError) {
	log.Criticalf("rng: %s", err)
	log.Shutdown()
	os.Exit(ExitCodeEntropyFailure)
}

// fatal never returns.
func fatal(err *UnrecoverableError) {
	abortHandler(err)
	panic(err)
}
