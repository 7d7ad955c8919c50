package nsinit

import (
	"errors"
	"syscall"

	"github.com/criyle/go-nsinit/pkg/forkexec"
)

// Kind classifies the step of the bootstrap that failed.
// It implements error so that errors.Is(err, KindMount) works on errors from Launch
type Kind int

// Error kinds
const (
	KindLaunch Kind = iota + 1 // namespace creation or child setup failed
	KindMount                  // procfs mount failed inside the new namespaces
	KindExec                   // shell image could not be executed
	KindWait                   // failed to reap the child
)

var kindString = []string{
	"unknown error",
	"launch error",
	"mount error",
	"exec error",
	"wait error",
}

func (k Kind) String() string {
	if k >= KindLaunch && k <= KindWait {
		return kindString[k]
	}
	return kindString[0]
}

func (k Kind) Error() string {
	return k.String()
}

// Error is returned by Launch, it wraps the underlying forkexec.ChildError or errno
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the Kind of the error
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// ExitCode returns the exit code the launcher process should end with.
// Exec errors follow the shell convention: 127 for not found, 126 otherwise
func (e *Error) ExitCode() int {
	if e.Kind == KindExec {
		if errors.Is(e.Err, syscall.ENOENT) {
			return 127
		}
		return 126
	}
	return 1
}

// KindOf returns the Kind of err, 0 if it is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classify converts the error from forkexec.Runner.Start by where the child failed
func classify(err error) *Error {
	var ce forkexec.ChildError
	if errors.As(err, &ce) {
		switch {
		case ce.Location.IsMount():
			return &Error{Kind: KindMount, Err: err}
		case ce.Location == forkexec.LocExecve:
			return &Error{Kind: KindExec, Err: err}
		}
	}
	return &Error{Kind: KindLaunch, Err: err}
}
