package nsinit

import (
	"fmt"
	"syscall"
	"time"
)

// Result is the outcome of Launch
type Result struct {
	// Pid is the host pid of the namespace init, 0 if it never started
	Pid int

	// State is the terminal state of the namespace init and AbortedAt the state
	// it was in when it aborted
	State     State
	AbortedAt State

	// ExitStatus of the shell, Signal is set if it was killed by a signal
	ExitStatus int
	Signal     syscall.Signal

	// metrics for the launcher
	SetUpTime   time.Duration
	RunningTime time.Duration
}

// ExitCode returns the exit status, or 128 + signal number if signalled
func (r Result) ExitCode() int {
	if r.Signal != 0 {
		return 128 + int(r.Signal)
	}
	return r.ExitStatus
}

func (r Result) String() string {
	switch {
	case r.State == StateAborted:
		return fmt.Sprintf("Result[Aborted(%v)][%v]", r.AbortedAt, r.SetUpTime)

	case r.Signal != 0:
		return fmt.Sprintf("Result[Signalled(%d)][%v %v]", r.Signal, r.SetUpTime, r.RunningTime)

	default:
		return fmt.Sprintf("Result[Exited(%d)][%v %v]", r.ExitStatus, r.SetUpTime, r.RunningTime)
	}
}
