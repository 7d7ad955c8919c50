package nsinit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/criyle/go-nsinit/pkg/seccomp"
	"github.com/criyle/go-nsinit/pkg/seccomp/libseccomp"
)

// Launcher starts the namespace init and waits for it
type Launcher struct {
	Config Config
	Logger *zap.Logger

	// Files are mapped to fd 0..len-1 of the shell, nil inherits all
	Files []uintptr
}

// NewLauncher creates a launcher, nil logger discards logs
func NewLauncher(c Config, l *zap.Logger) *Launcher {
	if l == nil {
		l = zap.NewNop()
	}
	return &Launcher{
		Config: c,
		Logger: l,
	}
}

// Launch creates the namespaces, runs the init and blocks until the shell, and with it
// every process of its PID namespace, has exited.
// Cancelling ctx kills the shell, Launch still waits for it.
func (l *Launcher) Launch(ctx context.Context) (Result, error) {
	result := Result{State: StateStarted}
	log := l.logger()

	if err := l.Config.Validate(); err != nil {
		return l.abort(result, &Error{Kind: KindLaunch, Err: err})
	}

	nsInit := NewInitializer(&l.Config)
	r, err := nsInit.Runner()
	if err != nil {
		return l.abort(result, &Error{Kind: KindLaunch, Err: err})
	}
	r.Files = l.Files
	r.NoNewPrivs = l.Config.NoNewPrivs
	r.Setsid = l.Config.Setsid
	r.CTTY = l.Config.Setsid && stdinIsTerminal(l.Files)

	if len(l.Config.DenySyscalls) > 0 {
		b := libseccomp.Builder{
			Deny:    l.Config.DenySyscalls,
			Default: seccomp.ActionAllow,
		}
		filter, err := b.Build()
		if err != nil {
			return l.abort(result, &Error{Kind: KindLaunch, Err: err})
		}
		r.Seccomp = filter.SockFprog()
	}

	// called after the child finished its mounts, right before execve
	r.SyncFunc = func(pid int) error {
		result.State = StateProcMounted
		log.Debug("proc mounted", zap.Int("pid", pid))
		return nil
	}

	log.Debug("launching",
		zap.Strings("argv", nsInit.Argv),
		zap.Stringer("mounts", nsInit.Mounts),
		zap.String("hostname", nsInit.HostName),
		zap.Int("deny_syscalls", len(l.Config.DenySyscalls)))

	sTime := time.Now()
	pid, err := r.Start()
	result.SetUpTime = time.Since(sTime)
	if err != nil {
		return l.abort(result, classify(err))
	}
	result.Pid = pid
	result.State = StateImageReplaced
	log.Info("shell started", zap.Int("pid", pid), zap.String("shell", nsInit.Argv[0]))

	fTime := time.Now()
	wstatus, err := wait(ctx, pid)
	result.RunningTime = time.Since(fTime)
	if err != nil {
		e := &Error{Kind: KindWait, Err: err}
		log.Error("wait failed", zap.Int("pid", pid), zap.Error(e))
		return result, e
	}

	switch {
	case wstatus.Signaled():
		result.Signal = wstatus.Signal()
		log.Info("shell signalled", zap.Int("pid", pid), zap.Stringer("signal", result.Signal),
			zap.Duration("running", result.RunningTime))
	default:
		result.ExitStatus = wstatus.ExitStatus()
		log.Info("shell exited", zap.Int("pid", pid), zap.Int("status", result.ExitStatus),
			zap.Duration("running", result.RunningTime))
	}
	return result, nil
}

func (l *Launcher) abort(result Result, err *Error) (Result, error) {
	result.AbortedAt = result.State
	result.State = StateAborted
	l.logger().Error("launch aborted", zap.Stringer("at", result.AbortedAt), zap.Error(err))
	return result, err
}

func (l *Launcher) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// stdinIsTerminal reports whether fd 0 of the shell will be a terminal
func stdinIsTerminal(files []uintptr) bool {
	if files == nil {
		return term.IsTerminal(0)
	}
	return len(files) > 0 && term.IsTerminal(int(files[0]))
}

// wait blocks until pid exits, ctx cancel kills it.
// The namespace init is PID 1 so its exit takes down the whole PID namespace
func wait(ctx context.Context, pid int) (unix.WaitStatus, error) {
	var (
		mu     sync.Mutex
		exited bool
	)

	finish := make(chan struct{})
	defer close(finish)

	// handle cancel, the pid may only be signalled before it is reaped
	go func() {
		select {
		case <-ctx.Done():
			mu.Lock()
			if !exited {
				unix.Kill(pid, unix.SIGKILL)
			}
			mu.Unlock()
		case <-finish:
		}
	}()

	// wait for the exit but leave the zombie, so the pid cannot be reused yet
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		break
	}
	mu.Lock()
	exited = true
	mu.Unlock()

	var wstatus unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &wstatus, 0, nil)
		if err == unix.EINTR {
			continue
		}
		return wstatus, err
	}
}
