package forkexec

import (
	"syscall"

	"github.com/criyle/go-nsinit/pkg/mount"
)

// Runner is the configuration including the exec path, argv, namespaces and
// the mounts performed inside the new mount namespace.
type Runner struct {
	// argv and env for execve syscall for the child process
	Args []string
	Env  []string

	// file disriptors map for new process, from 0 to len - 1
	// nil keeps the inherited file descriptors as they are
	Files []uintptr

	// work path set by chdir(dir) (current working directory for child)
	// it is executed after mounts
	WorkDir string

	// seccomp syscall filter applied to child right before execve
	Seccomp *syscall.SockFprog

	// clone unshare flag to create linux namespace, only bits in UnshareFlags are used
	CloneFlags uintptr

	// mounts defines the mount syscalls after unshare mount namespace
	// need CAP_SYS_ADMIN inside the namespace
	// the root mount tree is marked recursively private before any of them so that
	// nothing propagates back to the original mount namespace
	Mounts []mount.SyscallParams

	// HostName and DomainName to be set after unshare UTS (CAP_SYS_ADMIN)
	HostName, DomainName string

	// Parent and child process with sync status through a socket pair.
	// SyncFunc will invoke with the child pid after the child finished mounts.
	// If SyncFunc return some error, parent will kill the child and report the error
	SyncFunc func(int) error

	// no_new_privs calls prctl(PR_SET_NO_NEW_PRIVS) to disable calls to
	// setuid processes. It is automatically enabled when seccomp filter is provided
	NoNewPrivs bool

	// Setsid creates new session for the child. An interactive shell should stay in
	// the session of the terminal, so it is off by default
	Setsid bool

	// CTTY specifies if set the fd 0 as controlling TTY, requires Setsid
	CTTY bool
}
