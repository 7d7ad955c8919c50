package forkexec

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// defines missing consts from syscall package
const (
	SECCOMP_SET_MODE_FILTER   = 1
	SECCOMP_FILTER_FLAG_TSYNC = 1

	// UnshareFlags is the set of namespace flags accepted by Runner.CloneFlags
	UnshareFlags = unix.CLONE_NEWNS | unix.CLONE_NEWPID | unix.CLONE_NEWUTS
)

// used by the child to remount / to private
var (
	none  = [...]byte{'n', 'o', 'n', 'e', 0}
	slash = [...]byte{'/', 0}

	// go does not allow constant uintptr to be negative...
	_AT_FDCWD = unix.AT_FDCWD

	// exit signal of the child, wait4 without __WALL only reports SIGCHLD children
	_SIGCHLD = uint64(syscall.SIGCHLD)
)
