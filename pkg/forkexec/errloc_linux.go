package forkexec

import (
	"fmt"
	"syscall"
)

// ErrorLocation defines the location where child process failed to exec
type ErrorLocation int

// ChildError defines the specific error and location where it failed
type ChildError struct {
	Err      syscall.Errno
	Location ErrorLocation
	Index    int
}

// Location constants
const (
	LocClone ErrorLocation = iota + 1
	LocCloseWrite
	LocDup3
	LocFcntl
	LocSetSid
	LocIoctl
	LocMountRoot
	LocMountMkdir
	LocMount
	LocSetHostName
	LocSetDomainName
	LocChdir
	LocSetNoNewPrivs
	LocSeccomp
	LocSyncWrite
	LocSyncRead
	LocExecve
)

var locToString = []string{
	"unknown",
	"clone",
	"close_write",
	"dup3",
	"fcntl",
	"setsid",
	"ioctl",
	"mount(root)",
	"mount(mkdir)",
	"mount",
	"sethostname",
	"setdomainname",
	"chdir",
	"set_no_new_privs",
	"seccomp",
	"sync_write",
	"sync_read",
	"execve",
}

func (e ErrorLocation) String() string {
	if e >= LocClone && e <= LocExecve {
		return locToString[e]
	}
	return "unknown"
}

// IsMount reports whether the location is one of the mount steps
func (e ErrorLocation) IsMount() bool {
	return e == LocMountRoot || e == LocMountMkdir || e == LocMount
}

func (e ChildError) Error() string {
	if e.Location == LocMount || e.Location == LocMountMkdir {
		return fmt.Sprintf("%s(%d): %s", e.Location.String(), e.Index, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Location.String(), e.Err.Error())
}

// Unwrap returns the errno reported by the child
func (e ChildError) Unwrap() error {
	return e.Err
}
