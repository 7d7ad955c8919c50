package forkexec

import (
	"syscall"
	"unsafe" // required for go:linkname.

	"golang.org/x/sys/unix"
)

//go:linkname beforeFork syscall.runtime_BeforeFork
func beforeFork()

//go:linkname afterFork syscall.runtime_AfterFork
func afterFork()

//go:linkname afterForkInChild syscall.runtime_AfterForkInChild
func afterForkInChild()

// Start will clone the child into new namespaces, perform mounts and execve.
// It returns once the child image has been replaced (or failed to).
// Return pid and potential error, the returned pid must be waited by the caller
func (r *Runner) Start() (int, error) {
	params, err := r.prepare()
	if err != nil {
		return 0, err
	}

	// clone3 arguments, allocated before fork
	clone3 := newCloneArgs(r.CloneFlags)

	// socketpair p used to sync with the child after mounts and before final execve
	// p[0] is used by parent and p[1] is used by child
	p, err := syscall.Socketpair(syscall.AF_LOCAL, syscall.SOCK_STREAM|syscall.SOCK_CLOEXEC, 0)
	if err != nil {
		return 0, err
	}

	// fork in child
	pid, err1 := forkAndExecInChild(r, params, clone3, p)

	// restore all signals
	afterFork()
	syscall.ForkLock.Unlock()

	return syncWithChild(r, p, int(pid), err1)
}

func syncWithChild(r *Runner, p [2]int, pid int, err1 syscall.Errno) (int, error) {
	var (
		r1       uintptr
		childErr ChildError
		err      error
	)

	// sync with child
	unix.Close(p[1])

	// clone syscall failed
	if err1 != 0 {
		unix.Close(p[0])
		return 0, ChildError{Err: err1, Location: LocClone}
	}

	// child reports ready (all mounts done) or the error before it
	r1, err1 = readChildError(p[0], &childErr)
	if r1 != unsafe.Sizeof(childErr) || childErr.Err != 0 || err1 != 0 {
		err = handlePipeError(r1, childErr)
		goto fail
	}

	// if syncfunc return error, then fail child immediately
	if r.SyncFunc != nil {
		if err = r.SyncFunc(pid); err != nil {
			goto fail
		}
	}
	// otherwise, ack child (err1 == 0)
	syscall.RawSyscall(syscall.SYS_WRITE, uintptr(p[0]), uintptr(unsafe.Pointer(&err1)), uintptr(unsafe.Sizeof(err1)))

	// if read anything mean child failed after sync (close_on_exec so it should not block)
	r1, err1 = readChildError(p[0], &childErr)
	unix.Close(p[0])
	if r1 != 0 || err1 != 0 {
		err = handlePipeError(r1, childErr)
		goto failAfterClose
	}
	return pid, nil

fail:
	unix.Close(p[0])

failAfterClose:
	handleChildFailed(pid)
	return 0, err
}

// readChildError reads a ChildError from the socket, retrying on EINTR
func readChildError(fd int, childErr *ChildError) (uintptr, syscall.Errno) {
	for {
		r1, _, err1 := syscall.RawSyscall(syscall.SYS_READ, uintptr(fd), uintptr(unsafe.Pointer(childErr)), unsafe.Sizeof(*childErr))
		if err1 != syscall.EINTR {
			return r1, err1
		}
	}
}

// check pipe error
func handlePipeError(r1 uintptr, childErr ChildError) error {
	if r1 == unsafe.Sizeof(childErr) {
		return childErr
	}
	return syscall.EPIPE
}

func handleChildFailed(pid int) {
	var wstatus syscall.WaitStatus
	// make sure not blocked
	syscall.Kill(pid, syscall.SIGKILL)
	// child failed; wait for it to exit, to make sure the zombies don't accumulate
	_, err := syscall.Wait4(pid, &wstatus, 0, nil)
	for err == syscall.EINTR {
		_, err = syscall.Wait4(pid, &wstatus, 0, nil)
	}
}
