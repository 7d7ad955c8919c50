package forkexec

import (
	"syscall"
)

// execParams holds every pointer the child dereferences. It is built before clone
// because the child must not allocate
type execParams struct {
	argv0      *byte
	argv, env  []*byte
	workDir    *byte
	hostName   *byte
	domainName *byte

	// fd[i] is moved to i in the child, -1 closes i
	fd []int
	// first fd above every fd in Files, free for the shuffling
	nextFd int
}

func (r *Runner) prepare() (*execParams, error) {
	if len(r.Args) == 0 || r.Args[0] == "" {
		return nil, syscall.EINVAL
	}
	var (
		p   execParams
		err error
	)
	if p.argv0, err = syscall.BytePtrFromString(r.Args[0]); err != nil {
		return nil, err
	}
	if p.argv, err = syscall.SlicePtrFromStrings(r.Args); err != nil {
		return nil, err
	}
	if p.env, err = syscall.SlicePtrFromStrings(r.Env); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		dst **byte
		src string
	}{
		{&p.workDir, r.WorkDir},
		{&p.hostName, r.HostName},
		{&p.domainName, r.DomainName},
	} {
		if *s.dst, err = optionalBytePtr(s.src); err != nil {
			return nil, err
		}
	}
	p.fd, p.nextFd = fdMap(r.Files)
	return &p, nil
}

// fdMap converts Files into the target table and the lowest fd that no entry uses
func fdMap(files []uintptr) ([]int, int) {
	fd := make([]int, len(files))
	maxFd := len(files) - 1
	for i, f := range files {
		fd[i] = int(f)
		maxFd = max(maxFd, int(f))
	}
	return fd, maxFd + 1
}

// optionalBytePtr returns nil for the empty string so the child can skip the syscall
func optionalBytePtr(s string) (*byte, error) {
	if s == "" {
		return nil, nil
	}
	return syscall.BytePtrFromString(s)
}
