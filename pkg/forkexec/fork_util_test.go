package forkexec

import (
	"syscall"
	"testing"
)

func TestFdMap(t *testing.T) {
	tests := []struct {
		files  []uintptr
		fd     []int
		nextFd int
	}{
		{nil, []int{}, 0},
		{[]uintptr{0, 1, 2}, []int{0, 1, 2}, 3},
		{[]uintptr{7, 1}, []int{7, 1}, 8},
	}
	for _, tt := range tests {
		fd, nextFd := fdMap(tt.files)
		if len(fd) != len(tt.fd) || nextFd != tt.nextFd {
			t.Errorf("fdMap(%v) = %v, %d, want %v, %d", tt.files, fd, nextFd, tt.fd, tt.nextFd)
			continue
		}
		for i := range fd {
			if fd[i] != tt.fd[i] {
				t.Errorf("fdMap(%v) = %v, want %v", tt.files, fd, tt.fd)
			}
		}
	}
}

func TestRunner_Prepare(t *testing.T) {
	r := Runner{
		Args:     []string{"/bin/sh", "-i"},
		Env:      []string{"A=1"},
		HostName: "box",
	}
	p, err := r.prepare()
	if err != nil {
		t.Fatal(err)
	}
	// argv and env are NULL terminated
	if len(p.argv) != 3 || p.argv[2] != nil || len(p.env) != 2 || p.env[1] != nil {
		t.Errorf("unexpected argv %v env %v", p.argv, p.env)
	}
	if p.hostName == nil || p.domainName != nil || p.workDir != nil {
		t.Errorf("empty strings should stay nil: %+v", p)
	}
}

func TestRunner_PrepareInvalid(t *testing.T) {
	for _, r := range []Runner{
		{},
		{Args: []string{""}},
		{Args: []string{"/bin/sh"}, HostName: "a\x00b"},
		{Args: []string{"/bin/sh"}, Env: []string{"A=\x00"}},
	} {
		if _, err := r.prepare(); err != syscall.EINVAL {
			t.Errorf("prepare(%+v) = %v, want EINVAL", r, err)
		}
	}
}
