package nsinit

import (
	"os"
	"testing"

	"github.com/criyle/go-nsinit/pkg/mount"
)

func TestNewInitializer_Default(t *testing.T) {
	c := DefaultConfig()
	i := NewInitializer(&c)

	if len(i.Argv) != 2 || i.Argv[0] != "/bin/bash" || i.Argv[1] != "-i" {
		t.Errorf("unexpected argv %v", i.Argv)
	}
	if len(i.Env) != len(os.Environ()) {
		t.Errorf("nil env should inherit the environment")
	}
	if len(i.Mounts.Mounts) != 1 {
		t.Fatalf("expected only the proc mount, got %v", i.Mounts)
	}
	m := i.Mounts.Mounts[0]
	if !m.IsProc() || m.Target != "/proc" || m.Flags != mount.ProcFlags || m.MakeTarget {
		t.Errorf("unexpected proc mount %+v", m)
	}
}

func TestNewInitializer_Tmpfs(t *testing.T) {
	c := DefaultConfig()
	c.Tmpfs = []string{"/tmp", "/run"}
	c.Env = []string{"PATH=/bin"}
	i := NewInitializer(&c)

	if len(i.Mounts.Mounts) != 3 {
		t.Fatalf("expected 3 mounts, got %v", i.Mounts)
	}
	if !i.Mounts.Mounts[0].IsProc() {
		t.Errorf("proc must be mounted first")
	}
	for _, m := range i.Mounts.Mounts[1:] {
		if !m.IsTmpFs() {
			t.Errorf("expected tmpfs, got %v", m)
		}
	}
	if len(i.Env) != 1 || i.Env[0] != "PATH=/bin" {
		t.Errorf("unexpected env %v", i.Env)
	}
}

func TestInitializer_Runner(t *testing.T) {
	c := DefaultConfig()
	c.HostName = "box"
	c.WorkDir = "/"
	r, err := NewInitializer(&c).Runner()
	if err != nil {
		t.Fatal(err)
	}
	if r.CloneFlags != NamespaceFlags {
		t.Errorf("clone flags = %x, want %x", r.CloneFlags, NamespaceFlags)
	}
	if len(r.Mounts) != 1 || r.HostName != "box" || r.WorkDir != "/" {
		t.Errorf("unexpected runner %+v", r)
	}
	if r.Setsid {
		t.Errorf("interactive shell should keep the terminal session")
	}
}
