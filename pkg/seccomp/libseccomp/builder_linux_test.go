package libseccomp

import (
	"testing"

	"github.com/criyle/go-nsinit/pkg/seccomp"
)

func TestBuild_DenyList(t *testing.T) {
	b := Builder{
		Deny:    []string{"reboot", "kexec_load", "init_module"},
		Default: seccomp.ActionAllow,
	}
	filter, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(filter) == 0 {
		t.Fatal("expected non-empty filter")
	}
	prog := filter.SockFprog()
	if prog == nil || int(prog.Len) != len(filter) {
		t.Fatalf("unexpected sock fprog %+v", prog)
	}
}

func TestBuild_UnknownSyscall(t *testing.T) {
	b := Builder{
		Deny:    []string{"not_a_syscall"},
		Default: seccomp.ActionAllow,
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error for unknown syscall")
	}
}

func TestLookupSyscall(t *testing.T) {
	if _, err := LookupSyscall("execve"); err != nil {
		t.Errorf("execve: %v", err)
	}
	if _, err := LookupSyscall("not_a_syscall"); err == nil {
		t.Errorf("expected error for unknown syscall")
	}
}

func TestToSeccompAction(t *testing.T) {
	if ToSeccompAction(seccomp.ActionAllow) == ToSeccompAction(seccomp.ActionErrno) {
		t.Error("allow and errno must differ")
	}
	if ToSeccompAction(0) != ToSeccompAction(seccomp.ActionKill) {
		t.Error("invalid action should kill")
	}
}
