package mount

import (
	"strings"
	"testing"
)

func TestBuilder_WithProc(t *testing.T) {
	b := NewBuilder().WithProc("/proc")
	if len(b.Mounts) != 1 {
		t.Fatalf("expected 1 mount, got %d", len(b.Mounts))
	}
	m := b.Mounts[0]
	if !m.IsProc() || m.Source != "proc" || m.Target != "/proc" {
		t.Errorf("unexpected mount: %+v", m)
	}
	if m.Flags != ProcFlags {
		t.Errorf("expected noexec,nodev,nosuid flags, got %x", m.Flags)
	}
	if m.MakeTarget {
		t.Errorf("proc target must not be created")
	}
}

func TestBuilder_WithTmpfs(t *testing.T) {
	b := NewBuilder().WithTmpfs("/tmp", "size=64m")
	if len(b.Mounts) != 1 {
		t.Fatalf("expected 1 mount, got %d", len(b.Mounts))
	}
	m := b.Mounts[0]
	if !m.IsTmpFs() {
		t.Errorf("expected tmpfs mount")
	}
	if m.Target != "/tmp" || m.Data != "size=64m" || !m.MakeTarget {
		t.Errorf("unexpected mount: %+v", m)
	}
}

func TestBuilder_Build(t *testing.T) {
	sp, err := NewBuilder().WithProc("/proc").WithTmpfs("/tmp", "").Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(sp) != 2 {
		t.Fatalf("expected 2 syscall params, got %d", len(sp))
	}
	if cString(sp[0].Target) != "/proc" || cString(sp[1].Target) != "/tmp" {
		t.Errorf("mount order not kept")
	}
}

func TestBuilder_String(t *testing.T) {
	s := NewBuilder().
		WithProc("/proc").
		WithTmpfs("/tmp", "size=1m").
		String()
	if !strings.HasPrefix(s, "Mounts: ") {
		t.Errorf("unexpected prefix: %q", s)
	}
	if !strings.Contains(s, "proc[/proc:rw,nosuid,nodev,noexec]") {
		t.Errorf("missing proc: %q", s)
	}
	if !strings.Contains(s, "tmpfs[/tmp]") {
		t.Errorf("missing tmpfs: %q", s)
	}
}
