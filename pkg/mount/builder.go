package mount

import (
	"strings"

	"golang.org/x/sys/unix"
)

const (
	mFlag = unix.MS_NOSUID | unix.MS_NOATIME | unix.MS_NODEV

	// ProcFlags forbids exec, device files and set-user-ID through the proc mount
	ProcFlags = unix.MS_NOEXEC | unix.MS_NODEV | unix.MS_NOSUID
)

// Builder builds fork_exec friendly mount syscall format
type Builder struct {
	Mounts []Mount
}

// NewBuilder creates new mount builder instance
func NewBuilder() *Builder {
	return &Builder{}
}

// Build creates sequence of syscalls for fork_exec
func (b *Builder) Build() ([]SyscallParams, error) {
	ret := make([]SyscallParams, 0, len(b.Mounts))
	for _, m := range b.Mounts {
		sp, err := m.ToSyscall()
		if err != nil {
			return nil, err
		}
		ret = append(ret, *sp)
	}
	return ret, nil
}

// WithTmpfs add a tmpfs mount to builder, the target is created if missing
func (b *Builder) WithTmpfs(target, data string) *Builder {
	b.Mounts = append(b.Mounts, Mount{
		Source:     "tmpfs",
		Target:     target,
		FsType:     "tmpfs",
		Flags:      mFlag,
		Data:       data,
		MakeTarget: true,
	})
	return b
}

// WithProc add proc file system at target with noexec, nodev and nosuid.
// The target must already exist
func (b *Builder) WithProc(target string) *Builder {
	b.Mounts = append(b.Mounts, Mount{
		Source: "proc",
		Target: target,
		FsType: "proc",
		Flags:  ProcFlags,
	})
	return b
}

func (b Builder) String() string {
	var sb strings.Builder
	sb.WriteString("Mounts: ")
	for i, m := range b.Mounts {
		sb.WriteString(m.String())
		if i != len(b.Mounts)-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
