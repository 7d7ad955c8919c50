package mount

import (
	"fmt"
	"syscall"
)

// Mount defines syscall for mount points
type Mount struct {
	Source, Target, FsType, Data string
	Flags                        uintptr

	// MakeTarget creates the target and all its parents before mount.
	// When false a missing target fails the mount
	MakeTarget bool
}

// SyscallParams defines the raw syscall arguments to mount
type SyscallParams struct {
	Source, Target, FsType, Data *byte
	Flags                        uintptr
	Prefixes                     []*byte
}

// ToSyscall convert Mount to SyscallPrams
func (m *Mount) ToSyscall() (*SyscallParams, error) {
	var data *byte
	source, err := syscall.BytePtrFromString(m.Source)
	if err != nil {
		return nil, err
	}
	target, err := syscall.BytePtrFromString(m.Target)
	if err != nil {
		return nil, err
	}
	fsType, err := syscall.BytePtrFromString(m.FsType)
	if err != nil {
		return nil, err
	}
	if m.Data != "" {
		data, err = syscall.BytePtrFromString(m.Data)
		if err != nil {
			return nil, err
		}
	}
	var paths []*byte
	if m.MakeTarget {
		paths, err = arrayPtrFromStrings(pathPrefix(m.Target))
		if err != nil {
			return nil, err
		}
	}
	return &SyscallParams{
		Source:   source,
		Target:   target,
		FsType:   fsType,
		Flags:    m.Flags,
		Data:     data,
		Prefixes: paths,
	}, nil
}

// IsTmpFs returns if it is a tmpfs mount
func (m Mount) IsTmpFs() bool {
	return m.FsType == "tmpfs"
}

// IsProc returns if it is a procfs mount
func (m Mount) IsProc() bool {
	return m.FsType == "proc"
}

// pathPrefix get all components from path
func pathPrefix(path string) []string {
	ret := make([]string, 0)
	for i := 1; i < len(path); i++ {
		if path[i] == '/' {
			ret = append(ret, path[:i])
		}
	}
	ret = append(ret, path)
	return ret
}

// arrayPtrFromStrings converts srings to c style strings
func arrayPtrFromStrings(strs []string) ([]*byte, error) {
	bytes := make([]*byte, 0, len(strs))
	for _, s := range strs {
		b, err := syscall.BytePtrFromString(s)
		if err != nil {
			return nil, err
		}
		bytes = append(bytes, b)
	}
	return bytes, nil
}

func (m Mount) String() string {
	switch {
	case m.IsTmpFs():
		return fmt.Sprintf("tmpfs[%s]", m.Target)

	case m.IsProc():
		return fmt.Sprintf("proc[%s:%s]", m.Target, procOptions(m.Flags))

	default:
		return fmt.Sprintf("mount[%s,%s:%s:%x,%s]", m.FsType, m.Source, m.Target, m.Flags, m.Data)
	}
}

// procOptions renders the flags as mount(8) style options
func procOptions(flags uintptr) string {
	opt := "rw"
	if flags&syscall.MS_RDONLY != 0 {
		opt = "ro"
	}
	for _, f := range []struct {
		flag uintptr
		name string
	}{
		{syscall.MS_NOSUID, "nosuid"},
		{syscall.MS_NODEV, "nodev"},
		{syscall.MS_NOEXEC, "noexec"},
	} {
		if flags&f.flag != 0 {
			opt += "," + f.name
		}
	}
	return opt
}
