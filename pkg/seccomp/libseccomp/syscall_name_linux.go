package libseccomp

import (
	"fmt"

	"github.com/elastic/go-seccomp-bpf/arch"
)

var info, errInfo = arch.GetInfo("")

// LookupSyscall convert syscall name to its number on the running architecture
func LookupSyscall(name string) (int, error) {
	if errInfo != nil {
		return 0, errInfo
	}
	n, ok := info.SyscallNames[name]
	if !ok {
		return 0, fmt.Errorf("syscall %q does not exist on %s", name, info.Name)
	}
	return n, nil
}
