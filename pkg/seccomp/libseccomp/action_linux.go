package libseccomp

import (
	"github.com/criyle/go-nsinit/pkg/seccomp"
	libseccomp "github.com/elastic/go-seccomp-bpf"
)

// ToSeccompAction convert action to libseccomp compatible action
// errno action returns EPERM to the caller
func ToSeccompAction(a seccomp.Action) libseccomp.Action {
	switch a {
	case seccomp.ActionAllow:
		return libseccomp.ActionAllow
	case seccomp.ActionErrno:
		return libseccomp.ActionErrno
	case seccomp.ActionTrace:
		return libseccomp.ActionTrace
	default:
		return libseccomp.ActionKillProcess
	}
}
