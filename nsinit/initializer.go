package nsinit

import (
	"os"

	"github.com/criyle/go-nsinit/pkg/forkexec"
	"github.com/criyle/go-nsinit/pkg/mount"
)

// Initializer is the code run as the first process of the new namespaces.
// It runs inside the forked child before execve, so it is described here and
// executed by forkexec.Runner with raw syscalls only.
type Initializer struct {
	// Mounts are performed in order after the mount tree is made private,
	// procfs is always the first one
	Mounts *mount.Builder

	HostName, DomainName string
	WorkDir              string

	// Argv and Env of the shell replacing the init image
	Argv []string
	Env  []string
}

// NewInitializer creates the namespace init from config
func NewInitializer(c *Config) *Initializer {
	mb := mount.NewBuilder().WithProc(c.ProcTarget)
	for _, t := range c.Tmpfs {
		mb.WithTmpfs(t, "")
	}

	argv := make([]string, 0, len(c.ShellArgs)+1)
	argv = append(argv, c.Shell)
	argv = append(argv, c.ShellArgs...)

	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	return &Initializer{
		Mounts:     mb,
		HostName:   c.HostName,
		DomainName: c.DomainName,
		WorkDir:    c.WorkDir,
		Argv:       argv,
		Env:        env,
	}
}

// Runner converts the init to forkexec runner in the namespaces defined by NamespaceFlags
func (i *Initializer) Runner() (*forkexec.Runner, error) {
	mounts, err := i.Mounts.Build()
	if err != nil {
		return nil, err
	}
	return &forkexec.Runner{
		Args:       i.Argv,
		Env:        i.Env,
		WorkDir:    i.WorkDir,
		CloneFlags: NamespaceFlags,
		Mounts:     mounts,
		HostName:   i.HostName,
		DomainName: i.DomainName,
	}, nil
}
