package nsinit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"

	"github.com/criyle/go-nsinit/pkg/logger"
	"github.com/criyle/go-nsinit/pkg/seccomp/libseccomp"
)

// NamespaceFlags are the namespaces created for the shell
const NamespaceFlags = unix.CLONE_NEWUTS | unix.CLONE_NEWPID | unix.CLONE_NEWNS

// defaults
const (
	DefaultShell      = "/bin/bash"
	DefaultProcTarget = "/proc"

	hostNameMax = 64
)

// Config defines the launcher and the namespace init
type Config struct {
	// Shell is executed with ShellArgs once /proc is mounted
	Shell     string   `yaml:"shell"`
	ShellArgs []string `yaml:"shellArgs"`

	// Env for the shell, nil inherits the launcher environment
	Env []string `yaml:"env"`

	// HostName and DomainName are set in the new UTS namespace if not empty
	HostName   string `yaml:"hostname"`
	DomainName string `yaml:"domainname"`

	// ProcTarget is where procfs is mounted, it must exist
	ProcTarget string `yaml:"procTarget"`

	// Tmpfs are private tmpfs mounted after proc, created if missing
	Tmpfs []string `yaml:"tmpfs"`

	// WorkDir is the working directory of the shell
	WorkDir string `yaml:"workdir"`

	// NoNewPrivs sets no_new_privs on the shell, implied by DenySyscalls
	NoNewPrivs bool `yaml:"noNewPrivs"`

	// DenySyscalls fail with EPERM inside the shell
	DenySyscalls []string `yaml:"denySyscalls"`

	// Setsid runs the shell in a new session. If its stdin is a terminal, the terminal
	// becomes the controlling terminal of that session
	Setsid bool `yaml:"setsid"`

	// PropagateExitStatus makes the launcher exit with the shell exit status
	PropagateExitStatus bool `yaml:"propagateExitStatus"`

	Log logger.Config `yaml:"log"`
}

// DefaultConfig returns the config of an interactive bash with private /proc
func DefaultConfig() Config {
	return Config{
		Shell:               DefaultShell,
		ShellArgs:           []string{"-i"},
		ProcTarget:          DefaultProcTarget,
		PropagateExitStatus: true,
		Log: logger.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads yaml config file on top of DefaultConfig
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks the config before launch.
// The shell is not checked for existence, it is resolved inside the new namespaces
func (c *Config) Validate() error {
	var errs []error
	if c.Shell == "" {
		errs = append(errs, errors.New("shell is empty"))
	} else if !filepath.IsAbs(c.Shell) {
		errs = append(errs, fmt.Errorf("shell %q is not an absolute path", c.Shell))
	}
	if !filepath.IsAbs(c.ProcTarget) {
		errs = append(errs, fmt.Errorf("proc target %q is not an absolute path", c.ProcTarget))
	}
	for _, t := range c.Tmpfs {
		if !filepath.IsAbs(t) {
			errs = append(errs, fmt.Errorf("tmpfs target %q is not an absolute path", t))
		}
	}
	if len(c.HostName) > hostNameMax {
		errs = append(errs, fmt.Errorf("hostname longer than %d bytes", hostNameMax))
	}
	if len(c.DomainName) > hostNameMax {
		errs = append(errs, fmt.Errorf("domainname longer than %d bytes", hostNameMax))
	}
	for _, name := range c.DenySyscalls {
		if _, err := libseccomp.LookupSyscall(name); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
