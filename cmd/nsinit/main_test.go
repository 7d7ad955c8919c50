package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"version", []string{"--version"}, 0},
		{"help", []string{"--help"}, 0},
		{"unknown flag", []string{"--bogus"}, 2},
		{"relative shell", []string{"--shell", "bash"}, 2},
		{"unknown syscall", []string{"--deny-syscall", "not_a_syscall"}, 2},
		{"bad log format", []string{"--log-format", "xml"}, 2},
		{"missing config", []string{"--config", "/not/exist/nsinit.yaml"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.code {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.code)
			}
		})
	}
}

func TestRun_ExitStatus(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root to create namespaces")
	}
	if got := run([]string{"--shell", "/bin/sh", "--", "-c", "exit 5"}); got != 5 {
		t.Errorf("exit status not propagated: %d", got)
	}
	if got := run([]string{"--shell", "/bin/sh", "--propagate-exit=false", "--", "-c", "exit 5"}); got != 0 {
		t.Errorf("exit status propagated: %d", got)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root to create namespaces")
	}
	path := filepath.Join(t.TempDir(), "nsinit.yaml")
	content := "shell: /bin/sh\nshellArgs: [\"-c\", \"exit 3\"]\nhostname: box\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if got := run([]string{"--config", path}); got != 3 {
		t.Errorf("run with config = %d, want 3", got)
	}
	// missing shell exits like a shell would
	if got := run([]string{"--config", path, "--shell", "/not/exist/sh"}); got != 127 {
		t.Errorf("run with missing shell = %d, want 127", got)
	}
}
