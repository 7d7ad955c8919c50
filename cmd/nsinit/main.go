// Command nsinit starts an interactive shell in new UTS, PID and mount
// namespaces with a private /proc.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/criyle/go-nsinit/nsinit"
	"github.com/criyle/go-nsinit/pkg/logger"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("nsinit", flag.ContinueOnError)
	var (
		configFile    = fs.String("config", "", "yaml config file")
		shell         = fs.String("shell", nsinit.DefaultShell, "shell executed in the namespaces")
		hostName      = fs.String("hostname", "", "hostname in the new UTS namespace")
		domainName    = fs.String("domainname", "", "domainname in the new UTS namespace")
		workDir       = fs.String("workdir", "", "working directory of the shell")
		denySyscalls  = fs.StringArray("deny-syscall", nil, "syscall failing with EPERM in the shell (repeatable)")
		noNewPrivs    = fs.Bool("no-new-privs", false, "set no_new_privs on the shell")
		setsid        = fs.Bool("setsid", false, "run the shell in a new session, stdin becomes its controlling terminal")
		propagateExit = fs.Bool("propagate-exit", true, "exit with the exit status of the shell")
		logLevel      = fs.String("log-level", "info", "log level (debug, info, warn, error)")
		logFormat     = fs.String("log-format", "console", "log format (console, json)")
		showVersion   = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [-- shell args]\n", os.Args[0])
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Println("nsinit", version)
		return 0
	}

	conf := nsinit.DefaultConfig()
	if *configFile != "" {
		c, err := nsinit.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		conf = c
	}

	// flags set explicitly override the config file
	if fs.Changed("shell") {
		conf.Shell = *shell
	}
	if fs.Changed("hostname") {
		conf.HostName = *hostName
	}
	if fs.Changed("domainname") {
		conf.DomainName = *domainName
	}
	if fs.Changed("workdir") {
		conf.WorkDir = *workDir
	}
	if fs.Changed("deny-syscall") {
		conf.DenySyscalls = *denySyscalls
	}
	if fs.Changed("no-new-privs") {
		conf.NoNewPrivs = *noNewPrivs
	}
	if fs.Changed("setsid") {
		conf.Setsid = *setsid
	}
	if fs.Changed("propagate-exit") {
		conf.PropagateExitStatus = *propagateExit
	}
	if fs.Changed("log-level") {
		conf.Log.Level = *logLevel
	}
	if fs.Changed("log-format") {
		conf.Log.Format = *logFormat
	}
	if fs.NArg() > 0 {
		conf.ShellArgs = fs.Args()
	}

	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log, err := logger.New(conf.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer log.Sync()

	// terminal interrupts belong to the shell. Caught rather than ignored so the
	// disposition is reset by execve
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	l := nsinit.NewLauncher(conf, log)
	l.Files = []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd()}

	rt, err := l.Launch(ctx)
	if err != nil {
		var e *nsinit.Error
		if errors.As(err, &e) {
			return e.ExitCode()
		}
		return 1
	}
	log.Debug("finished", zap.Stringer("result", rt))
	if !conf.PropagateExitStatus {
		return 0
	}
	return rt.ExitCode()
}
