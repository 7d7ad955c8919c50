// Package nsinit starts an interactive shell in new UTS, PID and mount namespaces
// with a private /proc.
//
// The Launcher clones a child with CLONE_NEWUTS | CLONE_NEWPID | CLONE_NEWNS. Inside,
// the child (the namespace init) makes the mount tree private, mounts procfs at /proc
// with noexec, nodev and nosuid, and replaces itself with the shell, which becomes PID 1
// of the new PID namespace. The Launcher then waits until the shell exits.
//
// Nothing is unmounted explicitly: the mount namespace, and the /proc mounted in it, is
// released by the kernel when its last process exits. The same holds for the PID and
// UTS namespaces.
//
// Creating the namespaces requires CAP_SYS_ADMIN.
package nsinit
