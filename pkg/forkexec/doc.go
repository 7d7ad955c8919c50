// Package forkexec starts a child process in new linux namespaces and prepares it
// with raw syscalls (mounts, hostname, seccomp) before the final execve.
//
// The child is created by clone3 (or clone on older kernels) without CLONE_VM and with
// a NULL stack, so it runs on a copy-on-write duplicate of the caller's stack and no
// stack buffer has to be kept alive by the caller.
//
// unshare pid / mount / uts namespaces requires kernel >= 3.8
// clone3 requires kernel >= 5.3, clone is used as fallback
package forkexec
