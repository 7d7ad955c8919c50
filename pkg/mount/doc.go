// Package mount describes mounts performed by the forked child inside a new
// mount namespace and converts them to raw syscall arguments before fork.
package mount
