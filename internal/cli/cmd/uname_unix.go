//go:build linux || darwin

package cmd

import (
	"golang.org/x/sys/unix"
)

// kernelRelease returns "Sysname Release", e.g. "Linux 6.18.44".
func kernelRelease() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Sysname[:]) + " " + unix.ByteSliceToString(u.Release[:])
}
