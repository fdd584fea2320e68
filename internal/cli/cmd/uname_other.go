//go:build !linux && !darwin

package cmd

func kernelRelease() string { return "" }
