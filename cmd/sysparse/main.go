package main

import (
	"runtime"
	"runtime/debug"

	"github.com/bnema/sysparse/internal/cli/cmd"
	"github.com/bnema/sysparse/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	debug.SetTraceback("crash")

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
