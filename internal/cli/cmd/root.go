// Package cmd provides Cobra CLI commands for sysparse.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/domain/build"
)

var (
	app          *cli.App
	buildInfo    build.Info
	logLevelFlag string
	rootCmd      = &cobra.Command{
		Use:   "sysparse",
		Short: "Parse systemd unit files and ip addr output",
		Long: `sysparse turns systemd unit files and iproute2 output into structured data.

Features:
  - Parse unit files into JSON and render them back to unit syntax
  - Edit ExecStart, Description and dependencies without touching the rest
  - Keep a local catalog of imported units (SQLite) and browse it
  - Watch unit files and re-parse them as they change
  - Parse 'ip addr' output into interfaces and addresses

Use 'sysparse unit parse <file>' to get started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{LogLevel: logLevelFlag})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// requireApp returns the app or an error when PersistentPreRunE was skipped.
func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, cli.ErrNotInitialized
	}
	return app, nil
}
