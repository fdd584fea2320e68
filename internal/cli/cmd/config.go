package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View configuration status or write a fresh default config file.`,
}

var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config file location and effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigStatus,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file and its JSON schema",
	Long: `Write config.toml with every setting at its default value, plus
config.schema.json next to it for editor completion.

An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configStatusCmd, configInitCmd, configPathCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}

func configFilePath(a *cli.App) (string, error) {
	if a.Manager != nil {
		return a.Manager.ConfigFile(), nil
	}
	return config.GetConfigFile()
}

func runConfigStatus(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := configFilePath(a)
	if err != nil {
		return err
	}

	printConfigStatus(cmd.OutOrStdout(), a.Theme, path, a.Config, fileExists(path))
	return nil
}

func printConfigStatus(w io.Writer, t *styles.Theme, path string, cfg *config.Config, exists bool) {
	state := t.SuccessStyle.Render(styles.IconCheck + " found")
	if !exists {
		state = t.WarningStyle.Render(styles.IconWarning + " missing, defaults in use")
	}

	row := func(icon, key, value string) {
		fmt.Fprintf(w, "  %s %s %s\n", t.Highlight.Render(icon), t.Subtle.Render(fmt.Sprintf("%-10s", key)), value)
	}

	fmt.Fprintln(w, t.Title.Render("Configuration"))
	fmt.Fprintln(w)
	row(styles.IconConfig, "file", path+" "+state)
	row(styles.IconDatabase, "database", cfg.Database.Path)
	row(styles.IconLogs, "logs", cfg.Logging.LogDir)
	fmt.Fprintln(w)
	row(styles.IconInfo, "log level", cfg.Logging.Level)
	row(styles.IconInfo, "output", string(cfg.Output.Format))
	row(styles.IconFile, "unit", cfg.Parser.DefaultUnit)
	row(styles.IconInfo, "strict", fmt.Sprintf("%t", cfg.Parser.Strict))
	row(styles.IconInfo, "workers", fmt.Sprintf("%d", cfg.Parser.Workers))
	row(styles.IconClock, "debounce", fmt.Sprintf("%dms", cfg.Watch.DebounceMs))
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := configFilePath(a)
	if err != nil {
		return err
	}

	if err := writeDefaultConfig(path, configForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", a.Theme.SuccessStyle.Render(styles.IconCheck), path)
	return nil
}

var errConfigExists = errors.New("config file already exists")

func writeDefaultConfig(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%w at %s (use --force to overwrite)", errConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		return err
	}
	return config.GenerateSchemaFile(filepath.Dir(path))
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := configFilePath(a)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
