package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

const formatFlagName = "format"

// addFormatFlag registers --format on cmd. The value lives in cmd's own flag
// set, so commands never see each other's choice.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String(formatFlagName, "", "output format: json or text (default from output.format)")
}

// resolveFormat picks --format over output.format.
func resolveFormat(cmd *cobra.Command, a *cli.App) (config.OutputFormat, error) {
	value, err := cmd.Flags().GetString(formatFlagName)
	if err != nil {
		return "", fmt.Errorf("read --%s: %w", formatFlagName, err)
	}
	if value == "" {
		return a.Config.Output.Format, nil
	}
	switch f := config.OutputFormat(strings.ToLower(value)); f {
	case config.OutputJSON, config.OutputText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use: json, text)", value)
	}
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
