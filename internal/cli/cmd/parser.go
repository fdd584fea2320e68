package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/pkg/sysparse"
)

var parserFile string

var parserCmd = &cobra.Command{
	Use:   "parser",
	Short: "Run the zero-argument parser entry point",
	Long: `Parse the default unit file and log the result.

The file is parser.default_unit from the config (SYSPARSE_UNIT_FILE
overrides it, default unit.service). The parsed unit is logged as JSON at
info level; failures are logged at error level and never fail the command.`,
	Args: cobra.NoArgs,
	RunE: runParser,
}

func init() {
	rootCmd.AddCommand(parserCmd)
	parserCmd.Flags().StringVar(&parserFile, "file", "", "parse this file instead of parser.default_unit")
}

func runParser(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	path := parserFile
	if path == "" {
		path = a.Config.Parser.DefaultUnit
	}
	sysparse.ParserAt(a.Ctx(), path)
	return nil
}
