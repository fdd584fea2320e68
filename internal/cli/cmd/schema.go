package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	schemaprovider "github.com/bnema/sysparse/internal/infrastructure/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [kind]",
	Short: "Print the JSON schema of a document sysparse reads or writes",
	Long: `Print a JSON schema.

Without an argument the available kinds are listed.

Examples:
  sysparse schema
  sysparse schema unit > unit.schema.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return schemaprovider.NewProvider().Kinds(), cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(w, a.Theme.Title.Render("Available schemas:"))
		fmt.Fprintln(w, "  "+strings.Join(a.SchemaUC.Kinds(), "\n  "))
		return nil
	}

	data, err := a.SchemaUC.Execute(a.Ctx(), args[0])
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
