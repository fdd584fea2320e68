package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/infrastructure/config"
	"github.com/bnema/sysparse/pkg/sysparse"
)

var (
	personName string
	personAge  uint8
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Build a Person record and print it",
	Long: `Build a Person with NewPerson, apply --name and --age, and print it.

Without flags the zero record {age: 0 name: } is printed. Age must fit in 0-255.`,
	Args: cobra.NoArgs,
	RunE: runPerson,
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.Flags().StringVar(&personName, "name", "", "person name")
	personCmd.Flags().Uint8Var(&personAge, "age", 0, "person age (0-255)")
	addFormatFlag(personCmd)
}

func runPerson(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	p := sysparse.NewPerson()
	if cmd.Flags().Changed("name") {
		p = p.WithName(personName)
	}
	if cmd.Flags().Changed("age") {
		p = p.WithAge(personAge)
	}

	w := cmd.OutOrStdout()
	if format == config.OutputJSON {
		return writeJSON(w, p, a.Config.Output.Pretty)
	}
	fmt.Fprintln(w, p.String())
	return nil
}
