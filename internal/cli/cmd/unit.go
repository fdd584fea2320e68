package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

const stdinName = "-"

var (
	unitParseStrict bool

	editExecStart      string
	editDescription    string
	editAfter          []string
	editRemoveAfter    []string
	editWants          []string
	editRemoveWants    []string
	editWantedBy       []string
	editRemoveWantedBy []string
	editOutput         string
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Parse, edit and catalog systemd unit files",
}

var unitParseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse unit files and print them as JSON or unit syntax",
	Long: `Parse one or more systemd unit files.

With a single file the JSON output is the parsed unit itself; with several
files it is a list carrying path, name and checksum for each. Use '-' to
read a unit from stdin.

Examples:
  sysparse unit parse unit.service
  sysparse unit parse --format text /etc/systemd/system/*.service
  cat unit.service | sysparse unit parse -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnitParse,
}

var unitEditCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a unit file and write the result",
	Long: `Apply edits to a unit file and render it back to unit syntax.

The source file is never modified. The result goes to updated_unit.service
unless --output is given; '--output -' prints it.

Examples:
  sysparse unit edit unit.service --exec-start "/usr/bin/app --port 8080"
  sysparse unit edit unit.service --after network-online.target --wants network-online.target -o -`,
	Args: cobra.ExactArgs(1),
	RunE: runUnitEdit,
}

func init() {
	rootCmd.AddCommand(unitCmd)
	unitCmd.AddCommand(unitParseCmd, unitEditCmd)

	unitParseCmd.Flags().BoolVar(&unitParseStrict, "strict", false, "reject sections other than [Unit], [Service] and [Install]")
	addFormatFlag(unitParseCmd)

	f := unitEditCmd.Flags()
	f.StringVar(&editExecStart, "exec-start", "", "replace the ExecStart command line")
	f.StringVar(&editDescription, "description", "", "replace the Description")
	f.StringSliceVar(&editAfter, "after", nil, "add After= dependencies")
	f.StringSliceVar(&editRemoveAfter, "remove-after", nil, "remove After= dependencies")
	f.StringSliceVar(&editWants, "wants", nil, "add Wants= dependencies")
	f.StringSliceVar(&editRemoveWants, "remove-wants", nil, "remove Wants= dependencies")
	f.StringSliceVar(&editWantedBy, "wanted-by", nil, "add WantedBy= targets")
	f.StringSliceVar(&editRemoveWantedBy, "remove-wanted-by", nil, "remove WantedBy= targets")
	f.StringVarP(&editOutput, "output", "o", usecase.DefaultEditOutput, "destination file, '-' for stdout")
}

func runUnitParse(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	ctx := a.Ctx()
	parser := a.ParseUC
	if unitParseStrict {
		parser = usecase.NewParseUnitUseCase(true, a.Config.Parser.Workers)
	}

	var units []*usecase.ParsedUnit
	if len(args) == 1 && args[0] == stdinName {
		parsed, err := parser.ParseReader(ctx, "stdin", cmd.InOrStdin())
		if err != nil {
			return err
		}
		units = []*usecase.ParsedUnit{parsed}
	} else {
		units, err = parser.ParseMany(ctx, args)
		if err != nil {
			return err
		}
	}

	return printParsedUnits(cmd.OutOrStdout(), a, format, units)
}

func printParsedUnits(w io.Writer, a *cli.App, format config.OutputFormat, units []*usecase.ParsedUnit) error {
	if format == config.OutputJSON {
		if len(units) == 1 {
			return writeJSON(w, units[0].File, a.Config.Output.Pretty)
		}
		return writeJSON(w, units, a.Config.Output.Pretty)
	}

	for i, u := range units {
		if len(units) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, a.Theme.Subtle.Render("# "+u.Path))
		}
		fmt.Fprint(w, a.Theme.RenderUnit(u.File))
	}
	return nil
}

func runUnitEdit(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	in := usecase.EditUnitInput{
		AddAfter:       editAfter,
		RemoveAfter:    editRemoveAfter,
		AddWants:       editWants,
		RemoveWants:    editRemoveWants,
		AddWantedBy:    editWantedBy,
		RemoveWantedBy: editRemoveWantedBy,
	}
	if cmd.Flags().Changed("exec-start") {
		in.ExecStart = &editExecStart
	}
	if cmd.Flags().Changed("description") {
		in.Description = &editDescription
	}

	w := cmd.OutOrStdout()
	if _, err := a.EditUC.Execute(a.Ctx(), args[0], editOutput, in, w); err != nil {
		return err
	}

	if editOutput != stdinName {
		fmt.Fprintf(w, "%s %s %s %s\n",
			a.Theme.SuccessStyle.Render(styles.IconCheck),
			args[0],
			a.Theme.Subtle.Render(styles.IconArrow),
			a.Theme.Highlight.Render(editOutput),
		)
	}
	return nil
}
