package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/cli/model"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/domain/entity"
	"github.com/bnema/sysparse/internal/infrastructure/config"
)

const defaultListLimit = 100

var (
	unitListLimit  int
	unitExportOut  string
	unitBrowseSize int
)

var unitImportCmd = &cobra.Command{
	Use:   "import <file|pattern>...",
	Short: "Parse unit files and store them in the catalog",
	Long: `Parse unit files and store them in the local catalog.

Patterns use doublestar syntax, so '**' matches nested directories. Units
whose content did not change since the last import are left alone.

Examples:
  sysparse unit import unit.service
  sysparse unit import '/etc/systemd/system/**/*.service'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnitImport,
}

var unitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List units in the catalog",
	Args:    cobra.NoArgs,
	RunE:    runUnitList,
}

var unitShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a cataloged unit with its metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitShow,
}

var unitExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Render a cataloged unit back to unit file syntax",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnitExport,
}

var unitRemoveCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"remove"},
	Short:   "Remove units from the catalog",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runUnitRemove,
}

var unitBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Args:  cobra.NoArgs,
	RunE:  runUnitBrowse,
}

func init() {
	unitCmd.AddCommand(unitImportCmd, unitListCmd, unitShowCmd, unitExportCmd, unitRemoveCmd, unitBrowseCmd)

	addFormatFlag(unitImportCmd)
	addFormatFlag(unitListCmd)
	addFormatFlag(unitShowCmd)
	unitListCmd.Flags().IntVarP(&unitListLimit, "limit", "n", defaultListLimit, "maximum number of units")
	unitExportCmd.Flags().StringVarP(&unitExportOut, "output", "o", stdinName, "destination file, '-' for stdout")
	unitBrowseCmd.Flags().IntVarP(&unitBrowseSize, "limit", "n", defaultListLimit, "maximum number of units loaded")
}

func runUnitImport(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	out, err := a.ManageUC.Import(a.Ctx(), args...)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == config.OutputJSON {
		return writeJSON(w, out, a.Config.Output.Pretty)
	}

	lines := make([]styles.ImportLine, len(out.Results))
	for i, r := range out.Results {
		lines[i] = styles.ImportLine{Name: r.Name, Path: r.Path, Status: string(r.Status)}
	}
	fmt.Fprint(w, a.Theme.RenderImportSummary(lines, out.Created, out.Updated, out.Unchanged))
	return nil
}

func runUnitList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	records, err := a.ManageUC.List(a.Ctx(), unitListLimit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == config.OutputJSON {
		if records == nil {
			records = []*entity.UnitRecord{}
		}
		return writeJSON(w, records, a.Config.Output.Pretty)
	}
	printUnitList(w, a, records)
	return nil
}

func printUnitList(w io.Writer, a *cli.App, records []*entity.UnitRecord) {
	t := a.Theme
	if len(records) == 0 {
		fmt.Fprintln(w, t.Subtle.Render("No units in the catalog. Run 'sysparse unit import <file>' first."))
		return
	}

	fmt.Fprintln(w, t.Title.Render(fmt.Sprintf("Units (%d, newest first):", len(records))))
	fmt.Fprintln(w)
	for _, r := range records {
		typ := ""
		if r.File != nil && r.File.Service.Type != "" {
			typ = t.MutedBadge(r.File.Service.Type)
		}
		fmt.Fprintf(w, "  %s  %s %s  %s\n",
			t.Highlight.Render(r.Name),
			t.Normal.Render(r.Description),
			typ,
			t.Subtle.Render(styles.RelativeTime(r.UpdatedAt)),
		)
	}
}

func runUnitShow(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	record, err := a.ManageUC.Get(a.Ctx(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == config.OutputJSON {
		return writeJSON(w, record, a.Config.Output.Pretty)
	}
	fmt.Fprint(w, a.Theme.RenderRecord(record))
	return nil
}

func runUnitExport(cmd *cobra.Command, args []string) (retErr error) {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if unitExportOut == stdinName {
		return a.ManageUC.Export(a.Ctx(), args[0], cmd.OutOrStdout())
	}

	// Look the unit up first so a missing name leaves no empty file behind.
	if _, err := a.ManageUC.Get(a.Ctx(), args[0]); err != nil {
		return err
	}
	f, err := os.Create(unitExportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", unitExportOut, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close %s: %w", unitExportOut, closeErr)
		}
	}()
	return a.ManageUC.Export(a.Ctx(), args[0], f)
}

func runUnitRemove(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range args {
		if err := a.ManageUC.Remove(a.Ctx(), name); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %s\n", a.Theme.SuccessStyle.Render(styles.IconCheck), name)
	}
	return nil
}

func runUnitBrowse(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	m := model.NewUnitsModel(a.Ctx(), a.Theme, a.ManageUC, unitBrowseSize)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

var _ model.UnitCatalog = (*usecase.ManageUnitsUseCase)(nil)
