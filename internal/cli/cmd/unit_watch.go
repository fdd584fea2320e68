package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/application/usecase"
	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/infrastructure/config"
	"github.com/bnema/sysparse/internal/logging"
)

var unitWatchImport bool

var unitWatchCmd = &cobra.Command{
	Use:   "watch <file|dir>...",
	Short: "Re-parse unit files whenever they change",
	Long: `Watch unit files (or directories of unit files) and re-parse them on change.

Bursts of writes are coalesced (watch.debounce_ms). With --import, or
watch.auto_import in the config, every successful parse is stored in the
catalog, and deleting a watched file removes the record imported from it.
Stops on Ctrl+C.

Examples:
  sysparse unit watch unit.service
  sysparse unit watch --import /etc/systemd/system`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUnitWatch,
}

func init() {
	unitCmd.AddCommand(unitWatchCmd)
	unitWatchCmd.Flags().BoolVar(&unitWatchImport, "import", false, "store every successful parse in the catalog")
	addFormatFlag(unitWatchCmd)
}

func runUnitWatch(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, a)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.Manager != nil {
		a.Manager.OnConfigChange(func(cfg *config.Config) {
			logging.FromContext(ctx).Info().
				Int("debounce_ms", cfg.Watch.DebounceMs).
				Bool("auto_import", cfg.Watch.AutoImport).
				Msg("config changed, restart watch to apply")
		})
		a.Manager.Watch()
	}

	autoImport := unitWatchImport || a.Config.Watch.AutoImport
	w := cmd.OutOrStdout()
	if format == config.OutputText {
		fmt.Fprintln(w, a.Theme.Subtle.Render("Watching... (Ctrl+C to stop)"))
	}

	printer := &changePrinter{w: w, app: a, format: format}
	err = a.WatchUC.Execute(ctx, args, autoImport, printer.print)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// changePrinter serializes output of watch callbacks.
type changePrinter struct {
	mu     sync.Mutex
	w      io.Writer
	app    *cli.App
	format config.OutputFormat
}

type changeLine struct {
	Path    string               `json:"path"`
	Name    string               `json:"name,omitempty"`
	Removed bool                 `json:"removed,omitempty"`
	Import  usecase.ImportStatus `json:"import,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func (p *changePrinter) print(c usecase.UnitChange) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.format == config.OutputJSON {
		line := changeLine{Path: c.Path, Removed: c.Removed, Import: c.Import}
		if c.Unit != nil {
			line.Name = c.Unit.Name
		}
		if c.Err != nil {
			line.Error = c.Err.Error()
		}
		_ = writeJSON(p.w, line, false)
		return
	}

	t := p.app.Theme
	switch {
	case c.Err != nil:
		fmt.Fprintf(p.w, "%s %s %s\n", t.ErrorStyle.Render(styles.IconX), c.Path, t.ErrorStyle.Render(c.Err.Error()))
	case c.Removed:
		fmt.Fprintf(p.w, "%s %s %s\n", t.WarningStyle.Render(styles.IconWarning), c.Path, t.Subtle.Render("removed"))
	default:
		status := ""
		if c.Import != "" {
			status = t.ImportBadge(string(c.Import))
		}
		fmt.Fprintf(p.w, "%s %s %s\n", t.SuccessStyle.Render(styles.IconCheck), c.Path, status)
	}
}
