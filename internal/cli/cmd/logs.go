package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/sysparse/internal/cli"
	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/infrastructure/config"
	"github.com/bnema/sysparse/internal/logging"
)

var (
	logsFollow   bool
	logsLines    int
	logsClearAll bool
)

const (
	defaultLogsLines = 50
	defaultMaxAge    = 7
	followInterval   = 100 * time.Millisecond
)

var logsCmd = &cobra.Command{
	Use:   "logs [run]",
	Short: "View run logs",
	Long: `View sysparse log files by run.

Each invocation with file logging enabled writes run_<id>.log to the log
directory. Without arguments, lists all runs. With a run ID (or partial
match), shows the log of that run.

Examples:
  sysparse logs                 # List all runs
  sysparse logs a7b3            # View the run ending in 'a7b3'
  sysparse logs -f a7b3         # Follow a run in real-time
  sysparse logs -n 100 a7b3     # Show last 100 lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear old log files",
	Long: `Remove old run log files.

By default, removes runs older than the configured max_age (default 7 days).
Use --all to remove every run log.`,
	Args: cobra.NoArgs,
	RunE: runLogsClear,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsClearCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "remove all run logs")
}

// RunInfo describes one run: its live log plus any rotated backups.
type RunInfo struct {
	RunID   string
	ShortID string
	Path    string
	// Files holds every file of the run, live log included when present.
	Files   []string
	Backups int
	Size    int64
	ModTime time.Time
}

func runLogs(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	logDir := logDirFor(a)

	if len(args) == 0 {
		return listRuns(out, logDir, a.Theme)
	}

	run, err := findRun(logDir, args[0])
	if err != nil {
		return err
	}

	if _, err := os.Stat(run.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("run '%s' has no live log (%d rotated files in %s)", run.ShortID, run.Backups, logDir)
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	if logsFollow {
		ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tailRun(ctx, out, run.Path, a.Theme)
	}
	return showRun(out, run.Path, logsLines, a.Theme)
}

func logDirFor(a *cli.App) string {
	if a.Config != nil && a.Config.Logging.LogDir != "" {
		return a.Config.Logging.LogDir
	}
	dir, err := config.GetLogDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sysparse", "logs")
	}
	return dir
}

func listRuns(w io.Writer, logDir string, theme *styles.Theme) error {
	runs, err := getRuns(logDir)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, theme.Subtle.Render("No runs found. Set logging.enable_file_log = true to record them."))
		return nil
	}

	fmt.Fprintln(w, theme.Title.Render("Runs (newest first):"))
	fmt.Fprintln(w)

	for i := range runs {
		r := &runs[i]
		size := styles.FormatSize(r.Size)
		if r.Backups > 0 {
			size += fmt.Sprintf(", %d rotated", r.Backups)
		}
		fmt.Fprintf(w, "  %s  %s  %s\n",
			theme.Highlight.Render(r.ShortID),
			theme.Subtle.Render(r.ModTime.Format("2006-01-02 15:04:05")),
			theme.Subtle.Render("("+size+")"),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Subtle.Render("Use 'sysparse logs <id>' to view a run"))
	return nil
}

// getRuns returns all runs in logDir, newest first.
// Rotated backups (run_<id>.<n>.log[.gz]) are folded into their run.
func getRuns(logDir string) ([]RunInfo, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	byID := make(map[string]*RunInfo)
	var order []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		runID, seq, ok := logging.ParseRunFile(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		run, seen := byID[runID]
		if !seen {
			run = &RunInfo{
				RunID:   runID,
				ShortID: logging.ShortRunID(runID),
				Path:    filepath.Join(logDir, logging.RunFilename(runID)),
			}
			byID[runID] = run
			order = append(order, runID)
		}
		run.Files = append(run.Files, filepath.Join(logDir, entry.Name()))
		run.Size += info.Size()
		if seq > 0 {
			run.Backups++
		}
		if info.ModTime().After(run.ModTime) {
			run.ModTime = info.ModTime()
		}
	}

	runs := make([]RunInfo, 0, len(order))
	for _, id := range order {
		runs = append(runs, *byID[id])
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].ModTime.Equal(runs[j].ModTime) {
			return runs[i].RunID > runs[j].RunID
		}
		return runs[i].ModTime.After(runs[j].ModTime)
	})
	return runs, nil
}

// findRun finds a run by short ID, then by partial match on the full ID.
func findRun(logDir, query string) (*RunInfo, error) {
	runs, err := getRuns(logDir)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.New("no runs found")
	}

	q := strings.ToLower(strings.TrimSpace(query))
	for i := range runs {
		if strings.EqualFold(runs[i].ShortID, q) {
			return &runs[i], nil
		}
	}

	var matches []RunInfo
	for i := range runs {
		if strings.Contains(strings.ToLower(runs[i].RunID), q) {
			matches = append(matches, runs[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no run matching '%s' found", query)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i := range matches {
			ids[i] = matches[i].ShortID
		}
		return nil, fmt.Errorf("multiple runs match '%s': %s", query, strings.Join(ids, ", "))
	}
}

// showRun prints the last n lines of a run log.
func showRun(w io.Writer, logPath string, n int, theme *styles.Theme) (retErr error) {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	for _, line := range lines {
		fmt.Fprintln(w, colorizeLogLine(line, theme))
	}
	return nil
}

// tailRun follows a run log until ctx is cancelled.
func tailRun(ctx context.Context, w io.Writer, logPath string, theme *styles.Theme) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	fmt.Fprintln(w, theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Fprintln(w)

	reader := bufio.NewReader(file)
	pending := ""
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()

	for {
		chunk, err := reader.ReadString('\n')
		pending += chunk
		for {
			idx := strings.IndexByte(pending, '\n')
			if idx == -1 {
				break
			}
			fmt.Fprintln(w, colorizeLogLine(pending[:idx], theme))
			pending = pending[idx+1:]
		}

		switch {
		case err == nil:
			continue
		case errors.Is(err, io.EOF):
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		default:
			return fmt.Errorf("read log file: %w", err)
		}
	}
}

// logEntry is the subset of a JSON log line shown by `logs`.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
	Error     string `json:"error"`
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return formatJSONLogLine(entry, theme)
	}

	switch {
	case containsAny(line, "ERR", "error"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN", "warn"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "debug"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format("15:04:05")
	}

	var level string
	switch entry.Level {
	case "error", "fatal", "panic":
		level = theme.ErrorStyle.Render("ERR")
	case "warn":
		level = theme.WarningStyle.Render("WRN")
	case "info":
		level = theme.Highlight.Render("INF")
	case "debug":
		level = theme.Subtle.Render("DBG")
	case "trace":
		level = theme.Subtle.Render("TRC")
	default:
		level = entry.Level
	}

	parts := []string{theme.Subtle.Render(timeStr), level}
	if entry.Component != "" {
		parts = append(parts, theme.Key.Render("["+entry.Component+"]"))
	}
	parts = append(parts, entry.Message)
	if entry.Error != "" {
		parts = append(parts, theme.ErrorStyle.Render("error="+entry.Error))
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

func runLogsClear(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	maxAge := defaultMaxAge
	if a.Config != nil && a.Config.Logging.MaxAge > 0 {
		maxAge = a.Config.Logging.MaxAge
	}
	return clearRuns(cmd.OutOrStdout(), logDirFor(a), maxAge, logsClearAll, a.Theme)
}

func clearRuns(w io.Writer, logDir string, maxAge int, all bool, theme *styles.Theme) error {
	runs, err := getRuns(logDir)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, theme.Subtle.Render("No logs to clear"))
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -maxAge)
	removed := 0
	for i := range runs {
		r := &runs[i]
		if !all && !r.ModTime.Before(cutoff) {
			continue
		}
		if err := removeRunFiles(r); err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", theme.ErrorStyle.Render(styles.IconX), r.ShortID, err)
			continue
		}
		fmt.Fprintf(w, "%s %s (%s)\n", theme.SuccessStyle.Render(styles.IconCheck), r.ShortID, styles.FormatSize(r.Size))
		removed++
	}

	if removed == 0 {
		fmt.Fprintln(w, theme.Subtle.Render(fmt.Sprintf("No runs older than %d days", maxAge)))
		return nil
	}
	fmt.Fprintf(w, "\n%s\n", theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d run(s)", removed)))
	return nil
}

// removeRunFiles deletes the live log and every backup of r.
func removeRunFiles(r *RunInfo) error {
	var errs []error
	for _, path := range r.Files {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
