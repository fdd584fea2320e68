package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// ImportBadge renders the outcome of storing one unit in the catalog.
func (t *Theme) ImportBadge(status string) string {
	switch status {
	case "created":
		return t.StatusBadge(status, t.Background, t.Success)
	case "updated":
		return t.StatusBadge(status, t.Background, t.Warning)
	default:
		return t.MutedBadge(status)
	}
}

// LinkStateBadge renders an interface operstate (UP, DOWN, UNKNOWN).
func (t *Theme) LinkStateBadge(state string) string {
	switch state {
	case "UP":
		return t.StatusBadge(state, t.Background, t.Success)
	case "DOWN":
		return t.StatusBadge(state, t.Background, t.Error)
	case "":
		return t.MutedBadge("?")
	default:
		return t.MutedBadge(state)
	}
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	default:
		return tm.Format("Jan 2, 2006")
	}
}

// FormatSize renders a byte count with a binary unit suffix.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
