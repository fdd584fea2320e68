package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/sysparse/internal/domain/entity"
)

const shortChecksumLen = 12

// RenderUnit colors a unit file for the terminal. Stripped of styles the output is
// exactly file.String(), so it can still be parsed back.
func (t *Theme) RenderUnit(file *entity.SystemdFile) string {
	if file == nil {
		return ""
	}

	raw := file.String()
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	var sb strings.Builder
	for _, line := range lines {
		switch {
		case line == "":
		case strings.HasPrefix(line, "["):
			sb.WriteString(t.Title.Render(line))
		default:
			key, value, _ := strings.Cut(line, "=")
			sb.WriteString(t.Key.Render(key))
			sb.WriteString(t.Subtle.Render("="))
			sb.WriteString(t.Value.Render(value))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderRecord renders catalog metadata followed by the stored unit.
func (t *Theme) RenderRecord(r *entity.UnitRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", t.Highlight.Render(IconFile), t.Title.Render(r.Name))
	if r.Description != "" {
		fmt.Fprintf(&sb, "  %s\n", t.Normal.Render(r.Description))
	}
	fmt.Fprintf(&sb, "  %s %s\n", t.Subtle.Render("source  "), r.SourcePath)
	fmt.Fprintf(&sb, "  %s %s\n", t.Subtle.Render("checksum"), ShortChecksum(r.Checksum))
	fmt.Fprintf(&sb, "  %s %s\n", t.Subtle.Render("imported"), t.TimeBadge(r.ImportedAt))
	fmt.Fprintf(&sb, "  %s %s\n", t.Subtle.Render("updated "), t.TimeBadge(r.UpdatedAt))
	sb.WriteByte('\n')
	sb.WriteString(t.RenderUnit(r.File))

	return sb.String()
}

// ImportLine is one row of an import summary.
type ImportLine struct {
	Name   string
	Path   string
	Status string
}

// RenderImportSummary renders per-file outcomes and the totals.
func (t *Theme) RenderImportSummary(lines []ImportLine, created, updated, unchanged int) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "  %s %s %s\n", t.ImportBadge(l.Status), t.Normal.Render(l.Name), t.Subtle.Render(l.Path))
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s %d created, %d updated, %d unchanged\n",
		t.SuccessStyle.Render(IconCheck), created, updated, unchanged)
	return sb.String()
}

// ShortChecksum trims a hex digest for display.
func ShortChecksum(sum string) string {
	if len(sum) <= shortChecksumLen {
		return sum
	}
	return sum[:shortChecksumLen]
}
