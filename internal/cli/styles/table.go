package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sysparse/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// UnitTableColumns returns columns for the unit catalog table.
func UnitTableColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 28},
		{Title: "Description", Width: 40},
		{Title: "Type", Width: 10},
		{Title: "Updated", Width: 12},
	}
}

// UnitRow converts a catalog record to a table row.
func UnitRow(r *entity.UnitRecord) table.Row {
	typ := ""
	if r.File != nil {
		typ = r.File.Service.Type
	}
	return table.Row{r.Name, r.Description, typ, RelativeTime(r.UpdatedAt)}
}
