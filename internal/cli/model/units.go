// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sysparse/internal/cli/styles"
	"github.com/bnema/sysparse/internal/domain/entity"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// lines taken by header, help and margins around the table
	chromeHeight   = 8
	minTableHeight = 3
)

// UnitCatalog is what the browser needs from the catalog.
type UnitCatalog interface {
	List(ctx context.Context, limit int) ([]*entity.UnitRecord, error)
	Remove(ctx context.Context, name string) error
}

// UnitsKeyMap defines keybindings for the unit browser.
type UnitsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Back   key.Binding
	Delete key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k UnitsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Reload, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k UnitsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Delete, k.Reload, k.Quit},
	}
}

// DefaultUnitsKeyMap returns the default unit browser bindings.
func DefaultUnitsKeyMap() UnitsKeyMap {
	return UnitsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// UnitsModel browses the unit catalog.
type UnitsModel struct {
	ctx     context.Context
	catalog UnitCatalog
	limit   int
	theme   *styles.Theme
	keys    UnitsKeyMap
	help    help.Model
	spinner spinner.Model

	units    []*entity.UnitRecord
	table    table.Model
	selected *entity.UnitRecord
	loading  bool
	status   string
	err      error
	width    int
	height   int
}

// NewUnitsModel creates the catalog browser. limit bounds how many units are loaded.
func NewUnitsModel(ctx context.Context, theme *styles.Theme, catalog UnitCatalog, limit int) UnitsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc

	return UnitsModel{
		ctx:     ctx,
		catalog: catalog,
		limit:   limit,
		theme:   theme,
		keys:    DefaultUnitsKeyMap(),
		help:    h,
		spinner: sp,
		loading: true,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

type unitsLoadedMsg struct {
	units []*entity.UnitRecord
	err   error
}

type unitRemovedMsg struct {
	name string
	err  error
}

// Init implements tea.Model.
func (m UnitsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m UnitsModel) load() tea.Msg {
	units, err := m.catalog.List(m.ctx, m.limit)
	return unitsLoadedMsg{units: units, err: err}
}

func (m UnitsModel) remove(name string) tea.Cmd {
	return func() tea.Msg {
		return unitRemovedMsg{name: name, err: m.catalog.Remove(m.ctx, name)}
	}
}

// Update implements tea.Model.
func (m UnitsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateTable()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case unitsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.units = msg.units
			m.updateTable()
		}

	case unitRemovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("removed %s", msg.name)
		m.selected = nil
		return m, m.load

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m UnitsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.selected != nil:
		if key.Matches(msg, m.keys.Back) {
			m.selected = nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.selected = m.current()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if cur := m.current(); cur != nil {
			return m, m.remove(cur.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.status = ""
		return m, m.load
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m UnitsModel) current() *entity.UnitRecord {
	if len(m.units) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.units) {
		return nil
	}
	return m.units[idx]
}

func (m *UnitsModel) updateTable() {
	rows := make([]table.Row, len(m.units))
	for i, u := range m.units {
		rows[i] = styles.UnitRow(u)
	}

	height := max(min(len(rows), m.height-chromeHeight), minTableHeight)

	cursor := m.table.Cursor()
	m.table = styles.NewStyledTable(m.theme, styles.UnitTableColumns(), rows, m.width-4, height)
	if cursor > 0 && cursor < len(rows) {
		m.table.SetCursor(cursor)
	}
}

// View implements tea.Model.
func (m UnitsModel) View() string {
	t := m.theme

	if m.loading {
		return t.Box.Render(m.spinner.View() + " " + t.Subtle.Render("Loading units..."))
	}
	if m.err != nil {
		return t.Box.Render(t.ErrorStyle.Render("Error: " + m.err.Error()))
	}
	if m.selected != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.RenderRecord(m.selected),
			t.Subtle.Render("esc to go back, q to quit"),
		)
	}
	if len(m.units) == 0 {
		return t.Box.Render(t.Subtle.Render("No units in the catalog. Run 'sysparse unit import' first."))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("Unit catalog"),
		" ",
		t.Badge.Render(fmt.Sprintf("%d units", len(m.units))),
	)

	parts := []string{header, "", m.table.View(), ""}
	if m.status != "" {
		parts = append(parts, t.SuccessStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var _ tea.Model = (*UnitsModel)(nil)
