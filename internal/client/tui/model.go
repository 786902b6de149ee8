// Package tui is the terminal search surface. ctrl+k opens it and esc
// closes it; both bindings only respond for viewers whose role may search
// employees.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
	"github.com/dmitrijs2005/hrportal/internal/client/search"
)

// DefaultAuthorizedRoles may open the search surface.
var DefaultAuthorizedRoles = []string{"admin", "hr_admin", "hr_manager"}

const unauthorizedNotice = "Employee search is available to HR staff only."

// RoleChecker answers whether the viewer holds one of the roles.
type RoleChecker interface {
	HasRole(roles ...string) bool
}

// Searcher is the part of search.Searcher the surface drives.
type Searcher interface {
	Open()
	Close()
	IsOpen() bool
	Input(q string)
	Snapshot() search.State
	OnChange(fn func(search.State))
}

// stateChangedMsg tells the model to re-read the searcher.
type stateChangedMsg struct{}

type Model struct {
	searcher Searcher
	roles    RoleChecker
	allowed  []string

	input    textinput.Model
	state    search.State
	changed  chan struct{}
	cursor   int
	selected *api.EmployeeSummary
	notice   string
	styles   Styles
	width    int
}

// New builds the surface. A nil allowed list selects DefaultAuthorizedRoles.
func New(s Searcher, roles RoleChecker, allowed []string) Model {
	if allowed == nil {
		allowed = DefaultAuthorizedRoles
	}

	ti := textinput.New()
	ti.Placeholder = "Search employees by name, code or email"
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Width = 48

	changed := make(chan struct{}, 1)
	s.OnChange(func(search.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	return Model{
		searcher: s,
		roles:    roles,
		allowed:  allowed,
		input:    ti,
		state:    s.Snapshot(),
		changed:  changed,
		styles:   DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changed
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// Authorized reports whether the viewer may use the bindings.
func (m Model) Authorized() bool {
	return m.roles != nil && m.roles.HasRole(m.allowed...)
}

// Selected returns the employee picked with enter, nil when none.
func (m Model) Selected() *api.EmployeeSummary { return m.selected }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) refresh() {
	m.state = m.searcher.Snapshot()
	if m.cursor >= len(m.state.Results) {
		m.cursor = max(len(m.state.Results)-1, 0)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.searcher.Close()
		return m, tea.Quit
	}

	open := m.searcher.IsOpen()
	if !open && key == "q" {
		return m, tea.Quit
	}

	if !m.Authorized() {
		if key == "ctrl+k" || key == "esc" {
			m.notice = unauthorizedNotice
		}
		return m, nil
	}
	m.notice = ""

	switch key {
	case "ctrl+k":
		if !open {
			m.searcher.Open()
			m.input.Reset()
			m.cursor = 0
			m.refresh()
			return m, m.input.Focus()
		}
		return m, nil
	case "esc":
		if open {
			m.searcher.Close()
			m.input.Blur()
			m.input.Reset()
			m.refresh()
		}
		return m, nil
	}

	if !open {
		return m, nil
	}

	switch key {
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.state.Results)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(m.state.Results) {
			e := m.state.Results[m.cursor]
			m.selected = &e
			m.searcher.Close()
			m.input.Blur()
			m.input.Reset()
			m.refresh()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.searcher.Input(v)
		m.refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("HR Portal"))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}

	if !m.state.Open {
		if m.selected != nil {
			b.WriteString(fmt.Sprintf("Selected: %s (%s)\n", m.selected.FullName(), m.selected.EmpCode))
		}
		b.WriteString(m.styles.Muted.Render("ctrl+k search · q quit"))
		b.WriteString("\n")
		return b.String()
	}

	var body strings.Builder
	body.WriteString(m.input.View())
	body.WriteString("\n")
	switch {
	case m.state.Loading:
		body.WriteString(m.styles.Hint.Render("Searching…"))
		body.WriteString("\n")
	case m.state.Hint != "":
		body.WriteString(m.styles.Hint.Render(m.state.Hint))
		body.WriteString("\n")
	case len(m.state.Results) == 0 && strings.TrimSpace(m.state.Query) != "":
		body.WriteString(m.styles.Hint.Render("No employees found"))
		body.WriteString("\n")
	}
	for i, e := range m.state.Results {
		line := formatRow(e)
		if i == m.cursor {
			body.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			body.WriteString(m.styles.Row.Render(line))
		}
		body.WriteString("\n")
	}
	body.WriteString(m.styles.Muted.Render("↑/↓ move · enter select · esc close"))

	b.WriteString(m.styles.Box.Render(body.String()))
	b.WriteString("\n")
	return b.String()
}

func formatRow(e api.EmployeeSummary) string {
	parts := []string{e.FullName(), e.EmpCode}
	if e.DepartmentName != nil && *e.DepartmentName != "" {
		parts = append(parts, *e.DepartmentName)
	}
	if e.Status != "" {
		parts = append(parts, e.Status)
	}
	return strings.Join(parts, " · ")
}

// Run shows the surface until the viewer quits or ctx ends, and returns the
// employee picked, if any.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (*api.EmployeeSummary, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	m.searcher.Close()
	if err != nil {
		return nil, fmt.Errorf("search surface: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Selected(), nil
	}
	return nil, nil
}
