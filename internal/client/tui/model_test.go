package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrportal/internal/client/api"
	"github.com/dmitrijs2005/hrportal/internal/client/search"
)

type fakeRoles struct {
	role string
}

func (f *fakeRoles) HasRole(roles ...string) bool {
	for _, r := range roles {
		if r == f.role {
			return true
		}
	}
	return false
}

type fakeLookup struct {
	results []api.EmployeeSummary
}

func (f *fakeLookup) SearchEmployees(context.Context, string, int) ([]api.EmployeeSummary, error) {
	return f.results, nil
}

func newModel(t *testing.T, role string) (Model, *search.Searcher) {
	t.Helper()
	lookup := &fakeLookup{results: []api.EmployeeSummary{
		{EmployeeID: "1", FirstName: "Ann", LastName: "Lee", EmpCode: "E-1", Status: "active"},
		{EmployeeID: "2", FirstName: "Anna", LastName: "Kim", EmpCode: "E-2", Status: "active"},
	}}
	s := search.New(lookup, search.Options{Debounce: time.Hour})
	t.Cleanup(s.Close)
	return New(s, &fakeRoles{role: role}, nil), s
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var (
	ctrlK = tea.KeyMsg{Type: tea.KeyCtrlK}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_CtrlKOpensAndEscCloses(t *testing.T) {
	m, s := newModel(t, "hr_admin")
	require.True(t, m.Authorized())

	m, _ = press(t, m, ctrlK)
	assert.True(t, s.IsOpen())

	m, _ = press(t, m, ctrlK)
	assert.True(t, s.IsOpen(), "ctrl+k on an open surface is a no-op")

	m, _ = press(t, m, esc)
	assert.False(t, s.IsOpen())

	_, _ = press(t, m, esc)
	assert.False(t, s.IsOpen(), "esc on a closed surface is a no-op")
}

func TestModel_UnauthorizedKeysIgnored(t *testing.T) {
	for _, role := range []string{"employee", ""} {
		m, s := newModel(t, role)
		assert.False(t, m.Authorized())

		m, cmd := press(t, m, ctrlK)
		assert.Nil(t, cmd)
		assert.False(t, s.IsOpen())
		assert.Contains(t, m.View(), unauthorizedNotice)
	}
}

func TestModel_NilRoleCheckerIsUnauthorized(t *testing.T) {
	s := search.New(&fakeLookup{}, search.Options{Debounce: time.Hour})
	m := New(s, nil, nil)
	assert.False(t, m.Authorized())
}

func TestModel_CustomAllowedRoles(t *testing.T) {
	s := search.New(&fakeLookup{}, search.Options{Debounce: time.Hour})
	m := New(s, &fakeRoles{role: "recruiter"}, []string{"recruiter"})
	assert.True(t, m.Authorized())
}

func TestModel_TypingFeedsSearcher(t *testing.T) {
	m, s := newModel(t, "admin")
	m, _ = press(t, m, ctrlK)

	m = typeText(t, m, "ann")

	assert.Equal(t, "ann", s.Snapshot().Query)
	assert.Equal(t, "ann", m.input.Value())
}

func TestModel_TypingWhileClosedDoesNothing(t *testing.T) {
	m, s := newModel(t, "admin")

	m = typeText(t, m, "ab")
	assert.Empty(t, s.Snapshot().Query)
	assert.Empty(t, m.input.Value())
}

func TestModel_ReopenStartsClean(t *testing.T) {
	m, s := newModel(t, "hr_manager")
	m, _ = press(t, m, ctrlK)
	m = typeText(t, m, "ann")
	m, _ = press(t, m, esc)
	m, _ = press(t, m, ctrlK)

	assert.Empty(t, m.input.Value())
	assert.Empty(t, s.Snapshot().Query)
}

func TestModel_SelectResult(t *testing.T) {
	m, s := newModel(t, "admin")
	m, _ = press(t, m, ctrlK)
	m = typeText(t, m, "ann")
	s.Flush()

	next, _ := m.Update(stateChangedMsg{})
	m = next.(Model)
	require.Len(t, m.state.Results, 2)
	assert.Contains(t, m.View(), "Anna Kim")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.Selected())
	assert.Equal(t, "2", m.Selected().EmployeeID)
	assert.False(t, s.IsOpen())
	assert.Contains(t, m.View(), "Selected: Anna Kim (E-2)")
}

func TestModel_ShortQueryHint(t *testing.T) {
	m, s := newModel(t, "admin")
	m, _ = press(t, m, ctrlK)
	m = typeText(t, m, "a")
	s.Flush()

	next, _ := m.Update(stateChangedMsg{})
	m = next.(Model)
	assert.Contains(t, m.View(), search.ShortQueryHint)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t, "admin")

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = press(t, m, ctrlK)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, "q", m.input.Value(), "q is text while the surface is open")

	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ChangeSignal(t *testing.T) {
	m, s := newModel(t, "admin")
	cmd := m.Init()
	require.NotNil(t, cmd)

	s.Open()
	select {
	case msg := <-runCmd(cmd):
		assert.IsType(t, stateChangedMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("no change signal")
	}
}

func runCmd(cmd tea.Cmd) <-chan tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	return ch
}
