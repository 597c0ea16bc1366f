package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/infra/storage"
	"github.com/tbuendia/incidentctl/internal/repo"
)

type tuiClock struct {
	now time.Time
}

func (c *tuiClock) Now() time.Time {
	return c.now
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	clock := &tuiClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	store := storage.New(t.TempDir(), cfg.Storage.MaxBackups, clock)
	incidents, _, err := repo.Open(store, clock, nil)
	require.NoError(t, err)

	m := New(app.NewWithDeps(cfg, incidents, store, clock))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// drain applies a command's message back into the model, like the
// bubbletea runtime would.
func drain(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func TestModel_ReloadShowsIncidents(t *testing.T) {
	m := newTestModel(t)
	_, err := m.container.Incidents.Create(domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts")
	require.NoError(t, err)

	m.Update(refreshMsg{})
	require.Len(t, m.incidents, 1)
	assert.Contains(t, m.View(), "credential stuffing attempts")
}

func TestModel_CreateFlow(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	drain(m, cmd)
	require.Equal(t, ModeCreate, m.mode)

	// Focus the description field and type.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	drain(m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	drain(m, cmd)
	require.Equal(t, fieldDescription, m.createFocus)
	for _, r := range "checkout errors spiking" {
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drain(m, cmd)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m, cmd)

	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.incidents, 1)
	assert.Equal(t, "checkout errors spiking", m.incidents[0].Description)
	assert.Equal(t, domain.PriorityMedium, m.incidents[0].Priority)
}

func TestModel_CreateFlow_CancelsOnEscape(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	drain(m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(m, cmd)

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.incidents)
}

func TestModel_AssignFlow(t *testing.T) {
	m := newTestModel(t)
	_, err := m.container.Incidents.Create(domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts")
	require.NoError(t, err)
	m.Update(refreshMsg{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	drain(m, cmd)
	require.Equal(t, ModeAssign, m.mode)

	for _, r := range "ana" {
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drain(m, cmd)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m, cmd)

	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.incidents, 1)
	assert.Equal(t, domain.StatusInProgress, m.incidents[0].Status)
	assert.Equal(t, "ana", m.incidents[0].AssignedTo)
}

func TestModel_ResolveShowsError(t *testing.T) {
	m := newTestModel(t)
	_, err := m.container.Incidents.Create(domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts")
	require.NoError(t, err)
	m.Update(refreshMsg{})

	// pending -> resolved is forbidden; the error lands in the status line.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	drain(m, cmd)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_StatsView(t *testing.T) {
	m := newTestModel(t)
	_, err := m.container.Incidents.Create(domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts")
	require.NoError(t, err)
	m.Update(refreshMsg{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	drain(m, cmd)
	require.Equal(t, ModeStats, m.mode)
	assert.Contains(t, m.View(), "Total incidents: 1")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(m, cmd)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_DetailView(t *testing.T) {
	m := newTestModel(t)
	_, err := m.container.Incidents.Create(domain.TypeInfrastructure, domain.PriorityCritical, "core switch down in dc1")
	require.NoError(t, err)
	m.Update(refreshMsg{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m, cmd)
	require.Equal(t, ModeDetail, m.mode)
	view := m.View()
	assert.Contains(t, view, "core switch down in dc1")
	assert.Contains(t, view, "History")
}
