// Package tui implements the interactive incident console.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbuendia/incidentctl/internal/app"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/usecase"
)

// Model is the main bubbletea model for the console.
type Model struct {
	// Dependencies
	container *app.Container
	detail    *domain.Incident
	err       error

	// State
	incidents []*domain.Incident
	status    string

	// Components
	keys         KeyMap
	styles       Styles
	help         help.Model
	incidentList list.Model

	// Input state
	descInput   textinput.Model
	assignInput textinput.Model

	// Numeric state
	mode           Mode
	createFocus    createField
	typeCursor     int
	priorityCursor int
	width          int
	height         int
}

// New creates a new console Model with the given container.
func New(c *app.Container) *Model {
	di := textinput.New()
	di.Placeholder = "Incident description"
	di.CharLimit = domain.MaxDescriptionLen

	ai := textinput.New()
	ai.Placeholder = "Operator id"
	ai.CharLimit = 50

	styles := DefaultStyles()
	incidentList := list.New([]list.Item{}, newIncidentDelegate(styles), 0, 0)
	incidentList.SetShowTitle(false)
	incidentList.SetShowStatusBar(false)
	incidentList.SetShowHelp(false)
	incidentList.SetFilteringEnabled(false)
	incidentList.DisableQuitKeybindings()

	return &Model{
		container:    c,
		keys:         DefaultKeyMap(),
		styles:       styles,
		help:         help.New(),
		incidentList: incidentList,
		descInput:    di,
		assignInput:  ai,
		mode:         ModeNormal,
	}
}

// Init runs the startup commands: a refresh, plus the escalation sweep
// when the configuration asks for one.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return refreshMsg{} }}
	if m.container.Config != nil && m.container.Config.Escalation.SweepOnStart {
		cmds = append(cmds, m.sweepCmd())
	}
	return tea.Batch(cmds...)
}

// Run starts the console and blocks until it exits.
func Run(c *app.Container) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// selectedIncident returns the incident under the cursor, or nil.
func (m *Model) selectedIncident() *domain.Incident {
	item, ok := m.incidentList.SelectedItem().(incidentItem)
	if !ok {
		return nil
	}
	return item.incident
}

// reload pulls the incidents from the repository into the list.
func (m *Model) reload() {
	uc := m.container.ListIncidentsUseCase()
	out, err := uc.Execute(context.Background(), usecase.ListIncidentsInput{})
	if err != nil {
		m.err = err
		return
	}
	m.incidents = out.Incidents
	items := make([]list.Item, 0, len(out.Incidents))
	for _, inc := range out.Incidents {
		items = append(items, incidentItem{incident: inc})
	}
	m.incidentList.SetItems(items)
}

// sweepCmd runs the escalation policy and reports the result.
func (m *Model) sweepCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.SweepEscalationsUseCase().Execute(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		if len(out.EscalatedIDs) == 0 {
			return statusMsg("No incidents due for escalation")
		}
		return statusMsg(fmt.Sprintf("Escalated %d incident(s)", len(out.EscalatedIDs)))
	}
}

// transitionCmd moves the incident to the target status.
func (m *Model) transitionCmd(id int, target domain.Status) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.TransitionIncidentUseCase().Execute(context.Background(), usecase.TransitionIncidentInput{
			IncidentID: id,
			Target:     target,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return statusMsg(fmt.Sprintf("Incident #%d is now %s", out.Incident.ID, out.Incident.Status))
	}
}

// assignCmd assigns the incident to the operator.
func (m *Model) assignCmd(id int, operator string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AssignIncidentUseCase().Execute(context.Background(), usecase.AssignIncidentInput{
			IncidentID: id,
			OperatorID: operator,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return statusMsg(fmt.Sprintf("Incident #%d assigned to %s", out.Incident.ID, out.Incident.AssignedTo))
	}
}

// createCmd registers a new incident from the form state.
func (m *Model) createCmd(typ domain.IncidentType, priority domain.Priority, description string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CreateIncidentUseCase().Execute(context.Background(), usecase.CreateIncidentInput{
			Type:        typ,
			Priority:    priority,
			Description: description,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return statusMsg(fmt.Sprintf("Created incident #%d", out.Incident.ID))
	}
}
