package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbuendia/incidentctl/internal/domain"
)

// Update handles incoming messages and keypresses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.incidentList.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case refreshMsg:
		m.reload()
		return m, nil

	case errMsg:
		m.err = msg.err
		m.status = ""
		return m, nil

	case statusMsg:
		m.err = nil
		m.status = string(msg)
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeCreate:
			return m.updateCreate(msg)
		case ModeAssign:
			return m.updateAssign(msg)
		case ModeDetail, ModeStats:
			if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
				m.mode = ModeNormal
				m.detail = nil
			}
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}

	var cmd tea.Cmd
	m.incidentList, cmd = m.incidentList.Update(msg)
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeCreate
		m.createFocus = fieldType
		m.typeCursor = 0
		m.priorityCursor = 1 // medium
		m.descInput.SetValue("")
		m.descInput.Blur()
		m.err = nil
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Assign):
		if m.selectedIncident() == nil {
			return m, nil
		}
		m.mode = ModeAssign
		m.assignInput.SetValue("")
		m.err = nil
		m.status = ""
		return m, m.assignInput.Focus()

	case key.Matches(msg, m.keys.Start):
		if inc := m.selectedIncident(); inc != nil {
			return m, m.transitionCmd(inc.ID, domain.StatusInProgress)
		}
		return m, nil

	case key.Matches(msg, m.keys.Resolve):
		if inc := m.selectedIncident(); inc != nil {
			return m, m.transitionCmd(inc.ID, domain.StatusResolved)
		}
		return m, nil

	case key.Matches(msg, m.keys.Escalate):
		if inc := m.selectedIncident(); inc != nil {
			return m, m.transitionCmd(inc.ID, domain.StatusEscalated)
		}
		return m, nil

	case key.Matches(msg, m.keys.Sweep):
		return m, m.sweepCmd()

	case key.Matches(msg, m.keys.Stats):
		m.mode = ModeStats
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if inc := m.selectedIncident(); inc != nil {
			m.detail = inc
			m.mode = ModeDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.incidentList, cmd = m.incidentList.Update(msg)
	return m, cmd
}

func (m *Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.descInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.createFocus = (m.createFocus + 1) % 3
		if m.createFocus == fieldDescription {
			return m, m.descInput.Focus()
		}
		m.descInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		typ := domain.AllIncidentTypes()[m.typeCursor]
		priority := domain.AllPriorities()[m.priorityCursor]
		description := m.descInput.Value()
		m.mode = ModeNormal
		m.descInput.Blur()
		return m, m.createCmd(typ, priority, description)
	}

	switch m.createFocus {
	case fieldType:
		switch msg.String() {
		case "left", "h":
			m.typeCursor = (m.typeCursor + len(domain.AllIncidentTypes()) - 1) % len(domain.AllIncidentTypes())
		case "right", "l":
			m.typeCursor = (m.typeCursor + 1) % len(domain.AllIncidentTypes())
		}
		return m, nil
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			m.priorityCursor = (m.priorityCursor + len(domain.AllPriorities()) - 1) % len(domain.AllPriorities())
		case "right", "l":
			m.priorityCursor = (m.priorityCursor + 1) % len(domain.AllPriorities())
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateAssign(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.assignInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		inc := m.selectedIncident()
		operator := m.assignInput.Value()
		m.mode = ModeNormal
		m.assignInput.Blur()
		if inc == nil || operator == "" {
			return m, nil
		}
		return m, m.assignCmd(inc.ID, operator)
	}

	var cmd tea.Cmd
	m.assignInput, cmd = m.assignInput.Update(msg)
	return m, cmd
}
