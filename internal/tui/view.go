package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbuendia/incidentctl/internal/domain"
)

const viewTimeFormat = "2006-01-02 15:04:05"

// View renders the console.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("incidentctl"))
	b.WriteString("\n\n")

	switch m.mode {
	case ModeCreate:
		b.WriteString(m.viewCreate())
	case ModeAssign:
		b.WriteString(m.viewAssign())
	case ModeDetail:
		b.WriteString(m.viewDetail())
	case ModeStats:
		b.WriteString(m.viewStats())
	default:
		b.WriteString(m.incidentList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewStatusLine() string {
	if m.err != nil {
		return m.styles.ErrorText.Render("Error: " + m.err.Error())
	}
	if m.status != "" {
		return m.styles.SuccessText.Render(m.status)
	}
	return m.styles.StatusBar.Render(fmt.Sprintf("%d incident(s)", len(m.incidents)))
}

// choiceRow renders a horizontal selector like "( type: [security] )".
func (m *Model) choiceRow(label string, options []string, cursor int, focused bool) string {
	var parts []string
	for i, opt := range options {
		if i == cursor {
			parts = append(parts, m.styles.FormSelected.Render("["+opt+"]"))
		} else {
			parts = append(parts, m.styles.MutedText.Render(" "+opt+" "))
		}
	}
	labelStyle := m.styles.FormLabel
	if focused {
		labelStyle = m.styles.FormSelected
	}
	return labelStyle.Render(label+":") + " " + strings.Join(parts, " ")
}

func (m *Model) viewCreate() string {
	types := make([]string, 0, 3)
	for _, t := range domain.AllIncidentTypes() {
		types = append(types, string(t))
	}
	priorities := make([]string, 0, 4)
	for _, p := range domain.AllPriorities() {
		priorities = append(priorities, string(p))
	}

	descLabel := m.styles.FormLabel
	if m.createFocus == fieldDescription {
		descLabel = m.styles.FormSelected
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("New incident"),
		"",
		m.choiceRow("Type", types, m.typeCursor, m.createFocus == fieldType),
		m.choiceRow("Priority", priorities, m.priorityCursor, m.createFocus == fieldPriority),
		descLabel.Render("Description:")+" "+m.descInput.View(),
		"",
		m.styles.MutedText.Render("tab: next field · ←/→: choose · enter: create · esc: cancel"),
	)
}

func (m *Model) viewAssign() string {
	inc := m.selectedIncident()
	header := "Assign incident"
	if inc != nil {
		header = fmt.Sprintf("Assign incident #%d", inc.ID)
	}

	roster := m.operatorRoster()

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render(header),
		"",
		m.styles.FormLabel.Render("Operator:")+" "+m.assignInput.View(),
		"",
		m.styles.MutedText.Render("Operators: "+roster),
		"",
		m.styles.MutedText.Render("enter: assign · esc: cancel"),
	)
}

func (m *Model) operatorRoster() string {
	out, err := m.container.ListOperatorsUseCase().Execute(context.Background())
	if err != nil {
		return ""
	}
	var parts []string
	for _, op := range out.Operators {
		mark := ""
		if !op.Available {
			mark = " (unavailable)"
		}
		parts = append(parts, op.ID+mark)
	}
	return strings.Join(parts, ", ")
}

func (m *Model) viewDetail() string {
	inc := m.detail
	if inc == nil {
		return ""
	}

	assigned := inc.AssignedTo
	if assigned == "" {
		assigned = "-"
	}

	var lines []string
	lines = append(lines,
		m.styles.Header.Render(fmt.Sprintf("Incident #%d", inc.ID)),
		"",
		fmt.Sprintf("Type:        %s", inc.Type),
		fmt.Sprintf("Priority:    %s", inc.Priority),
		"Status:      "+lipgloss.NewStyle().Foreground(StatusColor(inc.Status)).Render(inc.Status.Display()),
		fmt.Sprintf("Assigned:    %s", assigned),
		fmt.Sprintf("Escalations: %d", inc.EscalationCount),
		fmt.Sprintf("Created:     %s", inc.CreatedAt.Format(viewTimeFormat)),
		fmt.Sprintf("Updated:     %s", inc.UpdatedAt.Format(viewTimeFormat)),
		"",
		inc.Description,
		"",
		m.styles.Header.Render("History"),
	)
	for _, h := range inc.History {
		from := string(h.From)
		if from == "" {
			from = "-"
		}
		lines = append(lines, fmt.Sprintf("%s  %s -> %s  by %s",
			h.Time.Format(viewTimeFormat), from, h.To, h.Actor))
	}
	lines = append(lines, "", m.styles.MutedText.Render("esc: back"))

	return m.styles.DetailBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewStats() string {
	out, err := m.container.ShowStatisticsUseCase().Execute(context.Background())
	if err != nil {
		return m.styles.ErrorText.Render(err.Error())
	}
	stats := out.Statistics

	var lines []string
	lines = append(lines,
		m.styles.Header.Render("Statistics"),
		"",
		fmt.Sprintf("Total incidents: %d", stats.Total),
		"",
		m.styles.FormLabel.Render("By status"),
	)
	for _, s := range domain.AllStatuses() {
		lines = append(lines, fmt.Sprintf("  %-12s %d", s, stats.ByStatus[s]))
	}
	lines = append(lines, "", m.styles.FormLabel.Render("By priority"))
	for _, p := range domain.AllPriorities() {
		lines = append(lines, fmt.Sprintf("  %-12s %d", p, stats.ByPriority[p]))
	}
	lines = append(lines, "", m.styles.FormLabel.Render("By type"))
	for _, t := range domain.AllIncidentTypes() {
		lines = append(lines, fmt.Sprintf("  %-14s %d", t, stats.ByType[t]))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Operators: %d (%d available)", stats.OperatorsTotal, stats.OperatorsAvailable),
		"",
		m.styles.MutedText.Render("esc: back"),
	)

	return m.styles.DetailBox.Render(strings.Join(lines, "\n"))
}
