package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tbuendia/incidentctl/internal/domain"
)

// incidentItem adapts a domain.Incident to the bubbles list.
type incidentItem struct {
	incident *domain.Incident
}

// FilterValue implements list.Item: incidents filter on their description.
func (i incidentItem) FilterValue() string {
	return i.incident.Description
}

// incidentDelegate renders incident rows.
type incidentDelegate struct {
	styles Styles
}

func newIncidentDelegate(styles Styles) incidentDelegate {
	return incidentDelegate{styles: styles}
}

func (d incidentDelegate) Height() int {
	return 2
}

func (d incidentDelegate) Spacing() int {
	return 1
}

func (d incidentDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d incidentDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(incidentItem)
	if !ok {
		return
	}
	inc := it.incident
	selected := index == m.Index()

	statusBadge := lipgloss.NewStyle().Foreground(StatusColor(inc.Status)).Render(string(inc.Status))
	priorityBadge := lipgloss.NewStyle().Foreground(PriorityColor(inc.Priority)).Render(string(inc.Priority))

	titleStyle := d.styles.ItemNormal
	descStyle := d.styles.DescNormal
	cursor := "  "
	if selected {
		titleStyle = d.styles.ItemSelected
		descStyle = d.styles.DescSelected
		cursor = "> "
	}

	assigned := inc.AssignedTo
	if assigned == "" {
		assigned = "unassigned"
	}

	title := titleStyle.Render(fmt.Sprintf("#%d %s", inc.ID, inc.Description))
	desc := descStyle.Render(fmt.Sprintf("   %s · %s · %s · %s", statusBadge, priorityBadge, inc.Type, assigned))
	fmt.Fprintf(w, "%s%s\n%s", cursor, title, desc)
}
