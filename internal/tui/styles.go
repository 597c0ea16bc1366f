package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tbuendia/incidentctl/internal/domain"
)

// Colors defines the color palette for the console.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	TitleText  lipgloss.Color
	Selected   lipgloss.Color
	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Resolved   lipgloss.Color
	Escalated  lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	TitleText:  lipgloss.Color("#DFE6E9"), // Light gray
	Selected:   lipgloss.Color("#FFEAA7"), // Yellow (selected)
	Pending:    lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Resolved:   lipgloss.Color("#00B894"), // Green
	Escalated:  lipgloss.Color("#D63031"), // Red
}

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	ErrorText    lipgloss.Style
	SuccessText  lipgloss.Style
	MutedText    lipgloss.Style
	FormLabel    lipgloss.Style
	FormSelected lipgloss.Style
	DetailBox    lipgloss.Style
	ItemNormal   lipgloss.Style
	ItemSelected lipgloss.Style
	DescNormal   lipgloss.Style
	DescSelected lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Colors.TitleText).
			Background(Colors.Primary).
			Bold(true).
			Padding(0, 1),
		Header:       lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),
		StatusBar:    lipgloss.NewStyle().Foreground(Colors.Muted),
		ErrorText:    lipgloss.NewStyle().Foreground(Colors.Error),
		SuccessText:  lipgloss.NewStyle().Foreground(Colors.Success),
		MutedText:    lipgloss.NewStyle().Foreground(Colors.Muted),
		FormLabel:    lipgloss.NewStyle().Foreground(Colors.TitleText).Bold(true),
		FormSelected: lipgloss.NewStyle().Foreground(Colors.Selected).Bold(true),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),
		ItemNormal:   lipgloss.NewStyle().Foreground(Colors.TitleText),
		ItemSelected: lipgloss.NewStyle().Foreground(Colors.Selected).Bold(true),
		DescNormal:   lipgloss.NewStyle().Foreground(Colors.Muted),
		DescSelected: lipgloss.NewStyle().Foreground(Colors.TitleText),
	}
}

// StatusColor returns the display color for an incident status.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusPending:
		return Colors.Pending
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusResolved:
		return Colors.Resolved
	case domain.StatusEscalated:
		return Colors.Escalated
	default:
		return Colors.Muted
	}
}

// PriorityColor returns the display color for a priority.
func PriorityColor(p domain.Priority) lipgloss.Color {
	switch p {
	case domain.PriorityCritical:
		return Colors.Error
	case domain.PriorityHigh:
		return Colors.Warning
	case domain.PriorityMedium:
		return Colors.Pending
	default:
		return Colors.Muted
	}
}
