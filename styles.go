package main

import "github.com/charmbracelet/lipgloss"

// --- STYLES ---
var (
	// Console accent color
	accentPurple = lipgloss.Color("#512fc9")

	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(accentPurple).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status styles
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	copySuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	// Indicator
	indicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Failed page
	failedHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	failedPageStyle   = lipgloss.NewStyle().
				Padding(1, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196"))

	// Left nav
	navStyle = lipgloss.NewStyle().
			Padding(1, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(accentPurple)
	navItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	navActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(accentPurple).
			Bold(true).
			Padding(0, 1)

	// Notifications
	notificationStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder())

	// Current session host
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(accentPurple).
				Padding(0, 1)
	detailAttrStyle = lipgloss.NewStyle().Bold(true)
	detailValStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	detailPaneStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentPurple)

	contentStyle = lipgloss.NewStyle().Padding(0, 1)
)

func notificationBorder(level notificationLevel) lipgloss.Style {
	switch level {
	case levelError:
		return notificationStyle.BorderForeground(errorStyle.GetForeground())
	case levelWarning:
		return notificationStyle.BorderForeground(pendingStyle.GetForeground())
	default:
		return notificationStyle.BorderForeground(infoStyle.GetForeground())
	}
}
