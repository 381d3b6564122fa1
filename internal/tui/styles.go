package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/chronik/internal/calendar/service"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSpring  = lipgloss.Color("#F59E0B")
	colorAutumn  = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorFg      = lipgloss.Color("#F9FAFB")
	colorBar     = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	weekBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)

	plainDayStyle = lipgloss.NewStyle().Foreground(colorFg)

	// clocks jump forward, the day is short
	gapDayStyle = lipgloss.NewStyle().Foreground(colorSpring).Bold(true)

	// clocks fall back, the day is long
	overlapDayStyle = lipgloss.NewStyle().Foreground(colorAutumn).Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorBar).
			Foreground(colorFg).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// dayStyle highlights days with a clock change
func dayStyle(d service.DayView) lipgloss.Style {
	switch {
	case d.Gap != nil:
		return gapDayStyle
	case d.Overlap != nil:
		return overlapDayStyle
	default:
		return plainDayStyle
	}
}

func renderError(err error) string {
	return errorStyle.Render("Fehler: " + err.Error())
}
