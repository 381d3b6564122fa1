package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/chronik/internal/calendar/service"
)

const dateLayout = "2006-01-02"

// Config holds the viewer settings
type Config struct {
	Source  WeekSource
	Zone    string
	Date    string
	Timeout time.Duration
}

// Model shows one zoned week at a time
type Model struct {
	width   int
	height  int
	ready   bool
	loading bool
	err     error

	viewport viewport.Model
	spinner  spinner.Model

	source  WeekSource
	zone    string
	anchor  string
	timeout time.Duration
	week    *service.WeekView
}

// NewModel creates the week viewer. An empty date starts at the current week.
func NewModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return Model{
		spinner: sp,
		source:  cfg.Source,
		zone:    cfg.Zone,
		anchor:  cfg.Date,
		timeout: cfg.Timeout,
		loading: true,
	}
}

// Init loads the first week
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadWeek(m.anchor))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "n", "right":
			return m.jump(7)

		case "p", "left":
			return m.jump(-7)

		case "t":
			m.anchor = ""
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadWeek(""))

		case "ctrl+r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadWeek(m.anchor))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.updateContent()

	case weekLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			w := msg.week
			m.week = &w
			if len(w.Days) > 0 {
				m.anchor = w.Days[0].Date
			}
		}
		m.updateContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// jump moves the anchor by days and loads the week containing it
func (m Model) jump(days int) (tea.Model, tea.Cmd) {
	if m.week == nil || len(m.week.Days) == 0 || m.loading {
		return m, nil
	}
	first, err := time.Parse(dateLayout, m.week.Days[0].Date)
	if err != nil {
		m.err = err
		m.updateContent()
		return m, nil
	}
	m.anchor = first.AddDate(0, 0, days).Format(dateLayout)
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.loadWeek(m.anchor))
}

func (m Model) loadWeek(date string) tea.Cmd {
	source, zone, timeout := m.source, m.zone, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		week, err := source.ResolveWeekOf(ctx, zone, date)
		return weekLoadedMsg{week: week, err: err}
	}
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderWeek())
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade..."
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("chronik")
	sub := "Woche wird geladen"
	if m.week != nil {
		sub = m.week.Label
	}
	if m.loading {
		sub = m.spinner.View() + " " + sub
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, labelStyle.Render(sub))
}

func (m *Model) renderWeek() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(renderError(m.err))
		s.WriteString("\n\n")
	}
	if m.week == nil {
		return s.String()
	}

	for _, d := range m.week.Days {
		s.WriteString(renderDay(d))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Woche %d/%d, Beginn %s: %s (%.0f h)\n",
		m.week.Week, m.week.Year, m.week.WeekStart, m.week.Duration, m.week.Hours))

	return weekBoxStyle.Render(s.String())
}

func renderDay(d service.DayView) string {
	line := fmt.Sprintf("%s  %-10s %s  %5.1f h", d.Date, d.Weekday, offsets(d.Label), d.Hours)
	switch {
	case d.Gap != nil:
		line += fmt.Sprintf("  Lücke %s bis %s", clock(d.Gap.Start), clock(d.Gap.End))
	case d.Overlap != nil:
		line += fmt.Sprintf("  doppelt %s bis %s", clock(d.Overlap.Start), clock(d.Overlap.End))
	}
	return dayStyle(d).Render(line)
}

// offsets extracts "+01:00/+02:00" from a day label
func offsets(label string) string {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return ""
	}
	return fmt.Sprintf("%-13s", fields[1])
}

// clock cuts a local date-time down to hh:mm:ss
func clock(local string) string {
	_, t, ok := strings.Cut(local, " ")
	if !ok || len(t) < 8 {
		return local
	}
	return t[:8]
}

func (m *Model) renderFooter() string {
	status := "Zone: " + m.zone
	if m.week != nil {
		status = "Zone: " + m.week.Zone
	}
	bar := statusBarStyle.Width(m.width).Render(status)
	return lipgloss.JoinVertical(lipgloss.Left, bar,
		helpStyle.Render("n/→ nächste Woche  p/← vorige Woche  t heute  ctrl+r neu laden  q beenden"))
}
