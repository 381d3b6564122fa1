package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chronik/internal/calendar/service"
)

type fakeSource struct {
	dates []string
	err   error
}

func (f *fakeSource) ResolveWeek(ctx context.Context, zone string, year, week int) (service.WeekView, error) {
	return service.WeekView{}, errors.New("unused")
}

func (f *fakeSource) ResolveWeekOf(_ context.Context, zone, date string) (service.WeekView, error) {
	f.dates = append(f.dates, date)
	if f.err != nil {
		return service.WeekView{}, f.err
	}
	return scenarioWeek(zone), nil
}

func scenarioWeek(zone string) service.WeekView {
	return service.WeekView{
		Year: 2021, Week: 34, WeekStart: "Monday", Zone: zone,
		Label:    "2021-W34 +01:00/+02:00 (" + zone + ")",
		Duration: "167h0m0s", Hours: 167,
		Days: []service.DayView{
			{Date: "2021-08-23", Weekday: "Monday", Label: "2021-08-23 +01:00 (" + zone + ")", Hours: 24},
			{Date: "2021-08-26", Weekday: "Thursday", Label: "2021-08-26 +01:00/+02:00 (" + zone + ")", Hours: 23,
				Transition: true,
				Gap:        &service.Range{Start: "2021-08-26 02:00:00.0000000", End: "2021-08-26 02:59:59.9999999"}},
		},
	}
}

// collect runs cmd and returns the weekLoadedMsg it produces
func collect(t *testing.T, cmd tea.Cmd) weekLoadedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case weekLoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if loaded, ok := c().(weekLoadedMsg); ok {
				return loaded
			}
		}
	}
	t.Fatal("command did not load a week")
	return weekLoadedMsg{}
}

func ready(t *testing.T, src WeekSource) Model {
	t.Helper()
	m := NewModel(Config{Source: src, Zone: "Test/Scenario"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(collect(t, m.Init()))
	return next.(Model)
}

func TestInitLoadsCurrentWeek(t *testing.T) {
	src := &fakeSource{}
	m := ready(t, src)

	assert.Equal(t, []string{""}, src.dates)
	assert.False(t, m.loading)
	require.NotNil(t, m.week)
	assert.Equal(t, "2021-08-23", m.anchor)

	view := m.View()
	assert.Contains(t, view, "2021-W34 +01:00/+02:00 (Test/Scenario)")
	assert.Contains(t, view, "Lücke 02:00:00 bis 02:59:59")
	assert.Contains(t, view, "167 h")
}

func TestNavigation(t *testing.T) {
	src := &fakeSource{}
	m := ready(t, src)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	collect(t, cmd)
	assert.Equal(t, "2021-08-30", next.(Model).anchor)
	assert.True(t, next.(Model).loading)

	// ignored while loading
	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	collect(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	collect(t, cmd)

	assert.Equal(t, []string{"", "2021-08-30", "2021-08-16", ""}, src.dates)
}

func TestLoadError(t *testing.T) {
	src := &fakeSource{err: errors.New("Nowhere/Atlantis not found")}
	m := NewModel(Config{Source: src, Zone: "Nowhere/Atlantis"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(collect(t, m.Init()))

	view := next.View()
	assert.Contains(t, view, "Fehler: Nowhere/Atlantis not found")
	assert.Nil(t, next.(Model).week)
}

func TestQuit(t *testing.T) {
	m := ready(t, &fakeSource{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "02:00:00", clock("2021-08-26 02:00:00.0000000"))
	assert.Equal(t, "garbage", clock("garbage"))
	assert.Equal(t, "", offsets("x"))
}
