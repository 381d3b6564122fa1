// File: zonedweek.go
// Title: Zoned Weeks and Week Numbering
// Description: Implements ZonedWeek, a civil week resolved in a time zone,
//              and week numbering for any first day of the week. Week 1 is
//              the week containing January 4th, so with a Monday start the
//              numbering is ISO 8601.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-21
// Modified: 2026-09-21
//
// Change History:
// - 2026-09-21 v0.2.0: Initial implementation

package timex

import (
	"fmt"
	"time"
)

// ZonedWeek is a civil week of a time zone
type ZonedWeek struct {
	interval
	first     LocalDateTime
	weekStart time.Weekday
	year      int
	week      int
}

// CreateZonedWeek resolves week number week of the week-based year in zone
func CreateZonedWeek(year, week int, zone TimeZoneRules, weekStart time.Weekday) (ZonedWeek, error) {
	const op = "CreateZonedWeek"
	if err := checkRange(op, "year", year, MinYear, MaxYear); err != nil {
		return ZonedWeek{}, err
	}
	if err := checkRange(op, "week", week, 1, WeeksInYear(year, weekStart)); err != nil {
		return ZonedWeek{}, err
	}
	first := LocalDateTime{ticks: (weekOneStart(year, weekStart) + int64(week-1)*7) * TicksPerDay}
	return newZonedWeek(op, first, zone, weekStart, year, week)
}

// ZonedWeekOf returns the week containing date
func ZonedWeekOf(date LocalDateTime, zone TimeZoneRules, weekStart time.Weekday) (ZonedWeek, error) {
	year, week := WeekOfYear(date, weekStart)
	return CreateZonedWeek(year, week, zone, weekStart)
}

func newZonedWeek(op string, first LocalDateTime, zone TimeZoneRules, weekStart time.Weekday, year, week int) (ZonedWeek, error) {
	iv, err := resolveInterval(op, first, first.AddTicks(TicksPerWeek-1), zone)
	if err != nil {
		return ZonedWeek{}, err
	}
	return ZonedWeek{interval: iv, first: first, weekStart: weekStart, year: year, week: week}, nil
}

// ===============================
// Week Numbering
// ===============================

// weekOneStart returns the day number of the first day of week 1
func weekOneStart(year int, weekStart time.Weekday) int64 {
	jan4 := daysFromCivil(year, time.January, 4)
	back := (int64(weekdayOfDays(jan4)) - int64(weekStart) + 7) % 7
	return jan4 - back
}

// WeekOfYear returns the week-based year and week number of date. The
// week-based year differs from the civil year around January 1st.
func WeekOfYear(date LocalDateTime, weekStart time.Weekday) (year, week int) {
	days := date.days()
	back := (int64(weekdayOfDays(days)) - int64(weekStart) + 7) % 7
	first := days - back
	year, _, _ = civilFromDays(first + 3)
	week = int((first-weekOneStart(year, weekStart))/7) + 1
	return year, week
}

// WeeksInYear returns 52 or 53
func WeeksInYear(year int, weekStart time.Weekday) int {
	return int((weekOneStart(year+1, weekStart) - weekOneStart(year, weekStart)) / 7)
}

// ===============================
// Accessors
// ===============================

// Start returns the first instant of the week
func (w ZonedWeek) Start() ZonedDateTime { return w.start }

// End returns the last instant of the week
func (w ZonedWeek) End() ZonedDateTime { return w.end }

// Duration returns the elapsed length of the week
func (w ZonedWeek) Duration() Duration { return w.duration }

// StartCorrection returns how far resolution moved the start of the week
func (w ZonedWeek) StartCorrection() Duration { return w.startCorrection }

// EndCorrection returns how far resolution moved the end of the week
func (w ZonedWeek) EndCorrection() Duration { return w.endCorrection }

// Zone returns the zone of the week
func (w ZonedWeek) Zone() TimeZoneRules { return w.start.Zone() }

// WeekStart returns the first day of the week
func (w ZonedWeek) WeekStart() time.Weekday { return w.weekStart }

// Year returns the week-based year
func (w ZonedWeek) Year() int { return w.year }

// WeekOfYear returns the week number
func (w ZonedWeek) WeekOfYear() int { return w.week }

// FirstDate returns the civil date of the first day
func (w ZonedWeek) FirstDate() LocalDateTime { return w.first }

// Days returns the seven days of the week. A day skipped entirely by its
// zone makes the call fail.
func (w ZonedWeek) Days() ([]ZonedDay, error) {
	days := make([]ZonedDay, 0, 7)
	for i := 0; i < 7; i++ {
		d, err := CreateZonedDay(w.first.AddDays(i), w.Zone())
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// Day returns the day of the week falling on weekday
func (w ZonedWeek) Day(weekday time.Weekday) (ZonedDay, error) {
	shift := (int(weekday) - int(w.weekStart) + 7) % 7
	return CreateZonedDay(w.first.AddDays(shift), w.Zone())
}

// AddWeeks returns the week n weeks later
func (w ZonedWeek) AddWeeks(n int) (ZonedWeek, error) {
	return ZonedWeekOf(w.first.AddDays(7*n), w.Zone(), w.weekStart)
}

// Next returns the following week
func (w ZonedWeek) Next() (ZonedWeek, error) { return w.AddWeeks(1) }

// Previous returns the preceding week
func (w ZonedWeek) Previous() (ZonedWeek, error) { return w.AddWeeks(-1) }

// Contains reports whether z lies within the week
func (w ZonedWeek) Contains(z ZonedDateTime) bool { return w.contains(z) }

// Equal reports whether both weeks cover the same instants in the same zone
func (w ZonedWeek) Equal(other ZonedWeek) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// Compare orders weeks by their start
func (w ZonedWeek) Compare(other ZonedWeek) int { return w.start.Compare(other.start) }

// String renders the week as "2021-W34 +02:00 (zone)"
func (w ZonedWeek) String() string {
	return fmt.Sprintf("%04d-W%02d %s (%s)", w.year, w.week, w.offsetLabel(), w.Zone().ID())
}
