// File: zonedday.go
// Title: Zoned Days
// Description: Implements ZonedDay, a civil day resolved in a time zone. Its
//              duration is 24 hours except on transition days, where a gap
//              shortens and an overlap lengthens it.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-20
// Modified: 2026-09-26
//
// Change History:
// - 2026-09-20 v0.2.0: Initial implementation
// - 2026-09-26 v0.2.1: Invalidity and ambiguity ranges of the day

package timex

import (
	"time"
)

// ZonedDay is a civil day of a time zone. Start is the first and End the
// last instant of the day, so Duration equals End-Start plus one tick.
type ZonedDay struct {
	interval
	date LocalDateTime
}

// CreateZonedDay resolves the civil day of date in zone. The time of day of
// date is ignored. It fails only when the zone skipped the whole day.
func CreateZonedDay(date LocalDateTime, zone TimeZoneRules) (ZonedDay, error) {
	const op = "CreateZonedDay"
	day := date.Date()
	iv, err := resolveInterval(op, day, day.AddTicks(TicksPerDay-1), zone)
	if err != nil {
		return ZonedDay{}, err
	}
	return ZonedDay{interval: iv, date: day}, nil
}

// NewZonedDay resolves the day year-month-day in zone
func NewZonedDay(year int, month time.Month, day int, zone TimeZoneRules) (ZonedDay, error) {
	date, err := newDate("NewZonedDay", year, month, day)
	if err != nil {
		return ZonedDay{}, err
	}
	return CreateZonedDay(date, zone)
}

// ZonedDayOf returns the day containing z in the zone of z
func ZonedDayOf(z ZonedDateTime) (ZonedDay, error) {
	return CreateZonedDay(z.local, z.Zone())
}

// TodayZoned returns the current day of zone as reported by clock
func TodayZoned(clock Clock, zone TimeZoneRules) (ZonedDay, error) {
	return ZonedDayOf(NowZoned(clock, zone))
}

// Start returns the first instant of the day
func (d ZonedDay) Start() ZonedDateTime { return d.start }

// End returns the last instant of the day
func (d ZonedDay) End() ZonedDateTime { return d.end }

// Duration returns the elapsed length of the day
func (d ZonedDay) Duration() Duration { return d.duration }

// StartCorrection returns how far resolution moved the start of the day
func (d ZonedDay) StartCorrection() Duration { return d.startCorrection }

// EndCorrection returns how far resolution moved the end of the day
func (d ZonedDay) EndCorrection() Duration { return d.endCorrection }

// Zone returns the zone of the day
func (d ZonedDay) Zone() TimeZoneRules { return d.start.Zone() }

// Date returns the civil date at midnight
func (d ZonedDay) Date() LocalDateTime { return d.date }

// Year returns the civil year
func (d ZonedDay) Year() int { return d.date.Year() }

// Month returns the civil month
func (d ZonedDay) Month() time.Month { return d.date.Month() }

// Day returns the civil day of month
func (d ZonedDay) Day() int { return d.date.Day() }

// DayOfYear returns the civil day of year
func (d ZonedDay) DayOfYear() int { return d.date.DayOfYear() }

// Weekday returns the civil weekday
func (d ZonedDay) Weekday() time.Weekday { return d.date.Weekday() }

// HasTransition reports whether the offset changes during the day or the
// day does not last 24 hours
func (d ZonedDay) HasTransition() bool {
	return d.duration != Day || d.start.UtcOffset() != d.end.UtcOffset()
}

// Contains reports whether z lies within the day
func (d ZonedDay) Contains(z ZonedDateTime) bool { return d.contains(z) }

// AddDays returns the day n civil days later
func (d ZonedDay) AddDays(n int) (ZonedDay, error) {
	return CreateZonedDay(d.date.AddDays(n), d.Zone())
}

// Next returns the following day
func (d ZonedDay) Next() (ZonedDay, error) { return d.AddDays(1) }

// Previous returns the preceding day
func (d ZonedDay) Previous() (ZonedDay, error) { return d.AddDays(-1) }

// Week returns the week containing the day
func (d ZonedDay) Week(weekStart time.Weekday) (ZonedWeek, error) {
	return ZonedWeekOf(d.date, d.Zone(), weekStart)
}

// GetIntersectingInvalidityRange returns the civil values of the day that
// were skipped by a forward transition
func (d ZonedDay) GetIntersectingInvalidityRange() (LocalRange, bool) {
	return d.intersectRule(AdjustmentRule.InvalidityRange)
}

// GetIntersectingAmbiguityRange returns the civil values of the day that
// occur twice
func (d ZonedDay) GetIntersectingAmbiguityRange() (LocalRange, bool) {
	return d.intersectRule(AdjustmentRule.AmbiguityRange)
}

// intersectRule checks the rules of the previous year as well, whose
// windows may reach into January 1st.
func (d ZonedDay) intersectRule(window func(AdjustmentRule, int) (LocalRange, bool)) (LocalRange, bool) {
	nominal := LocalRange{Start: d.date, End: d.date.AddTicks(TicksPerDay - 1)}
	year := d.date.Year()
	for _, y := range []int{year, year - 1} {
		rule, ok := d.Zone().AdjustmentRuleFor(y)
		if !ok {
			continue
		}
		r, ok := window(rule, y)
		if !ok {
			continue
		}
		if hit, ok := r.Intersect(nominal); ok {
			return hit, true
		}
	}
	return LocalRange{}, false
}

// Equal reports whether both days cover the same instants in the same zone
func (d ZonedDay) Equal(other ZonedDay) bool {
	return d.start.Equal(other.start) && d.end.Equal(other.end)
}

// Compare orders days by their start
func (d ZonedDay) Compare(other ZonedDay) int { return d.start.Compare(other.start) }

// Time narrows the day to its first instant
func (d ZonedDay) Time() time.Time { return d.start.Time() }

// String renders the day as "2021-08-26 +01:00/+02:00 (zone)"
func (d ZonedDay) String() string {
	return d.date.DateString() + " " + d.offsetLabel() + " (" + d.Zone().ID() + ")"
}
