// File: period.go
// Title: Calendar Periods
// Description: Implements Period, a calendar quantity of years, months, weeks,
//              days and fixed time units whose elapsed time depends on where it
//              is applied, and PeriodUnits, the bitset naming its fields.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-16
// Modified: 2026-09-20
//
// Change History:
// - 2026-09-16 v0.2.0: Initial implementation
// - 2026-09-20 v0.2.1: ParsePeriod accepting the String output and plain unit words

package timex

import (
	"strconv"
	"strings"
	"time"
)

// PeriodUnits is a bitset of Period fields
type PeriodUnits uint16

// Period units, from largest to smallest
const (
	UnitYears PeriodUnits = 1 << iota
	UnitMonths
	UnitWeeks
	UnitDays
	UnitHours
	UnitMinutes
	UnitSeconds
	UnitMilliseconds
	UnitTicks

	NoUnits      PeriodUnits = 0
	YearMonth                = UnitYears | UnitMonths
	YearMonthDay             = UnitYears | UnitMonths | UnitDays
	DateUnits                = UnitYears | UnitMonths | UnitWeeks | UnitDays
	TimeUnits                = UnitHours | UnitMinutes | UnitSeconds | UnitMilliseconds | UnitTicks
	AllUnits                 = DateUnits | TimeUnits
)

var unitNames = []struct {
	unit PeriodUnits
	name string
}{
	{UnitYears, "year"},
	{UnitMonths, "month"},
	{UnitWeeks, "week"},
	{UnitDays, "day"},
	{UnitHours, "hour"},
	{UnitMinutes, "minute"},
	{UnitSeconds, "second"},
	{UnitMilliseconds, "millisecond"},
	{UnitTicks, "tick"},
}

// Has reports whether all units of other are set in u
func (u PeriodUnits) Has(other PeriodUnits) bool {
	return u&other == other && other != 0
}

// String lists the unit names, e.g. "years|days"
func (u PeriodUnits) String() string {
	if u == NoUnits {
		return "none"
	}
	var names []string
	for _, un := range unitNames {
		if u&un.unit != 0 {
			names = append(names, un.name+"s")
		}
	}
	return strings.Join(names, "|")
}

// Period is a calendar quantity. Fields may carry mixed signs; nothing is
// normalized, so 25 hours stays 25 hours.
type Period struct {
	years        int
	months       int
	weeks        int
	days         int
	hours        int
	minutes      int
	seconds      int
	milliseconds int
	ticks        int64
}

// NewPeriod creates a period from all of its fields
func NewPeriod(years, months, weeks, days, hours, minutes, seconds, milliseconds int, ticks int64) Period {
	return Period{
		years: years, months: months, weeks: weeks, days: days,
		hours: hours, minutes: minutes, seconds: seconds,
		milliseconds: milliseconds, ticks: ticks,
	}
}

// FromYears returns a period of n years
func FromYears(n int) Period { return Period{years: n} }

// FromMonths returns a period of n months
func FromMonths(n int) Period { return Period{months: n} }

// FromWeeks returns a period of n weeks
func FromWeeks(n int) Period { return Period{weeks: n} }

// FromDays returns a period of n days
func FromDays(n int) Period { return Period{days: n} }

// FromHours returns a period of n hours
func FromHours(n int) Period { return Period{hours: n} }

// FromMinutes returns a period of n minutes
func FromMinutes(n int) Period { return Period{minutes: n} }

// FromSeconds returns a period of n seconds
func FromSeconds(n int) Period { return Period{seconds: n} }

// FromMilliseconds returns a period of n milliseconds
func FromMilliseconds(n int) Period { return Period{milliseconds: n} }

// FromTicks returns a period of n ticks
func FromTicks(n int64) Period { return Period{ticks: n} }

// PeriodFromDuration splits an exact duration into days, hours, minutes,
// seconds, milliseconds and ticks. All fields share the sign of d.
func PeriodFromDuration(d Duration) Period {
	t := int64(d)
	p := Period{}
	p.days = int(t / TicksPerDay)
	t %= TicksPerDay
	p.hours = int(t / TicksPerHour)
	t %= TicksPerHour
	p.minutes = int(t / TicksPerMinute)
	t %= TicksPerMinute
	p.seconds = int(t / TicksPerSecond)
	t %= TicksPerSecond
	p.milliseconds = int(t / TicksPerMillisecond)
	p.ticks = t % TicksPerMillisecond
	return p
}

// PeriodFromTimeDuration widens a time.Duration into a period
func PeriodFromTimeDuration(d time.Duration) Period {
	return PeriodFromDuration(DurationFromTimeDuration(d))
}

// Years returns the years field
func (p Period) Years() int { return p.years }

// Months returns the months field
func (p Period) Months() int { return p.months }

// Weeks returns the weeks field
func (p Period) Weeks() int { return p.weeks }

// Days returns the days field
func (p Period) Days() int { return p.days }

// Hours returns the hours field
func (p Period) Hours() int { return p.hours }

// Minutes returns the minutes field
func (p Period) Minutes() int { return p.minutes }

// Seconds returns the seconds field
func (p Period) Seconds() int { return p.seconds }

// Milliseconds returns the milliseconds field
func (p Period) Milliseconds() int { return p.milliseconds }

// Ticks returns the ticks field
func (p Period) Ticks() int64 { return p.ticks }

// SetYears returns a copy with the years field replaced
func (p Period) SetYears(n int) Period { p.years = n; return p }

// SetMonths returns a copy with the months field replaced
func (p Period) SetMonths(n int) Period { p.months = n; return p }

// SetWeeks returns a copy with the weeks field replaced
func (p Period) SetWeeks(n int) Period { p.weeks = n; return p }

// SetDays returns a copy with the days field replaced
func (p Period) SetDays(n int) Period { p.days = n; return p }

// SetHours returns a copy with the hours field replaced
func (p Period) SetHours(n int) Period { p.hours = n; return p }

// SetMinutes returns a copy with the minutes field replaced
func (p Period) SetMinutes(n int) Period { p.minutes = n; return p }

// SetSeconds returns a copy with the seconds field replaced
func (p Period) SetSeconds(n int) Period { p.seconds = n; return p }

// SetMilliseconds returns a copy with the milliseconds field replaced
func (p Period) SetMilliseconds(n int) Period { p.milliseconds = n; return p }

// SetTicks returns a copy with the ticks field replaced
func (p Period) SetTicks(n int64) Period { p.ticks = n; return p }

// ActiveUnits returns the units whose field is non-zero
func (p Period) ActiveUnits() PeriodUnits {
	var u PeriodUnits
	for _, f := range p.fields() {
		if f.value != 0 {
			u |= f.unit
		}
	}
	return u
}

// IsZero reports whether all fields are zero
func (p Period) IsZero() bool { return p == Period{} }

// Equal compares field by field; 1 day and 24 hours are different periods
func (p Period) Equal(other Period) bool { return p == other }

// Add adds field by field
func (p Period) Add(other Period) Period {
	return Period{
		years:        p.years + other.years,
		months:       p.months + other.months,
		weeks:        p.weeks + other.weeks,
		days:         p.days + other.days,
		hours:        p.hours + other.hours,
		minutes:      p.minutes + other.minutes,
		seconds:      p.seconds + other.seconds,
		milliseconds: p.milliseconds + other.milliseconds,
		ticks:        p.ticks + other.ticks,
	}
}

// Subtract subtracts field by field
func (p Period) Subtract(other Period) Period {
	return p.Add(other.Negate())
}

// Negate flips the sign of every field
func (p Period) Negate() Period {
	return Period{
		years: -p.years, months: -p.months, weeks: -p.weeks, days: -p.days,
		hours: -p.hours, minutes: -p.minutes, seconds: -p.seconds,
		milliseconds: -p.milliseconds, ticks: -p.ticks,
	}
}

// Skip returns a copy with the fields named by units set to zero
func (p Period) Skip(units PeriodUnits) Period {
	return p.mask(^units)
}

// Take returns a copy keeping only the fields named by units
func (p Period) Take(units PeriodUnits) Period {
	return p.mask(units)
}

func (p Period) mask(keep PeriodUnits) Period {
	var out Period
	for _, f := range p.fields() {
		if keep&f.unit != 0 {
			out = out.with(f.unit, f.value)
		}
	}
	return out
}

// TotalMonths returns years*12+months
func (p Period) TotalMonths() int { return p.years*12 + p.months }

// TotalDays returns weeks*7+days
func (p Period) TotalDays() int { return p.weeks*7 + p.days }

// FixedTicks returns hours through ticks as an exact tick count
func (p Period) FixedTicks() int64 {
	return int64(p.hours)*TicksPerHour + int64(p.minutes)*TicksPerMinute +
		int64(p.seconds)*TicksPerSecond + int64(p.milliseconds)*TicksPerMillisecond + p.ticks
}

// String renders the non-zero fields, e.g. "1 year(s), 2 day(s)", and
// "0 day(s)" for the zero period
func (p Period) String() string {
	var parts []string
	for i, f := range p.fields() {
		if f.value != 0 {
			parts = append(parts, strconv.FormatInt(f.value, 10)+" "+unitNames[i].name+"(s)")
		}
	}
	if len(parts) == 0 {
		return "0 day(s)"
	}
	return strings.Join(parts, ", ")
}

type periodField struct {
	unit  PeriodUnits
	value int64
}

func (p Period) fields() [9]periodField {
	return [9]periodField{
		{UnitYears, int64(p.years)},
		{UnitMonths, int64(p.months)},
		{UnitWeeks, int64(p.weeks)},
		{UnitDays, int64(p.days)},
		{UnitHours, int64(p.hours)},
		{UnitMinutes, int64(p.minutes)},
		{UnitSeconds, int64(p.seconds)},
		{UnitMilliseconds, int64(p.milliseconds)},
		{UnitTicks, p.ticks},
	}
}

func (p Period) with(unit PeriodUnits, value int64) Period {
	switch unit {
	case UnitYears:
		p.years = int(value)
	case UnitMonths:
		p.months = int(value)
	case UnitWeeks:
		p.weeks = int(value)
	case UnitDays:
		p.days = int(value)
	case UnitHours:
		p.hours = int(value)
	case UnitMinutes:
		p.minutes = int(value)
	case UnitSeconds:
		p.seconds = int(value)
	case UnitMilliseconds:
		p.milliseconds = int(value)
	case UnitTicks:
		p.ticks = value
	}
	return p
}

// ===============================
// Parsing Functions
// ===============================

// ParsePeriod parses the output of Period.String. Unit words may also be
// written in singular or plural ("1 year, 2 months") and fields may repeat,
// in which case they are summed.
func ParsePeriod(value string) (Period, error) {
	const expected = "<n> <unit>(s)[, <n> <unit>(s)...]"
	value = strings.TrimSpace(value)
	if value == "" {
		return Period{}, invalidFormat("ParsePeriod", value, expected)
	}

	var p Period
	for _, part := range strings.Split(value, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return Period{}, invalidFormat("ParsePeriod", value, expected)
		}
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return Period{}, invalidFormat("ParsePeriod", value, expected)
		}
		unit, ok := parseUnitWord(fields[1])
		if !ok {
			return Period{}, invalidFormat("ParsePeriod", value, expected)
		}
		p = p.Add(Period{}.with(unit, n))
	}
	return p, nil
}

func parseUnitWord(word string) (PeriodUnits, bool) {
	word = strings.ToLower(word)
	word = strings.TrimSuffix(word, "(s)")
	word = strings.TrimSuffix(word, "s")
	for _, un := range unitNames {
		if word == un.name {
			return un.unit, true
		}
	}
	return NoUnits, false
}

// ParsePeriodUnits parses a unit set written as unit words separated by
// "|" or "," ("years|months", "day, hours"). The names "date", "time" and
// "all" select DateUnits, TimeUnits and AllUnits.
func ParsePeriodUnits(value string) (PeriodUnits, error) {
	const expected = "<unit>[|<unit>...] or date, time, all"
	var units PeriodUnits
	for _, word := range strings.FieldsFunc(value, func(r rune) bool { return r == '|' || r == ',' }) {
		word = strings.TrimSpace(word)
		switch strings.ToLower(word) {
		case "date":
			units |= DateUnits
			continue
		case "time":
			units |= TimeUnits
			continue
		case "all":
			units |= AllUnits
			continue
		}
		unit, ok := parseUnitWord(word)
		if !ok {
			return NoUnits, invalidFormat("ParsePeriodUnits", value, expected)
		}
		units |= unit
	}
	if units == NoUnits {
		return NoUnits, invalidFormat("ParsePeriodUnits", value, expected)
	}
	return units, nil
}
