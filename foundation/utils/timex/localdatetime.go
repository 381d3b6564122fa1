// File: localdatetime.go
// Title: Civil Date-Times
// Description: Implements LocalDateTime, a zone-less proleptic Gregorian
//              date-time, and the calendar arithmetic periods are applied with.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-15
// Modified: 2026-09-20
//
// Change History:
// - 2026-09-15 v0.2.0: Initial implementation
// - 2026-09-20 v0.2.1: ParseLocalDateTime with the business and ISO layouts

package timex

import (
	"fmt"
	"strings"
	"time"
)

// Common layouts accepted by ParseLocalDateTime
const (
	ISO8601Date      = "2006-01-02"
	ISO8601DateTime  = "2006-01-02T15:04:05"
	BusinessDateTime = "2006-01-02 15:04:05"
	ShortDateTime    = "2006-01-02 15:04"
	EuropeanDate     = "2.1.2006"
)

// LocalDateTime is a civil date and time without a zone, stored as ticks
// since 0001-01-01 00:00. The zero value is 0001-01-01 00:00.
type LocalDateTime struct {
	ticks int64
}

var (
	// MinLocalDateTime is 0001-01-01 00:00:00
	MinLocalDateTime = LocalDateTime{}

	// MaxLocalDateTime is 9999-12-31 23:59:59.9999999
	MaxLocalDateTime = LocalDateTime{ticks: maxTicks}
)

// NewLocalDateTime creates a civil date-time from its components
func NewLocalDateTime(year int, month time.Month, day, hour, minute, second, millisecond int) (LocalDateTime, error) {
	date, err := newDate("NewLocalDateTime", year, month, day)
	if err != nil {
		return LocalDateTime{}, err
	}
	tod, err := NewTimeOfDay(hour, minute, second, millisecond)
	if err != nil {
		return LocalDateTime{}, err
	}
	return date.WithTimeOfDay(tod), nil
}

// NewLocalDate creates a civil date at midnight
func NewLocalDate(year int, month time.Month, day int) (LocalDateTime, error) {
	return newDate("NewLocalDate", year, month, day)
}

// MustLocalDateTime is like NewLocalDateTime but panics on invalid components
func MustLocalDateTime(year int, month time.Month, day, hour, minute, second, millisecond int) LocalDateTime {
	l, err := NewLocalDateTime(year, month, day, hour, minute, second, millisecond)
	if err != nil {
		panic(err)
	}
	return l
}

// MustLocalDate is like NewLocalDate but panics on invalid components
func MustLocalDate(year int, month time.Month, day int) LocalDateTime {
	return MustLocalDateTime(year, month, day, 0, 0, 0, 0)
}

func newDate(op string, year int, month time.Month, day int) (LocalDateTime, error) {
	if err := checkRange(op, "year", year, MinYear, MaxYear); err != nil {
		return LocalDateTime{}, err
	}
	if err := checkRange(op, "month", int(month), 1, 12); err != nil {
		return LocalDateTime{}, err
	}
	if err := checkRange(op, "day", day, 1, DaysInMonth(year, month)); err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{ticks: daysFromCivil(year, month, day) * TicksPerDay}, nil
}

// LocalDateTimeFromTicks creates a civil date-time from ticks since 0001-01-01
func LocalDateTimeFromTicks(ticks int64) (LocalDateTime, error) {
	if ticks < 0 || ticks > maxTicks {
		return LocalDateTime{}, outOfRange("LocalDateTimeFromTicks", "ticks", ticks, 0, int64(maxTicks))
	}
	return LocalDateTime{ticks: ticks}, nil
}

// LocalDateTimeFromTime takes the wall clock reading of t, ignoring its location
func LocalDateTimeFromTime(t time.Time) (LocalDateTime, error) {
	y, m, d := t.Date()
	if err := checkRange("LocalDateTimeFromTime", "year", y, MinYear, MaxYear); err != nil {
		return LocalDateTime{}, err
	}
	h, mi, s := t.Clock()
	ticks := daysFromCivil(y, m, d)*TicksPerDay + clockTicks(h, mi, s, 0) + int64(t.Nanosecond())/nanosPerTick
	return LocalDateTime{ticks: ticks}, nil
}

// ===============================
// Accessors
// ===============================

// Ticks returns the ticks since 0001-01-01 00:00
func (l LocalDateTime) Ticks() int64 { return l.ticks }

func (l LocalDateTime) days() int64 { return floorDiv(l.ticks, TicksPerDay) }

// YearMonthDay returns the date components
func (l LocalDateTime) YearMonthDay() (int, time.Month, int) {
	return civilFromDays(l.days())
}

// Year returns the year
func (l LocalDateTime) Year() int {
	y, _, _ := l.YearMonthDay()
	return y
}

// Month returns the month
func (l LocalDateTime) Month() time.Month {
	_, m, _ := l.YearMonthDay()
	return m
}

// Day returns the day of the month
func (l LocalDateTime) Day() int {
	_, _, d := l.YearMonthDay()
	return d
}

// DayOfYear returns the day of the year, 1-366
func (l LocalDateTime) DayOfYear() int {
	return int(l.days()-daysFromCivil(l.Year(), time.January, 1)) + 1
}

// Weekday returns the day of the week
func (l LocalDateTime) Weekday() time.Weekday {
	return weekdayOfDays(l.days())
}

// TimeOfDay returns the time within the day
func (l LocalDateTime) TimeOfDay() TimeOfDay {
	return TimeOfDay{ticks: l.ticks - l.days()*TicksPerDay}
}

// Hour returns the hour, 0-23
func (l LocalDateTime) Hour() int { return l.TimeOfDay().Hour() }

// Minute returns the minute, 0-59
func (l LocalDateTime) Minute() int { return l.TimeOfDay().Minute() }

// Second returns the second, 0-59
func (l LocalDateTime) Second() int { return l.TimeOfDay().Second() }

// Millisecond returns the millisecond, 0-999
func (l LocalDateTime) Millisecond() int { return l.TimeOfDay().Millisecond() }

// Date returns the date at midnight
func (l LocalDateTime) Date() LocalDateTime {
	return LocalDateTime{ticks: l.days() * TicksPerDay}
}

// WithTimeOfDay returns the same date at tod
func (l LocalDateTime) WithTimeOfDay(tod TimeOfDay) LocalDateTime {
	return LocalDateTime{ticks: l.days()*TicksPerDay + tod.ticks}
}

// IsValid reports whether l lies within years 1-9999
func (l LocalDateTime) IsValid() bool {
	return l.ticks >= 0 && l.ticks <= maxTicks
}

// ===============================
// Arithmetic
// ===============================

// AddTicks shifts the civil value by n ticks
func (l LocalDateTime) AddTicks(n int64) LocalDateTime {
	return LocalDateTime{ticks: l.ticks + n}
}

// AddDuration shifts the civil value by d
func (l LocalDateTime) AddDuration(d Duration) LocalDateTime {
	return l.AddTicks(int64(d))
}

// AddDays shifts the date by n days keeping the time of day
func (l LocalDateTime) AddDays(n int) LocalDateTime {
	return l.AddTicks(int64(n) * TicksPerDay)
}

// AddMonths shifts the date by n months. The day of month is clamped to the
// length of the target month, so Jan 31 + 1 month is Feb 28 (29).
func (l LocalDateTime) AddMonths(n int) LocalDateTime {
	if n == 0 {
		return l
	}
	y, m, d := l.YearMonthDay()
	total := y*12 + int(m) - 1 + n
	ny := floorDivInt(total, 12)
	nm := time.Month(total - ny*12 + 1)
	if last := DaysInMonth(ny, nm); d > last {
		d = last
	}
	return LocalDateTime{ticks: daysFromCivil(ny, nm, d)*TicksPerDay + l.TimeOfDay().ticks}
}

// AddYears shifts the date by n years; Feb 29 becomes Feb 28 in common years
func (l LocalDateTime) AddYears(n int) LocalDateTime {
	return l.AddMonths(n * 12)
}

// AddPeriod applies p in calendar order: months first (clamping the day of
// month), then days, then the fixed part.
func (l LocalDateTime) AddPeriod(p Period) LocalDateTime {
	return l.AddMonths(p.TotalMonths()).AddDays(p.TotalDays()).AddTicks(p.FixedTicks())
}

// Sub returns the elapsed civil time l-other
func (l LocalDateTime) Sub(other LocalDateTime) Duration {
	return Duration(l.ticks - other.ticks)
}

// Compare returns -1, 0 or +1
func (l LocalDateTime) Compare(other LocalDateTime) int {
	return Duration(l.ticks).Compare(Duration(other.ticks))
}

// Before reports whether l is earlier than other
func (l LocalDateTime) Before(other LocalDateTime) bool { return l.ticks < other.ticks }

// After reports whether l is later than other
func (l LocalDateTime) After(other LocalDateTime) bool { return l.ticks > other.ticks }

// Equal reports whether both denote the same civil value
func (l LocalDateTime) Equal(other LocalDateTime) bool { return l.ticks == other.ticks }

// Time returns the wall clock reading as a time.Time in UTC
func (l LocalDateTime) Time() time.Time {
	return Timestamp{ticks: l.ticks}.Time()
}

// ===============================
// Formatting and Parsing
// ===============================

// String renders the value as 2006-01-02 15:04:05.0000000
func (l LocalDateTime) String() string {
	return l.DateString() + " " + l.TimeOfDay().String()
}

// DateString renders the date part as 2006-01-02
func (l LocalDateTime) DateString() string {
	y, m, d := l.YearMonthDay()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func (l LocalDateTime) isoString() string {
	return l.DateString() + "T" + l.TimeOfDay().String()
}

// ParseLocalDateTime parses a civil date-time. Accepted layouts are the ISO
// and business formats with optional fractional seconds, a date alone, and
// the European DD.MM.YYYY date.
func ParseLocalDateTime(value string) (LocalDateTime, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return LocalDateTime{}, invalidFormat("ParseLocalDateTime", value, BusinessDateTime)
	}

	layouts := []string{
		BusinessDateTime,
		ISO8601DateTime,
		ShortDateTime,
		"2006-01-02T15:04",
		ISO8601Date,
		EuropeanDate,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return LocalDateTimeFromTime(t)
		}
	}
	return LocalDateTime{}, invalidFormat("ParseLocalDateTime", value, BusinessDateTime)
}

func floorDivInt(a, b int) int {
	return int(floorDiv(int64(a), int64(b)))
}
