// File: zoned.go
// Title: Zoned Date-Times
// Description: Implements ZonedDateTime, an instant paired with its civil
//              reading in a time zone. Construction resolves civil values that
//              fall into gaps (error) or overlaps (standard offset wins);
//              calendar arithmetic keeps the daylight side of its source.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-18
// Modified: 2026-09-24
//
// Change History:
// - 2026-09-18 v0.2.0: Initial implementation
// - 2026-09-24 v0.2.1: Field setters snapping out of gaps

package timex

import (
	"strings"
	"time"
)

// ZonedDateTime is an instant together with the zone it is observed in.
// The zero value is 0001-01-01 00:00 UTC.
type ZonedDateTime struct {
	timestamp Timestamp
	local     LocalDateTime
	zone      TimeZoneRules
}

// ===============================
// Construction
// ===============================

// CreateZoned resolves a civil value in zone. Values inside a gap fail with
// an invalid zoned date-time error; ambiguous values resolve to the standard
// offset. A nil zone means UTC.
func CreateZoned(local LocalDateTime, zone TimeZoneRules) (ZonedDateTime, error) {
	return resolve("CreateZoned", local, zoneOrUTC(zone), false)
}

// TryCreateZoned is like CreateZoned but reports failure as false
func TryCreateZoned(local LocalDateTime, zone TimeZoneRules) (ZonedDateTime, bool) {
	z, err := CreateZoned(local, zone)
	return z, err == nil
}

// CreateZonedFromTimestamp observes ts in zone. It always succeeds.
func CreateZonedFromTimestamp(ts Timestamp, zone TimeZoneRules) ZonedDateTime {
	zone = zoneOrUTC(zone)
	off := zone.OffsetAt(ts)
	return ZonedDateTime{
		timestamp: ts,
		local:     LocalDateTime{ticks: ts.ticks + int64(off.Offset)},
		zone:      zone,
	}
}

// CreateZonedUtc interprets local as UTC
func CreateZonedUtc(local LocalDateTime) ZonedDateTime {
	return ZonedDateTime{timestamp: Timestamp{ticks: local.ticks}, local: local, zone: UTC}
}

// ZonedFromTime converts t to the given zone
func ZonedFromTime(t time.Time, zone TimeZoneRules) (ZonedDateTime, error) {
	ts, err := TimestampFromTime(t)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return CreateZonedFromTimestamp(ts, zone), nil
}

// resolve maps local onto the time line. Overlaps resolve to the daylight
// side when preferDaylight is set, else to the standard side.
func resolve(op string, local LocalDateTime, zone TimeZoneRules, preferDaylight bool) (ZonedDateTime, error) {
	if !local.IsValid() {
		return ZonedDateTime{}, outOfRange(op, "local", local.ticks, 0, int64(maxTicks))
	}

	m := zone.Classify(local)
	var off ZoneOffset
	switch m.Kind {
	case MappingGap:
		return ZonedDateTime{}, invalidZonedDateTime(op, local, zone)
	case MappingOverlap:
		off = m.standard()
		if preferDaylight {
			off = m.daylight()
		}
	default:
		off = m.Offset
	}

	ts := Timestamp{ticks: local.ticks - int64(off.Offset)}
	if !ts.IsValid() {
		return ZonedDateTime{}, outOfRange(op, "timestamp", ts.ticks, 0, int64(maxTicks))
	}
	return ZonedDateTime{timestamp: ts, local: local, zone: zone}, nil
}

// ===============================
// Accessors
// ===============================

// Timestamp returns the instant
func (z ZonedDateTime) Timestamp() Timestamp { return z.timestamp }

// LocalDateTime returns the civil reading
func (z ZonedDateTime) LocalDateTime() LocalDateTime { return z.local }

// Zone returns the zone, UTC for the zero value
func (z ZonedDateTime) Zone() TimeZoneRules { return zoneOrUTC(z.zone) }

// UtcOffset returns the offset in effect
func (z ZonedDateTime) UtcOffset() Duration {
	return Duration(z.local.ticks - z.timestamp.ticks)
}

// IsInDaylightSavingTime reports whether the instant lies in daylight time
func (z ZonedDateTime) IsInDaylightSavingTime() bool {
	return z.Zone().OffsetAt(z.timestamp).Daylight
}

// IsAmbiguous reports whether the civil reading occurs twice in the zone
func (z ZonedDateTime) IsAmbiguous() bool {
	return z.Zone().Classify(z.local).Kind == MappingOverlap
}

// GetOppositeAmbiguousDateTime returns the other instant with the same civil
// reading, if the reading is ambiguous
func (z ZonedDateTime) GetOppositeAmbiguousDateTime() (ZonedDateTime, bool) {
	m := z.Zone().Classify(z.local)
	if m.Kind != MappingOverlap {
		return ZonedDateTime{}, false
	}
	other := m.Before
	if other.Offset == z.UtcOffset() {
		other = m.After
	}
	return ZonedDateTime{
		timestamp: Timestamp{ticks: z.local.ticks - int64(other.Offset)},
		local:     z.local,
		zone:      z.Zone(),
	}, true
}

// Year returns the civil year
func (z ZonedDateTime) Year() int { return z.local.Year() }

// Month returns the civil month
func (z ZonedDateTime) Month() time.Month { return z.local.Month() }

// Day returns the civil day of month
func (z ZonedDateTime) Day() int { return z.local.Day() }

// DayOfYear returns the civil day of year
func (z ZonedDateTime) DayOfYear() int { return z.local.DayOfYear() }

// Weekday returns the civil weekday
func (z ZonedDateTime) Weekday() time.Weekday { return z.local.Weekday() }

// Hour returns the civil hour
func (z ZonedDateTime) Hour() int { return z.local.Hour() }

// Minute returns the civil minute
func (z ZonedDateTime) Minute() int { return z.local.Minute() }

// Second returns the civil second
func (z ZonedDateTime) Second() int { return z.local.Second() }

// Millisecond returns the civil millisecond
func (z ZonedDateTime) Millisecond() int { return z.local.Millisecond() }

// TimeOfDay returns the civil time of day
func (z ZonedDateTime) TimeOfDay() TimeOfDay { return z.local.TimeOfDay() }

// Date returns the civil date at midnight
func (z ZonedDateTime) Date() LocalDateTime { return z.local.Date() }

// Time narrows the value to a time.Time in a fixed zone carrying the
// resolved offset
func (z ZonedDateTime) Time() time.Time {
	loc := time.FixedZone(z.Zone().ID(), int(int64(z.UtcOffset())/TicksPerSecond))
	return z.timestamp.Time().In(loc)
}

// ===============================
// Ordering
// ===============================

// Compare orders by instant, then by offset, then by zone id
func (z ZonedDateTime) Compare(other ZonedDateTime) int {
	if c := z.timestamp.Compare(other.timestamp); c != 0 {
		return c
	}
	if c := z.UtcOffset().Compare(other.UtcOffset()); c != 0 {
		return c
	}
	return strings.Compare(z.Zone().ID(), other.Zone().ID())
}

// Equal reports whether both denote the same instant in the same zone
func (z ZonedDateTime) Equal(other ZonedDateTime) bool {
	return z.timestamp == other.timestamp && z.Zone().ID() == other.Zone().ID()
}

// Before reports whether z is earlier than other
func (z ZonedDateTime) Before(other ZonedDateTime) bool { return z.Compare(other) < 0 }

// After reports whether z is later than other
func (z ZonedDateTime) After(other ZonedDateTime) bool { return z.Compare(other) > 0 }

// ===============================
// Exact Arithmetic
// ===============================

// Add shifts the instant by d
func (z ZonedDateTime) Add(d Duration) ZonedDateTime {
	return CreateZonedFromTimestamp(z.timestamp.Add(d), z.Zone())
}

// Subtract shifts the instant by -d
func (z ZonedDateTime) Subtract(d Duration) ZonedDateTime { return z.Add(-d) }

// AddHours shifts the instant by n elapsed hours
func (z ZonedDateTime) AddHours(n int) ZonedDateTime { return z.Add(Duration(n) * Hour) }

// AddMinutes shifts the instant by n elapsed minutes
func (z ZonedDateTime) AddMinutes(n int) ZonedDateTime { return z.Add(Duration(n) * Minute) }

// AddSeconds shifts the instant by n elapsed seconds
func (z ZonedDateTime) AddSeconds(n int) ZonedDateTime { return z.Add(Duration(n) * Second) }

// AddMilliseconds shifts the instant by n elapsed milliseconds
func (z ZonedDateTime) AddMilliseconds(n int) ZonedDateTime {
	return z.Add(Duration(n) * Millisecond)
}

// AddTicks shifts the instant by n ticks
func (z ZonedDateTime) AddTicks(n int64) ZonedDateTime { return z.Add(Duration(n)) }

// GetDurationOffset returns the elapsed time z-start
func (z ZonedDateTime) GetDurationOffset(start ZonedDateTime) Duration {
	return z.timestamp.Sub(start.timestamp)
}

// ===============================
// Calendar Arithmetic
// ===============================

// AddPeriod applies p to the civil reading and resolves the result in the
// same zone. An ambiguous result keeps the daylight side if z is in
// daylight time; a result inside a gap fails.
func (z ZonedDateTime) AddPeriod(p Period) (ZonedDateTime, error) {
	return resolve("AddPeriod", z.local.AddPeriod(p), z.Zone(), z.IsInDaylightSavingTime())
}

// TryAddPeriod is like AddPeriod but reports failure as false
func (z ZonedDateTime) TryAddPeriod(p Period) (ZonedDateTime, bool) {
	r, err := z.AddPeriod(p)
	return r, err == nil
}

// SubtractPeriod applies the negation of p
func (z ZonedDateTime) SubtractPeriod(p Period) (ZonedDateTime, error) {
	return z.AddPeriod(p.Negate())
}

// AddYears adds n calendar years
func (z ZonedDateTime) AddYears(n int) (ZonedDateTime, error) { return z.AddPeriod(FromYears(n)) }

// AddMonths adds n calendar months
func (z ZonedDateTime) AddMonths(n int) (ZonedDateTime, error) { return z.AddPeriod(FromMonths(n)) }

// AddWeeks adds n calendar weeks
func (z ZonedDateTime) AddWeeks(n int) (ZonedDateTime, error) { return z.AddPeriod(FromWeeks(n)) }

// AddDays adds n calendar days
func (z ZonedDateTime) AddDays(n int) (ZonedDateTime, error) { return z.AddPeriod(FromDays(n)) }

// ===============================
// Setters
// ===============================

// SetYear replaces the year, clamping Feb 29 to Feb 28 in common years
func (z ZonedDateTime) SetYear(year int) (ZonedDateTime, error) {
	const op = "SetYear"
	if err := checkRange(op, "year", year, MinYear, MaxYear); err != nil {
		return ZonedDateTime{}, err
	}
	_, m, d := z.local.YearMonthDay()
	target := dateWithClamp(year, m, d).WithTimeOfDay(z.local.TimeOfDay())
	return z.snap(op, target, func(l LocalDateTime) bool { return l.Year() == year })
}

// SetMonth replaces the month, clamping the day to the month length
func (z ZonedDateTime) SetMonth(month time.Month) (ZonedDateTime, error) {
	const op = "SetMonth"
	if err := checkRange(op, "month", int(month), 1, 12); err != nil {
		return ZonedDateTime{}, err
	}
	y, _, d := z.local.YearMonthDay()
	target := dateWithClamp(y, month, d).WithTimeOfDay(z.local.TimeOfDay())
	return z.snap(op, target, func(l LocalDateTime) bool { return l.Month() == month })
}

// SetDayOfMonth replaces the day of month
func (z ZonedDateTime) SetDayOfMonth(day int) (ZonedDateTime, error) {
	const op = "SetDayOfMonth"
	y, m, _ := z.local.YearMonthDay()
	if err := checkRange(op, "day", day, 1, DaysInMonth(y, m)); err != nil {
		return ZonedDateTime{}, err
	}
	target := dateWithClamp(y, m, day).WithTimeOfDay(z.local.TimeOfDay())
	return z.snap(op, target, func(l LocalDateTime) bool { return l.Day() == day })
}

// SetDayOfYear replaces the day of year
func (z ZonedDateTime) SetDayOfYear(dayOfYear int) (ZonedDateTime, error) {
	const op = "SetDayOfYear"
	y := z.local.Year()
	if err := checkRange(op, "day_of_year", dayOfYear, 1, DaysInYear(y)); err != nil {
		return ZonedDateTime{}, err
	}
	target := dateWithClamp(y, time.January, 1).AddDays(dayOfYear - 1).WithTimeOfDay(z.local.TimeOfDay())
	return z.snap(op, target, func(l LocalDateTime) bool { return l.DayOfYear() == dayOfYear })
}

// SetTimeOfDay replaces the time of day. It resolves like CreateZoned.
func (z ZonedDateTime) SetTimeOfDay(tod TimeOfDay) (ZonedDateTime, error) {
	return resolve("SetTimeOfDay", z.local.WithTimeOfDay(tod), z.Zone(), false)
}

// snap resolves the result of a field setter. A value inside a gap moves to
// the last instant before the gap, or to the first one after it when moving
// back would change the field that was set.
func (z ZonedDateTime) snap(op string, target LocalDateTime, keeps func(LocalDateTime) bool) (ZonedDateTime, error) {
	zone := z.Zone()
	m := zone.Classify(target)
	if m.Kind == MappingGap {
		window, _ := m.Window()
		before := window.Start.AddTicks(-1)
		if keeps(before) {
			return resolve(op, before, zone, z.IsInDaylightSavingTime())
		}
		return resolve(op, window.End.AddTicks(1), zone, z.IsInDaylightSavingTime())
	}
	return resolve(op, target, zone, z.IsInDaylightSavingTime())
}

func dateWithClamp(year int, month time.Month, day int) LocalDateTime {
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return LocalDateTime{ticks: daysFromCivil(year, month, day) * TicksPerDay}
}

// ===============================
// Formatting
// ===============================

// String renders the value as "2006-01-02 15:04:05.0000000 +01:00 (zone)"
func (z ZonedDateTime) String() string {
	return z.local.String() + " " + FormatOffset(z.UtcOffset()) + " (" + z.Zone().ID() + ")"
}
