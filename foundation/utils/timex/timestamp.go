// File: timestamp.go
// Title: UTC Instants
// Description: Implements Timestamp, an absolute instant counted in ticks since
//              0001-01-01 00:00:00 UTC, with conversions to and from time.Time.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-15
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-15 v0.2.0: Initial implementation

package timex

import (
	"time"
)

// Timestamp is an instant on the UTC time line
type Timestamp struct {
	ticks int64
}

var (
	// MinTimestamp is 0001-01-01 00:00:00 UTC
	MinTimestamp = Timestamp{}

	// MaxTimestamp is 9999-12-31 23:59:59.9999999 UTC
	MaxTimestamp = Timestamp{ticks: maxTicks}

	// UnixEpoch is 1970-01-01 00:00:00 UTC
	UnixEpoch = Timestamp{ticks: unixEpochDays * TicksPerDay}
)

// TimestampFromTicks creates a timestamp from ticks since 0001-01-01 UTC
func TimestampFromTicks(ticks int64) (Timestamp, error) {
	if ticks < 0 || ticks > maxTicks {
		return Timestamp{}, outOfRange("TimestampFromTicks", "ticks", ticks, 0, int64(maxTicks))
	}
	return Timestamp{ticks: ticks}, nil
}

// TimestampFromTime converts t to a timestamp. Nanoseconds below one tick
// are truncated.
func TimestampFromTime(t time.Time) (Timestamp, error) {
	u := t.UTC()
	year := u.Year()
	if year < MinYear || year > MaxYear {
		return Timestamp{}, outOfRange("TimestampFromTime", "year", year, MinYear, MaxYear)
	}
	y, m, d := u.Date()
	h, mi, s := u.Clock()
	ticks := daysFromCivil(y, m, d)*TicksPerDay + clockTicks(h, mi, s, 0) + int64(u.Nanosecond())/nanosPerTick
	return Timestamp{ticks: ticks}, nil
}

// TimestampFromUnixMilli creates a timestamp from milliseconds since the Unix epoch
func TimestampFromUnixMilli(ms int64) (Timestamp, error) {
	return TimestampFromTicks(UnixEpoch.ticks + ms*TicksPerMillisecond)
}

// Ticks returns the ticks since 0001-01-01 UTC
func (t Timestamp) Ticks() int64 { return t.ticks }

// UnixMilli returns the milliseconds since the Unix epoch
func (t Timestamp) UnixMilli() int64 {
	return floorDiv(t.ticks-UnixEpoch.ticks, TicksPerMillisecond)
}

// Time narrows the timestamp to a time.Time in UTC
func (t Timestamp) Time() time.Time {
	rel := t.ticks - UnixEpoch.ticks
	sec := floorDiv(rel, TicksPerSecond)
	nsec := (rel - sec*TicksPerSecond) * nanosPerTick
	return time.Unix(sec, nsec).UTC()
}

// Add returns t+d
func (t Timestamp) Add(d Duration) Timestamp {
	return Timestamp{ticks: t.ticks + int64(d)}
}

// Subtract returns t-d
func (t Timestamp) Subtract(d Duration) Timestamp {
	return Timestamp{ticks: t.ticks - int64(d)}
}

// Sub returns the exact duration t-other
func (t Timestamp) Sub(other Timestamp) Duration {
	return Duration(t.ticks - other.ticks)
}

// Compare returns -1, 0 or +1
func (t Timestamp) Compare(other Timestamp) int {
	return Duration(t.ticks).Compare(Duration(other.ticks))
}

// Before reports whether t is earlier than other
func (t Timestamp) Before(other Timestamp) bool { return t.ticks < other.ticks }

// After reports whether t is later than other
func (t Timestamp) After(other Timestamp) bool { return t.ticks > other.ticks }

// Equal reports whether both denote the same instant
func (t Timestamp) Equal(other Timestamp) bool { return t.ticks == other.ticks }

// IsValid reports whether t lies within [MinTimestamp, MaxTimestamp]
func (t Timestamp) IsValid() bool { return t.ticks >= 0 && t.ticks <= maxTicks }

// String renders the instant as 2006-01-02T15:04:05.0000000Z
func (t Timestamp) String() string {
	return LocalDateTime{ticks: t.ticks}.isoString() + "Z"
}
