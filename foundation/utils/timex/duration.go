// File: duration.go
// Title: Exact Durations
// Description: Implements Duration, an exact signed span of 100ns ticks, and the
//              tick constants shared by every calendar type of the package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-15
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with time.Duration helpers
// - 2026-09-15 v0.2.0: Tick based Duration for the calendar engine

package timex

import (
	"math"
	"strconv"
	"time"
)

// Tick constants. One tick is 100 nanoseconds.
const (
	TicksPerMillisecond int64 = 10_000
	TicksPerSecond            = 1_000 * TicksPerMillisecond
	TicksPerMinute            = 60 * TicksPerSecond
	TicksPerHour              = 60 * TicksPerMinute
	TicksPerDay               = 24 * TicksPerHour
	TicksPerWeek              = 7 * TicksPerDay

	nanosPerTick = 100
)

// Duration is an exact, signed number of ticks. Unlike a Period it never
// depends on the calendar: one day is always 24 hours.
type Duration int64

// Common durations.
const (
	Tick        Duration = 1
	Millisecond          = Duration(TicksPerMillisecond)
	Second               = Duration(TicksPerSecond)
	Minute               = Duration(TicksPerMinute)
	Hour                 = Duration(TicksPerHour)
	Day                  = Duration(TicksPerDay)
	Week                 = Duration(TicksPerWeek)
)

// DurationFromTicks returns a duration of n ticks
func DurationFromTicks(n int64) Duration {
	return Duration(n)
}

// DurationFromTimeDuration widens a time.Duration. Sub-tick nanoseconds are
// truncated toward zero.
func DurationFromTimeDuration(d time.Duration) Duration {
	return Duration(int64(d) / nanosPerTick)
}

// Ticks returns the number of ticks
func (d Duration) Ticks() int64 {
	return int64(d)
}

// TotalDays returns the duration as fractional days
func (d Duration) TotalDays() float64 {
	return float64(d) / float64(TicksPerDay)
}

// TotalHours returns the duration as fractional hours
func (d Duration) TotalHours() float64 {
	return float64(d) / float64(TicksPerHour)
}

// TotalMinutes returns the duration as fractional minutes
func (d Duration) TotalMinutes() float64 {
	return float64(d) / float64(TicksPerMinute)
}

// TotalSeconds returns the duration as fractional seconds
func (d Duration) TotalSeconds() float64 {
	return float64(d) / float64(TicksPerSecond)
}

// TotalMilliseconds returns the duration as fractional milliseconds
func (d Duration) TotalMilliseconds() float64 {
	return float64(d) / float64(TicksPerMillisecond)
}

// Add returns d+other
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Subtract returns d-other
func (d Duration) Subtract(other Duration) Duration {
	return d - other
}

// Negate returns -d
func (d Duration) Negate() Duration {
	return -d
}

// Abs returns the absolute value of d
func (d Duration) Abs() Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Compare returns -1, 0 or +1
func (d Duration) Compare(other Duration) int {
	switch {
	case d < other:
		return -1
	case d > other:
		return 1
	default:
		return 0
	}
}

// TimeDuration narrows d to a time.Duration, saturating at the bounds of
// time.Duration (about 292 years).
func (d Duration) TimeDuration() time.Duration {
	const limit = math.MaxInt64 / nanosPerTick
	switch {
	case d > limit:
		return time.Duration(math.MaxInt64)
	case d < -limit:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(int64(d) * nanosPerTick)
}

// String renders the duration as total seconds, e.g. "3600 second(s)"
func (d Duration) String() string {
	return formatTicksAsSeconds(int64(d)) + " second(s)"
}

// formatTicksAsSeconds prints ticks as a decimal number of seconds without
// going through float64, which loses precision above 2^53 ticks.
func formatTicksAsSeconds(ticks int64) string {
	neg := ticks < 0
	u := uint64(ticks)
	if neg {
		u = -u
	}
	whole := u / uint64(TicksPerSecond)
	frac := u % uint64(TicksPerSecond)

	s := strconv.FormatUint(whole, 10)
	if frac != 0 {
		f := strconv.FormatUint(frac+uint64(TicksPerSecond), 10)[1:]
		for len(f) > 0 && f[len(f)-1] == '0' {
			f = f[:len(f)-1]
		}
		s += "." + f
	}
	if neg {
		s = "-" + s
	}
	return s
}
