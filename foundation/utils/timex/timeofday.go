// File: timeofday.go
// Title: Time of Day
// Description: Implements TimeOfDay, a position within one civil day measured
//              in ticks since midnight, with parsing and formatting.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-15
// Modified: 2026-10-18
//
// Change History:
// - 2026-09-15 v0.2.0: Initial implementation
// - 2026-10-18 v0.2.1: Short clock rendering for transition times

package timex

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a time within a day, 0 <= ticks < TicksPerDay
type TimeOfDay struct {
	ticks int64
}

var (
	// Midnight is the first tick of a day
	Midnight = TimeOfDay{}

	// LastTickOfDay is the last representable tick of a day, 23:59:59.9999999
	LastTickOfDay = TimeOfDay{ticks: TicksPerDay - 1}
)

// NewTimeOfDay creates a time of day from its components
func NewTimeOfDay(hour, minute, second, millisecond int) (TimeOfDay, error) {
	const op = "NewTimeOfDay"
	if err := checkRange(op, "hour", hour, 0, 23); err != nil {
		return TimeOfDay{}, err
	}
	if err := checkRange(op, "minute", minute, 0, 59); err != nil {
		return TimeOfDay{}, err
	}
	if err := checkRange(op, "second", second, 0, 59); err != nil {
		return TimeOfDay{}, err
	}
	if err := checkRange(op, "millisecond", millisecond, 0, 999); err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{ticks: clockTicks(hour, minute, second, millisecond)}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid components.
// It simplifies the declaration of constant rule tables.
func MustTimeOfDay(hour, minute, second, millisecond int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second, millisecond)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayFromTicks creates a time of day from ticks since midnight
func TimeOfDayFromTicks(ticks int64) (TimeOfDay, error) {
	if ticks < 0 || ticks >= TicksPerDay {
		return TimeOfDay{}, outOfRange("TimeOfDayFromTicks", "ticks", ticks, 0, TicksPerDay-1)
	}
	return TimeOfDay{ticks: ticks}, nil
}

// TimeOfDayFromDuration creates a time of day from the elapsed time since midnight
func TimeOfDayFromDuration(d Duration) (TimeOfDay, error) {
	return TimeOfDayFromTicks(d.Ticks())
}

// TimeOfDayFromTimeDuration widens a time.Duration measured from midnight
func TimeOfDayFromTimeDuration(d time.Duration) (TimeOfDay, error) {
	return TimeOfDayFromDuration(DurationFromTimeDuration(d))
}

func clockTicks(hour, minute, second, millisecond int) int64 {
	return int64(hour)*TicksPerHour + int64(minute)*TicksPerMinute +
		int64(second)*TicksPerSecond + int64(millisecond)*TicksPerMillisecond
}

// Ticks returns the ticks since midnight
func (t TimeOfDay) Ticks() int64 { return t.ticks }

// Hour returns the hour, 0-23
func (t TimeOfDay) Hour() int { return int(t.ticks / TicksPerHour) }

// Minute returns the minute, 0-59
func (t TimeOfDay) Minute() int { return int(t.ticks % TicksPerHour / TicksPerMinute) }

// Second returns the second, 0-59
func (t TimeOfDay) Second() int { return int(t.ticks % TicksPerMinute / TicksPerSecond) }

// Millisecond returns the millisecond, 0-999
func (t TimeOfDay) Millisecond() int {
	return int(t.ticks % TicksPerSecond / TicksPerMillisecond)
}

// SubMillisecondTicks returns the ticks below the millisecond, 0-9999
func (t TimeOfDay) SubMillisecondTicks() int64 { return t.ticks % TicksPerMillisecond }

// Duration returns the elapsed time since midnight
func (t TimeOfDay) Duration() Duration { return Duration(t.ticks) }

// Compare returns -1, 0 or +1
func (t TimeOfDay) Compare(other TimeOfDay) int {
	return Duration(t.ticks).Compare(Duration(other.ticks))
}

// Before reports whether t is earlier in the day than other
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.ticks < other.ticks }

// After reports whether t is later in the day than other
func (t TimeOfDay) After(other TimeOfDay) bool { return t.ticks > other.ticks }

// String renders the time as HH:mm:ss.fffffff
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%07d",
		t.Hour(), t.Minute(), t.Second(), t.ticks%TicksPerSecond)
}

// shortClock renders "HH:mm", adding seconds and the fraction only when
// they are set. ParseTimeOfDay reads every form back.
func (t TimeOfDay) shortClock() string {
	clock := fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	frac := t.ticks % TicksPerSecond
	switch {
	case frac != 0:
		digits := strings.TrimRight(fmt.Sprintf("%07d", frac), "0")
		return fmt.Sprintf("%s:%02d.%s", clock, t.Second(), digits)
	case t.Second() != 0:
		return fmt.Sprintf("%s:%02d", clock, t.Second())
	}
	return clock
}

// ParseTimeOfDay parses "15:04", "15:04:05" or "15:04:05.fffffff"
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TimeOfDay{}, invalidFormat("ParseTimeOfDay", value, "HH:mm[:ss[.fffffff]]")
	}

	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			h, m, s := t.Clock()
			ticks := clockTicks(h, m, s, 0) + int64(t.Nanosecond())/nanosPerTick
			return TimeOfDay{ticks: ticks}, nil
		}
	}
	return TimeOfDay{}, invalidFormat("ParseTimeOfDay", value, "HH:mm[:ss[.fffffff]]")
}
