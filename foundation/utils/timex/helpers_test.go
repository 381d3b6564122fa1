// File: helpers_test.go
// Title: Test Zones and Helpers
// Description: Rule zones and constructors shared by the timex tests.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.2.0: Initial implementation

package timex

import (
	"testing"
	"time"
)

// scenarioZone is UTC+1 with one hour of daylight time from
// 08-26 02:00 to 10-26 03:00.
func scenarioZone(t *testing.T) *RuleZone {
	t.Helper()
	return mustRuleZone(t, "Test/Scenario", Hour, AdjustmentRule{
		DaylightDelta: Hour,
		Start:         FixedTransition(time.August, 26, MustTimeOfDay(2, 0, 0, 0)),
		End:           FixedTransition(time.October, 26, MustTimeOfDay(3, 0, 0, 0)),
	})
}

// midnightZone switches at midnight: 09-05 00:00 forward, 11-05 01:00 back.
func midnightZone(t *testing.T) *RuleZone {
	t.Helper()
	return mustRuleZone(t, "Test/Midnight", Hour, AdjustmentRule{
		DaylightDelta: Hour,
		Start:         FixedTransition(time.September, 5, Midnight),
		End:           FixedTransition(time.November, 5, MustTimeOfDay(1, 0, 0, 0)),
	})
}

// southernZone is UTC+10 with daylight time from the first Sunday of
// October to the first Sunday of April.
func southernZone(t *testing.T) *RuleZone {
	t.Helper()
	return mustRuleZone(t, "Test/South", 10*Hour, AdjustmentRule{
		DaylightDelta: Hour,
		Start:         FloatingTransition(time.October, 1, time.Sunday, MustTimeOfDay(2, 0, 0, 0)),
		End:           FloatingTransition(time.April, 1, time.Sunday, MustTimeOfDay(3, 0, 0, 0)),
	})
}

// negativeZone is UTC+1 in summer and UTC+0 as "daylight" time in winter.
func negativeZone(t *testing.T) *RuleZone {
	t.Helper()
	return mustRuleZone(t, "Test/Negative", Hour, AdjustmentRule{
		DaylightDelta: -Hour,
		Start:         FloatingTransition(time.October, LastWeek, time.Sunday, MustTimeOfDay(2, 0, 0, 0)),
		End:           FloatingTransition(time.March, LastWeek, time.Sunday, MustTimeOfDay(1, 0, 0, 0)),
	})
}

func mustRuleZone(t *testing.T, id string, base Duration, rules ...AdjustmentRule) *RuleZone {
	t.Helper()
	z, err := NewRuleZone(id, base, rules...)
	if err != nil {
		t.Fatalf("NewRuleZone(%s) error = %v", id, err)
	}
	return z
}

func mustLocation(t *testing.T, name string) *LocationZone {
	t.Helper()
	z, err := LoadLocationZone(name)
	if err != nil {
		t.Fatalf("LoadLocationZone(%s) error = %v", name, err)
	}
	return z
}

func mustZoned(t *testing.T, local LocalDateTime, zone TimeZoneRules) ZonedDateTime {
	t.Helper()
	z, err := CreateZoned(local, zone)
	if err != nil {
		t.Fatalf("CreateZoned(%s, %s) error = %v", local, zone.ID(), err)
	}
	return z
}

func ldt(year int, month time.Month, day, hour, minute int) LocalDateTime {
	return MustLocalDateTime(year, month, day, hour, minute, 0, 0)
}

func utcTS(year int, month time.Month, day, hour, minute int) Timestamp {
	return Timestamp{ticks: ldt(year, month, day, hour, minute).ticks}
}
