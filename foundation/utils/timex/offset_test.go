// File: offset_test.go
// Title: Period Offset Tests
// Description: Tests for conservative and greedy period offsets, unit
//              folding and the round trip start.AddPeriod(offset) == end.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-19
// Modified: 2026-10-18
//
// Change History:
// - 2026-09-19 v0.2.0: Initial implementation
// - 2026-10-18 v0.2.1: Backward month ends, overlap round trip

package timex

import (
	"testing"
	"time"
)

func TestPeriodOffsetRoundTrip(t *testing.T) {
	zone := scenarioZone(t)
	pairs := []struct {
		name       string
		start, end LocalDateTime
	}{
		{"month end into march", ldt(2021, time.January, 31, 10, 0), ldt(2021, time.March, 1, 9, 0)},
		{"across the gap", ldt(2021, time.August, 25, 12, 0), ldt(2021, time.August, 27, 12, 0)},
		{"backwards across the overlap", ldt(2021, time.October, 27, 0, 0), ldt(2021, time.October, 25, 23, 0)},
		{"backwards from month end", ldt(2021, time.March, 31, 0, 0), ldt(2021, time.February, 28, 0, 0)},
		{"backwards into leap february", ldt(2020, time.March, 31, 12, 0), ldt(2020, time.January, 30, 6, 0)},
		{"leap day to leap year", ldt(2020, time.February, 29, 0, 0), ldt(2024, time.February, 28, 0, 0)},
		{"clamped month", ldt(2021, time.August, 31, 0, 0), ldt(2021, time.September, 30, 0, 0)},
		{"sub-second", ldt(2021, time.May, 1, 0, 0), ldt(2021, time.May, 1, 0, 0).AddTicks(12_345)},
		{"same instant", ldt(2021, time.May, 1, 0, 0), ldt(2021, time.May, 1, 0, 0)},
	}

	for _, pc := range pairs {
		t.Run(pc.name, func(t *testing.T) {
			start := mustZoned(t, pc.start, zone)
			end := mustZoned(t, pc.end, zone)

			variants := map[string]Period{
				"conservative": end.GetPeriodOffset(start, AllUnits),
				"greedy":       end.GetGreedyPeriodOffset(start, AllUnits),
			}
			for name, p := range variants {
				got, err := start.AddPeriod(p)
				if err != nil {
					t.Fatalf("%s: AddPeriod(%v) error = %v", name, p, err)
				}
				if !got.Equal(end) {
					t.Errorf("%s: start + %v = %v, want %v", name, p, got, end)
				}
			}
		})
	}
}

func TestConservativeAndGreedyMonths(t *testing.T) {
	testCases := []struct {
		name         string
		start, end   LocalDateTime
		units        PeriodUnits
		conservative string
		greedy       string
	}{
		{"jan 31 to feb 28", ldt(2021, time.January, 31, 0, 0), ldt(2021, time.February, 28, 0, 0),
			YearMonthDay, "28 day(s)", "1 month(s)"},
		{"leap day to next feb 28", ldt(2020, time.February, 29, 0, 0), ldt(2021, time.February, 28, 0, 0),
			YearMonthDay, "11 month(s), 30 day(s)", "1 year(s)"},
		{"years only", ldt(2020, time.February, 29, 0, 0), ldt(2024, time.February, 28, 0, 0),
			UnitYears, "3 year(s)", "3 year(s)"},
		{"backwards", ldt(2021, time.March, 1, 0, 0), ldt(2021, time.January, 31, 0, 0),
			YearMonthDay, "-1 month(s), -1 day(s)", "-1 month(s), -1 day(s)"},
		{"backwards from march 31", ldt(2021, time.March, 31, 0, 0), ldt(2021, time.February, 28, 0, 0),
			YearMonthDay, "-1 month(s)", "-1 month(s)"},
		{"forwards to march 31", ldt(2021, time.February, 28, 0, 0), ldt(2021, time.March, 31, 0, 0),
			YearMonthDay, "1 month(s), 3 day(s)", "1 month(s), 3 day(s)"},
		{"backwards from may 31", ldt(2021, time.May, 31, 0, 0), ldt(2021, time.February, 28, 0, 0),
			YearMonthDay, "-3 month(s)", "-3 month(s)"},
		{"time of day decides", ldt(2021, time.January, 15, 12, 0), ldt(2021, time.February, 15, 11, 0),
			UnitMonths | UnitHours, "743 hour(s)", "743 hour(s)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start := CreateZonedUtc(tc.start)
			end := CreateZonedUtc(tc.end)
			if got := end.GetPeriodOffset(start, tc.units).String(); got != tc.conservative {
				t.Errorf("GetPeriodOffset() = %q, want %q", got, tc.conservative)
			}
			if got := end.GetGreedyPeriodOffset(start, tc.units).String(); got != tc.greedy {
				t.Errorf("GetGreedyPeriodOffset() = %q, want %q", got, tc.greedy)
			}
		})
	}
}

func TestPeriodOffsetUnitFolding(t *testing.T) {
	start := CreateZonedUtc(ldt(2021, time.January, 1, 0, 0))
	end := CreateZonedUtc(ldt(2021, time.January, 2, 1, 30).AddTicks(7))

	testCases := []struct {
		units PeriodUnits
		want  Period
	}{
		{UnitHours, FromHours(25)},
		{UnitDays, FromDays(1)},
		{UnitMinutes, FromMinutes(1530)},
		{UnitDays | UnitMinutes, NewPeriod(0, 0, 0, 1, 0, 90, 0, 0, 0)},
		{UnitWeeks, Period{}},
		{UnitTicks, FromTicks(25*TicksPerHour + 30*TicksPerMinute + 7)},
		{NoUnits, Period{}},
	}

	for _, tc := range testCases {
		t.Run(tc.units.String(), func(t *testing.T) {
			if got := end.GetPeriodOffset(start, tc.units); !got.Equal(tc.want) {
				t.Errorf("GetPeriodOffset(%v) = %v, want %v", tc.units, got, tc.want)
			}
		})
	}
}

func TestPeriodOffsetAcrossTransition(t *testing.T) {
	zone := scenarioZone(t)
	start := mustZoned(t, ldt(2021, time.August, 25, 12, 0), zone)
	end := mustZoned(t, ldt(2021, time.August, 26, 12, 0), zone)

	if got := end.GetPeriodOffset(start, AllUnits); !got.Equal(FromDays(1)) {
		t.Errorf("GetPeriodOffset() = %v, want 1 day", got)
	}
	if got := end.GetDurationOffset(start); got != 23*Hour {
		t.Errorf("GetDurationOffset() = %v, want 23h", got)
	}

	// start observed in the zone of end
	utcStart := CreateZonedFromTimestamp(start.Timestamp(), UTC)
	if got := end.GetPeriodOffset(utcStart, AllUnits); !got.Equal(FromDays(1)) {
		t.Errorf("GetPeriodOffset(utc start) = %v, want 1 day", got)
	}
}

func TestBackwardOffsetIsNotMirrored(t *testing.T) {
	a := CreateZonedUtc(ldt(2021, time.March, 31, 0, 0))
	b := CreateZonedUtc(ldt(2021, time.February, 28, 0, 0))

	backward := b.GetPeriodOffset(a, AllUnits)
	mirrored := a.GetPeriodOffset(b, AllUnits).Negate()
	if backward.Equal(mirrored) {
		t.Fatalf("backward offset %v equals the mirrored one", backward)
	}

	got, err := a.AddPeriod(backward)
	if err != nil || !got.Equal(b) {
		t.Errorf("a + %v = %v, %v; want %v", backward, got, err, b)
	}
	got, err = a.AddPeriod(mirrored)
	if err != nil {
		t.Fatalf("AddPeriod(%v) error = %v", mirrored, err)
	}
	if got.Equal(b) {
		t.Errorf("a + %v reached %v, the mirrored offset should overshoot", mirrored, b)
	}
}

func TestPeriodOffsetIntoStandardSideOfOverlap(t *testing.T) {
	zone := scenarioZone(t)
	start := mustZoned(t, ldt(2021, time.October, 25, 2, 30), zone)
	end := mustZoned(t, ldt(2021, time.October, 26, 2, 30), zone)
	if !start.IsInDaylightSavingTime() || end.IsInDaylightSavingTime() || !end.IsAmbiguous() {
		t.Fatalf("unexpected setup: start %v, end %v", start, end)
	}

	p := end.GetPeriodOffset(start, AllUnits)
	if !p.Equal(FromDays(1)) {
		t.Fatalf("GetPeriodOffset() = %v, want 1 day", p)
	}

	// the daylight start carries over to the ambiguous result
	got, err := start.AddPeriod(p)
	if err != nil {
		t.Fatalf("AddPeriod() error = %v", err)
	}
	opposite, ok := end.GetOppositeAmbiguousDateTime()
	if !ok {
		t.Fatal("end has no opposite ambiguous value")
	}
	if got.Equal(end) || !got.Equal(opposite) {
		t.Errorf("start + %v = %v, want the daylight side %v", p, got, opposite)
	}
	if d := end.GetDurationOffset(got); d != Hour {
		t.Errorf("end - result = %v, want 1h", d)
	}
}
