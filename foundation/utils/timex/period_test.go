// File: period_test.go
// Title: Period Tests
// Description: Tests for period construction, masking, rendering and parsing.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-16
// Modified: 2026-09-20
//
// Change History:
// - 2026-09-16 v0.2.0: Initial implementation
// - 2026-09-20 v0.2.1: ParsePeriod tests

package timex

import (
	"testing"
	"time"
)

func TestPeriodString(t *testing.T) {
	testCases := []struct {
		name string
		p    Period
		want string
	}{
		{"zero", Period{}, "0 day(s)"},
		{"years and months", NewPeriod(1, 2, 0, 0, 0, 0, 0, 0, 0), "1 year(s), 2 month(s)"},
		{"negative days", FromDays(-3), "-3 day(s)"},
		{"mixed signs", NewPeriod(0, 1, 0, -2, 0, 0, 0, 0, 0), "1 month(s), -2 day(s)"},
		{"every field", NewPeriod(1, 1, 1, 1, 1, 1, 1, 1, 1),
			"1 year(s), 1 month(s), 1 week(s), 1 day(s), 1 hour(s), 1 minute(s), 1 second(s), 1 millisecond(s), 1 tick(s)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"1 year(s), 2 month(s)", NewPeriod(1, 2, 0, 0, 0, 0, 0, 0, 0), false},
		{"0 day(s)", Period{}, false},
		{"1 year, 2 months, 3 days", NewPeriod(1, 2, 0, 3, 0, 0, 0, 0, 0), false},
		{"-25 hours", FromHours(-25), false},
		{"1 day, 1 day", FromDays(2), false},
		{"7 Ticks", FromTicks(7), false},
		{"", Period{}, true},
		{"3", Period{}, true},
		{"x days", Period{}, true},
		{"3 fortnights", Period{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePeriod(tc.input)
			if tc.wantErr {
				if !IsInvalidFormat(err) {
					t.Errorf("ParsePeriod(%q) error = %v, want invalid format", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod(%q) error = %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParsePeriodInvertsString(t *testing.T) {
	periods := []Period{
		NewPeriod(3, -1, 2, 0, 4, 0, 59, 999, 9_999),
		FromWeeks(-2),
		PeriodFromDuration(26*Hour + 3*Millisecond),
	}
	for _, p := range periods {
		got, err := ParsePeriod(p.String())
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error = %v", p, err)
		}
		if !got.Equal(p) {
			t.Errorf("ParsePeriod(%q) = %v", p, got)
		}
	}
}

func TestPeriodFromDuration(t *testing.T) {
	p := PeriodFromDuration(25*Hour + Millisecond + 3*Tick)
	want := NewPeriod(0, 0, 0, 1, 1, 0, 0, 1, 3)
	if !p.Equal(want) {
		t.Errorf("PeriodFromDuration() = %v, want %v", p, want)
	}

	neg := PeriodFromDuration(-(90 * Minute))
	if neg.Hours() != -1 || neg.Minutes() != -30 {
		t.Errorf("negative split = %v", neg)
	}

	if got := PeriodFromTimeDuration(90 * time.Second); !got.Equal(NewPeriod(0, 0, 0, 0, 0, 1, 30, 0, 0)) {
		t.Errorf("PeriodFromTimeDuration(90s) = %v", got)
	}
}

func TestPeriodUnitsMasks(t *testing.T) {
	p := NewPeriod(1, 2, 3, 4, 5, 6, 7, 8, 9)

	if got := p.Take(DateUnits); !got.Equal(NewPeriod(1, 2, 3, 4, 0, 0, 0, 0, 0)) {
		t.Errorf("Take(DateUnits) = %v", got)
	}
	if got := p.Skip(DateUnits); !got.Equal(NewPeriod(0, 0, 0, 0, 5, 6, 7, 8, 9)) {
		t.Errorf("Skip(DateUnits) = %v", got)
	}
	if got := FromDays(2).Add(FromHours(3)).ActiveUnits(); got != UnitDays|UnitHours {
		t.Errorf("ActiveUnits() = %v", got)
	}
	if p.ActiveUnits() != AllUnits {
		t.Errorf("ActiveUnits() = %v, want all", p.ActiveUnits())
	}
	if !AllUnits.Has(YearMonthDay) || YearMonth.Has(UnitDays) {
		t.Error("Has() misreports")
	}
	if got := (UnitYears | UnitDays).String(); got != "years|days" {
		t.Errorf("PeriodUnits.String() = %q", got)
	}
}

func TestPeriodArithmetic(t *testing.T) {
	a := NewPeriod(1, 0, 0, 2, 0, 0, 0, 0, 0)
	b := NewPeriod(0, 3, 0, -2, 1, 0, 0, 0, 0)

	if got := a.Add(b).Subtract(b); !got.Equal(a) {
		t.Errorf("Add/Subtract = %v, want %v", got, a)
	}
	if !a.Add(a.Negate()).IsZero() {
		t.Error("a + -a should be zero")
	}
	if FromDays(1).Equal(FromHours(24)) {
		t.Error("1 day and 24 hours must be different periods")
	}
	if a.SetDays(0).SetMonths(5).TotalMonths() != 17 {
		t.Errorf("TotalMonths() = %d", a.SetDays(0).SetMonths(5).TotalMonths())
	}
	if FromWeeks(2).TotalDays() != 14 {
		t.Error("TotalDays() should count weeks")
	}
	if NewPeriod(0, 0, 0, 0, 1, 1, 1, 1, 1).FixedTicks() != TicksPerHour+TicksPerMinute+TicksPerSecond+TicksPerMillisecond+1 {
		t.Error("FixedTicks() mismatch")
	}
}

func TestParsePeriodUnits(t *testing.T) {
	testCases := []struct {
		input string
		want  PeriodUnits
	}{
		{"years|months", YearMonth},
		{"year, month, days", YearMonthDay},
		{"date", DateUnits},
		{"all", AllUnits},
		{"hours|ticks", UnitHours | UnitTicks},
	}
	for _, tc := range testCases {
		got, err := ParsePeriodUnits(tc.input)
		if err != nil || got != tc.want {
			t.Errorf("ParsePeriodUnits(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
		if err == nil {
			if again, _ := ParsePeriodUnits(got.String()); again != got {
				t.Errorf("ParsePeriodUnits(%q) = %v", got.String(), again)
			}
		}
	}

	for _, bad := range []string{"", "fortnights", "|"} {
		if _, err := ParsePeriodUnits(bad); !IsInvalidFormat(err) {
			t.Errorf("ParsePeriodUnits(%q) error = %v", bad, err)
		}
	}
}
