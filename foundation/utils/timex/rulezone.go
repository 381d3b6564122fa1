// File: rulezone.go
// Title: Rule Based Time Zones
// Description: Implements adjustment rules (yearly daylight saving periods
//              with fixed-date or floating transitions) and RuleZone, a zone
//              defined by a base offset plus such rules. Rules whose daylight
//              period wraps the year end (southern hemisphere) are supported.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-17
// Modified: 2026-10-18
//
// Change History:
// - 2026-09-17 v0.2.0: Initial implementation with fixed-date transitions
// - 2026-09-22 v0.2.1: Floating transitions, negative daylight deltas
// - 2026-10-18 v0.2.2: Sub-minute transition times survive String

package timex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LastWeek selects the last occurrence of a weekday in a month
const LastWeek = 5

// TransitionTime is the civil moment a daylight transition happens at. It is
// either a fixed date (Day set, Week zero) or a floating one, the Week-th
// Weekday of Month (Week 5 meaning the last one).
type TransitionTime struct {
	Month     time.Month
	Day       int
	Week      int
	Weekday   time.Weekday
	TimeOfDay TimeOfDay
}

// FixedTransition creates a transition on a fixed date
func FixedTransition(month time.Month, day int, tod TimeOfDay) TransitionTime {
	return TransitionTime{Month: month, Day: day, TimeOfDay: tod}
}

// FloatingTransition creates a transition on the week-th weekday of month
func FloatingTransition(month time.Month, week int, weekday time.Weekday, tod TimeOfDay) TransitionTime {
	return TransitionTime{Month: month, Week: week, Weekday: weekday, TimeOfDay: tod}
}

// IsFixedDate reports whether the transition happens on a fixed date
func (t TransitionTime) IsFixedDate() bool { return t.Week == 0 }

// In returns the civil moment of the transition in year. Fixed days beyond
// the end of the month are clamped to its last day.
func (t TransitionTime) In(year int) LocalDateTime {
	last := DaysInMonth(year, t.Month)
	day := t.Day
	if !t.IsFixedDate() {
		first := daysFromCivil(year, t.Month, 1)
		shift := (int(t.Weekday) - int(weekdayOfDays(first)) + 7) % 7
		day = 1 + shift + (t.Week-1)*7
		for day > last {
			day -= 7
		}
	} else if day > last {
		day = last
	}
	return LocalDateTime{ticks: daysFromCivil(year, t.Month, day)*TicksPerDay + t.TimeOfDay.ticks}
}

func (t TransitionTime) validate() error {
	if t.Month < time.January || t.Month > time.December {
		return fmt.Errorf("month %d out of range", int(t.Month))
	}
	if t.IsFixedDate() {
		if t.Day < 1 || t.Day > 31 {
			return fmt.Errorf("day %d out of range", t.Day)
		}
		return nil
	}
	if t.Week < 1 || t.Week > LastWeek {
		return fmt.Errorf("week %d out of range", t.Week)
	}
	if t.Weekday < time.Sunday || t.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", int(t.Weekday))
	}
	return nil
}

// String renders the transition, e.g. "03-28 02:00" or "last Sunday of March 02:00".
// Seconds and fractions appear only when set: "10-31 23:59:59.999".
func (t TransitionTime) String() string {
	clock := t.TimeOfDay.shortClock()
	if t.IsFixedDate() {
		return fmt.Sprintf("%02d-%02d %s", int(t.Month), t.Day, clock)
	}
	ordinal := [...]string{"", "first", "second", "third", "fourth", "last"}[t.Week]
	return fmt.Sprintf("%s %s of %s %s", ordinal, t.Weekday, t.Month, clock)
}

// ParseTransitionTime parses the output of TransitionTime.String: a fixed
// date "MM-DD HH:mm" or a floating "<ordinal> <weekday> of <month> HH:mm"
// (seconds and fraction optional) with ordinal first, second, third, fourth or last. Names are matched
// case-insensitively.
func ParseTransitionTime(value string) (TransitionTime, error) {
	const expected = `"MM-DD HH:mm" or "last Sunday of March HH:mm"`
	fields := strings.Fields(value)
	fail := func() (TransitionTime, error) {
		return TransitionTime{}, invalidFormat("ParseTransitionTime", value, expected)
	}

	switch len(fields) {
	case 2:
		date := strings.SplitN(fields[0], "-", 2)
		if len(date) != 2 {
			return fail()
		}
		month, err1 := strconv.Atoi(date[0])
		day, err2 := strconv.Atoi(date[1])
		tod, err3 := ParseTimeOfDay(fields[1])
		if err1 != nil || err2 != nil || err3 != nil {
			return fail()
		}
		t := FixedTransition(time.Month(month), day, tod)
		if t.validate() != nil {
			return fail()
		}
		return t, nil
	case 5:
		week := 0
		for i, name := range []string{"first", "second", "third", "fourth", "last"} {
			if strings.EqualFold(fields[0], name) {
				week = i + 1
			}
		}
		weekday, okDay := lookupName(fields[1], 7, func(i int) string { return time.Weekday(i).String() })
		month, okMonth := lookupName(fields[3], 12, func(i int) string { return time.Month(i + 1).String() })
		tod, err := ParseTimeOfDay(fields[4])
		if week == 0 || !okDay || !okMonth || !strings.EqualFold(fields[2], "of") || err != nil {
			return fail()
		}
		return FloatingTransition(time.Month(month+1), week, time.Weekday(weekday), tod), nil
	}
	return fail()
}

func lookupName(word string, n int, name func(int) string) (int, bool) {
	for i := 0; i < n; i++ {
		if strings.EqualFold(word, name(i)) {
			return i, true
		}
	}
	return 0, false
}

// AdjustmentRule describes the daylight saving period of a range of years.
// Start is given in standard local time, End in daylight local time. A year
// bound of zero means unbounded.
type AdjustmentRule struct {
	FromYear      int
	ToYear        int
	DaylightDelta Duration
	Start         TransitionTime
	End           TransitionTime
}

// AppliesTo reports whether the rule covers year
func (r AdjustmentRule) AppliesTo(year int) bool {
	return (r.FromYear == 0 || year >= r.FromYear) && (r.ToYear == 0 || year <= r.ToYear)
}

// InvalidityRange returns the civil values of year skipped by the forward
// transition. With a positive delta the gap follows Start, with a negative
// one it follows End.
func (r AdjustmentRule) InvalidityRange(year int) (LocalRange, bool) {
	switch {
	case r.DaylightDelta > 0:
		s := r.Start.In(year)
		return LocalRange{Start: s, End: s.AddTicks(int64(r.DaylightDelta) - 1)}, true
	case r.DaylightDelta < 0:
		e := r.End.In(year)
		return LocalRange{Start: e, End: e.AddTicks(-int64(r.DaylightDelta) - 1)}, true
	}
	return LocalRange{}, false
}

// AmbiguityRange returns the civil values of year that occur twice
func (r AdjustmentRule) AmbiguityRange(year int) (LocalRange, bool) {
	switch {
	case r.DaylightDelta > 0:
		e := r.End.In(year)
		return LocalRange{Start: e.AddTicks(-int64(r.DaylightDelta)), End: e.AddTicks(-1)}, true
	case r.DaylightDelta < 0:
		s := r.Start.In(year)
		return LocalRange{Start: s.AddTicks(int64(r.DaylightDelta)), End: s.AddTicks(-1)}, true
	}
	return LocalRange{}, false
}

func (r AdjustmentRule) validate() error {
	if r.FromYear != 0 && r.ToYear != 0 && r.FromYear > r.ToYear {
		return fmt.Errorf("year range %d-%d is empty", r.FromYear, r.ToYear)
	}
	if r.DaylightDelta.Abs() >= 12*Hour {
		return fmt.Errorf("daylight delta %s too large", r.DaylightDelta)
	}
	if int64(r.DaylightDelta)%TicksPerMinute != 0 {
		return fmt.Errorf("daylight delta %s is not a whole number of minutes", r.DaylightDelta)
	}
	if err := r.Start.validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := r.End.validate(); err != nil {
		return fmt.Errorf("end: %w", err)
	}
	return nil
}

// ===============================
// RuleZone
// ===============================

// RuleZone is a zone defined by a base offset and adjustment rules
type RuleZone struct {
	id    string
	base  Duration
	rules []AdjustmentRule
}

// NewRuleZone creates a rule based zone. Rules must not cover a year twice.
func NewRuleZone(id string, base Duration, rules ...AdjustmentRule) (*RuleZone, error) {
	const op = "NewRuleZone"
	if id == "" {
		return nil, invalidInput(op, "zone id must not be empty")
	}
	if base.Abs() > 14*Hour {
		return nil, outOfRange(op, "base_offset", base.String(), "-14h", "+14h")
	}

	sorted := make([]AdjustmentRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FromYear < sorted[j].FromYear })

	for i, r := range sorted {
		if err := r.validate(); err != nil {
			return nil, invalidInput(op, fmt.Sprintf("rule %d of %s: %v", i, id, err))
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.ToYear == 0 || r.FromYear == 0 || r.FromYear <= prev.ToYear {
				return nil, invalidInput(op, fmt.Sprintf("rule %d of %s: year ranges must not overlap", i, id))
			}
		}
	}
	return &RuleZone{id: id, base: base, rules: sorted}, nil
}

// ID returns the zone identifier
func (z *RuleZone) ID() string { return z.id }

// BaseUtcOffset returns the standard offset
func (z *RuleZone) BaseUtcOffset() Duration { return z.base }

// Rules returns a copy of the adjustment rules ordered by year
func (z *RuleZone) Rules() []AdjustmentRule {
	out := make([]AdjustmentRule, len(z.rules))
	copy(out, z.rules)
	return out
}

// AdjustmentRuleFor returns the rule covering year
func (z *RuleZone) AdjustmentRuleFor(year int) (AdjustmentRule, bool) {
	for _, r := range z.rules {
		if r.AppliesTo(year) && r.DaylightDelta != 0 {
			return r, true
		}
	}
	return AdjustmentRule{}, false
}

func (z *RuleZone) offsets(r AdjustmentRule) (std, dst ZoneOffset) {
	return ZoneOffset{Offset: z.base}, ZoneOffset{Offset: z.base + r.DaylightDelta, Daylight: true}
}

// transitions returns the instants daylight time begins and ends in year
func (z *RuleZone) transitions(r AdjustmentRule, year int) (begin, end Timestamp) {
	std, dst := z.offsets(r)
	begin = Timestamp{ticks: r.Start.In(year).ticks - int64(std.Offset)}
	end = Timestamp{ticks: r.End.In(year).ticks - int64(dst.Offset)}
	return begin, end
}

// OffsetAt returns the offset in effect at ts
func (z *RuleZone) OffsetAt(ts Timestamp) ZoneOffset {
	year := LocalDateTime{ticks: ts.ticks + int64(z.base)}.Year()
	r, ok := z.AdjustmentRuleFor(year)
	if !ok {
		return ZoneOffset{Offset: z.base}
	}
	std, dst := z.offsets(r)
	begin, end := z.transitions(r, year)

	var inDaylight bool
	if begin.Before(end) {
		inDaylight = !ts.Before(begin) && ts.Before(end)
	} else {
		inDaylight = !ts.Before(begin) || ts.Before(end)
	}
	if inDaylight {
		return dst
	}
	return std
}

// Classify maps local onto the time line. Transitions of the neighbouring
// years are checked as well since a window may cross the year end.
func (z *RuleZone) Classify(local LocalDateTime) LocalMapping {
	year := local.Year()
	for y := year - 1; y <= year+1; y++ {
		r, ok := z.AdjustmentRuleFor(y)
		if !ok {
			continue
		}
		std, dst := z.offsets(r)
		begin, end := z.transitions(r, y)

		if gap, ok := r.InvalidityRange(y); ok && gap.Contains(local) {
			if r.DaylightDelta > 0 {
				return LocalMapping{Kind: MappingGap, Transition: begin, Before: std, After: dst}
			}
			return LocalMapping{Kind: MappingGap, Transition: end, Before: dst, After: std}
		}
		if amb, ok := r.AmbiguityRange(y); ok && amb.Contains(local) {
			if r.DaylightDelta > 0 {
				return LocalMapping{Kind: MappingOverlap, Transition: end, Before: dst, After: std}
			}
			return LocalMapping{Kind: MappingOverlap, Transition: begin, Before: std, After: dst}
		}
	}

	std := ZoneOffset{Offset: z.base}
	candidates := []ZoneOffset{std}
	if r, ok := z.AdjustmentRuleFor(year); ok {
		_, dst := z.offsets(r)
		candidates = append(candidates, dst)
	}
	if valid := consistentOffsets(z, local, candidates); len(valid) > 0 {
		return LocalMapping{Kind: MappingNormal, Offset: valid[0]}
	}
	return LocalMapping{Kind: MappingNormal, Offset: std}
}

// consistentOffsets returns the candidates o for which the instant local-o
// actually has offset o in zone
func consistentOffsets(zone TimeZoneRules, local LocalDateTime, candidates []ZoneOffset) []ZoneOffset {
	var valid []ZoneOffset
	for _, c := range candidates {
		got := zone.OffsetAt(Timestamp{ticks: local.ticks - int64(c.Offset)})
		if got.Offset != c.Offset {
			continue
		}
		duplicate := false
		for _, v := range valid {
			if v.Offset == got.Offset {
				duplicate = true
				break
			}
		}
		if !duplicate {
			valid = append(valid, got)
		}
	}
	return valid
}
