// File: offset.go
// Title: Period Offsets
// Description: Computes the calendar period between two zoned date-times.
//              The conservative variant counts a month only once the civil
//              position within the month is reached; the greedy variant counts
//              every month whose clamped addition does not overshoot.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-19
// Modified: 2026-10-18
//
// Change History:
// - 2026-09-19 v0.2.0: Initial implementation
// - 2026-10-18 v0.2.1: Backward offsets documented and pinned by tests

package timex

// GetPeriodOffset returns the period p with start.AddPeriod(p) == z, using
// only the requested units. Months are counted by civil position, so
// Jan 31 -> Feb 28 is 28 days, not one month. Units that are not requested
// fold into the next smaller requested unit; anything below the smallest
// requested unit is truncated toward zero. start is observed in the zone of z.
//
// When z is before start the months are counted backwards from start rather
// than by negating z.GetPeriodOffset from the other side, so 03-31 -> 02-28
// is -1 month while 02-28 -> 03-31 is 1 month and 3 days. The round trip
// start.AddPeriod(p) == z holds in both directions, except when z is the
// standard side of an overlap and start is in daylight time: the addition
// then resolves to the daylight side.
func (z ZonedDateTime) GetPeriodOffset(start ZonedDateTime, units PeriodUnits) Period {
	return periodBetween(z.startIn(start), z.local, units, false)
}

// GetGreedyPeriodOffset is like GetPeriodOffset but takes as many months as
// possible, so Jan 31 -> Feb 28 is one month.
func (z ZonedDateTime) GetGreedyPeriodOffset(start ZonedDateTime, units PeriodUnits) Period {
	return periodBetween(z.startIn(start), z.local, units, true)
}

func (z ZonedDateTime) startIn(start ZonedDateTime) LocalDateTime {
	if start.Zone().ID() == z.Zone().ID() {
		return start.local
	}
	return CreateZonedFromTimestamp(start.timestamp, z.Zone()).local
}

var fixedUnits = []struct {
	unit  PeriodUnits
	ticks int64
}{
	{UnitWeeks, TicksPerWeek},
	{UnitDays, TicksPerDay},
	{UnitHours, TicksPerHour},
	{UnitMinutes, TicksPerMinute},
	{UnitSeconds, TicksPerSecond},
	{UnitMilliseconds, TicksPerMillisecond},
	{UnitTicks, 1},
}

func periodBetween(a, b LocalDateTime, units PeriodUnits, greedy bool) Period {
	if units == NoUnits {
		return Period{}
	}
	sign := int64(1)
	if b.Before(a) {
		sign = -1
	}

	var p Period
	if units&YearMonth != 0 {
		k := monthsBetween(a, b, greedy)
		switch {
		case units&UnitYears != 0 && units&UnitMonths != 0:
			p.years, p.months = k/12, k%12
		case units&UnitYears != 0:
			p.years = k / 12
		default:
			p.months = k
		}
	}

	rest := (b.ticks - a.AddMonths(p.TotalMonths()).ticks) * sign
	for _, f := range fixedUnits {
		if units&f.unit == 0 {
			continue
		}
		q := rest / f.ticks
		rest -= q * f.ticks
		p = p.with(f.unit, q*sign)
	}
	return p
}

// monthsBetween returns the signed number of whole months from a to b such
// that a.AddMonths(k) does not pass b
func monthsBetween(a, b LocalDateTime, greedy bool) int {
	ay, am, _ := a.YearMonthDay()
	by, bm, _ := b.YearMonthDay()
	k := (by-ay)*12 + int(bm) - int(am)

	pa, pb := positionInMonth(a), positionInMonth(b)
	switch {
	case k > 0 && pb < pa:
		k--
	case k < 0 && pb > pa:
		k++
	}
	if !greedy {
		return k
	}

	step := 1
	if b.Before(a) {
		step = -1
	}
	for {
		next := a.AddMonths(k + step)
		if (step > 0 && next.After(b)) || (step < 0 && next.Before(b)) {
			return k
		}
		k += step
	}
}

// positionInMonth returns the ticks elapsed since the first of the month
func positionInMonth(l LocalDateTime) int64 {
	return int64(l.Day()-1)*TicksPerDay + l.TimeOfDay().ticks
}
