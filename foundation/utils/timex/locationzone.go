// File: locationzone.go
// Title: Host Time Zone Database Adapter
// Description: Implements LocationZone, a TimeZoneRules adapter over a
//              *time.Location. Gaps and overlaps are derived from the
//              transitions reported by time.Time.ZoneBounds.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-09-18 v0.2.0: Initial implementation
// - 2026-10-18 v0.2.1: Reference year for the base offset, StandardOffset

package timex

import (
	"time"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
)

// maxTransitionsPerYear bounds the transition scan of AdjustmentRuleFor
const maxTransitionsPerYear = 16

// LocationZone exposes a *time.Location as TimeZoneRules
type LocationZone struct {
	loc  *time.Location
	base Duration
}

// NewLocationZone wraps loc. BaseUtcOffset is the standard offset of the
// year the process is running in; use NewLocationZoneAt for a fixed
// reference year and StandardOffset for the offset of a given year.
func NewLocationZone(loc *time.Location) *LocationZone {
	if loc == nil {
		loc = time.UTC
	}
	return NewLocationZoneAt(loc, time.Now().In(loc).Year())
}

// NewLocationZoneAt wraps loc with the standard offset of year as base offset
func NewLocationZoneAt(loc *time.Location, year int) *LocationZone {
	if loc == nil {
		loc = time.UTC
	}
	return &LocationZone{loc: loc, base: standardOffset(loc, year)}
}

// standardOffset picks the non-daylight offset of January or July
func standardOffset(loc *time.Location, year int) Duration {
	jan := time.Date(year, time.January, 1, 12, 0, 0, 0, loc)
	jul := time.Date(year, time.July, 1, 12, 0, 0, 0, loc)

	std := jan
	if jan.IsDST() && !jul.IsDST() {
		std = jul
	}
	_, off := std.Zone()
	return Duration(off) * Second
}

// LoadLocationZone loads name from the host time zone database
func LoadLocationZone(name string) (*LocationZone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleTimex, "LoadLocationZone", mdwerror.CodeUnknownTimeZone, err).
			WithDetail("zone", name)
	}
	return NewLocationZone(loc), nil
}

// Location returns the wrapped location
func (z *LocationZone) Location() *time.Location { return z.loc }

// ID returns the location name
func (z *LocationZone) ID() string { return z.loc.String() }

// BaseUtcOffset returns the standard offset of the reference year
func (z *LocationZone) BaseUtcOffset() Duration { return z.base }

// StandardOffset returns the standard offset in effect in year
func (z *LocationZone) StandardOffset(year int) Duration { return standardOffset(z.loc, year) }

// OffsetAt returns the offset in effect at ts
func (z *LocationZone) OffsetAt(ts Timestamp) ZoneOffset {
	t := ts.Time().In(z.loc)
	_, off := t.Zone()
	return ZoneOffset{Offset: Duration(off) * Second, Daylight: t.IsDST()}
}

// Classify maps local onto the time line. The offsets one day before and
// after local are the only candidates, so transitions closer together than
// that are not detected.
func (z *LocationZone) Classify(local LocalDateTime) LocalMapping {
	at := Timestamp{ticks: local.ticks}
	early := z.OffsetAt(at.Add(-Day))
	late := z.OffsetAt(at.Add(Day))

	valid := consistentOffsets(z, local, []ZoneOffset{early, late})
	switch {
	case len(valid) == 1:
		return LocalMapping{Kind: MappingNormal, Offset: valid[0]}

	case len(valid) == 2:
		before, after := valid[0], valid[1]
		if after.Offset > before.Offset {
			before, after = after, before
		}
		first := Timestamp{ticks: local.ticks - int64(before.Offset)}
		_, end := first.Time().In(z.loc).ZoneBounds()
		return LocalMapping{
			Kind:       MappingOverlap,
			Transition: z.timestampOr(end, first.Add(before.Offset-after.Offset)),
			Before:     before,
			After:      after,
		}

	case early.Offset == late.Offset:
		return LocalMapping{Kind: MappingNormal, Offset: early}

	default:
		beyond := Timestamp{ticks: local.ticks - int64(early.Offset)}
		start, _ := beyond.Time().In(z.loc).ZoneBounds()
		return LocalMapping{
			Kind:       MappingGap,
			Transition: z.timestampOr(start, beyond),
			Before:     early,
			After:      late,
		}
	}
}

func (z *LocationZone) timestampOr(t time.Time, fallback Timestamp) Timestamp {
	if t.IsZero() {
		return fallback
	}
	ts, err := TimestampFromTime(t)
	if err != nil {
		return fallback
	}
	return ts
}

// AdjustmentRuleFor synthesizes a single-year rule from the transitions of
// year. Years without both a daylight start and end report no rule.
func (z *LocationZone) AdjustmentRuleFor(year int) (AdjustmentRule, bool) {
	if year < MinYear || year > MaxYear {
		return AdjustmentRule{}, false
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-24 * time.Hour)
	until := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)

	var rule AdjustmentRule
	var haveStart, haveEnd bool
	cur := from.In(z.loc)
	for i := 0; i < maxTransitionsPerYear; i++ {
		_, next := cur.ZoneBounds()
		if next.IsZero() || !next.Before(until) {
			break
		}
		after := next.In(z.loc)
		_, offBefore := cur.Zone()
		_, offAfter := after.Zone()
		beforeOff := Duration(offBefore) * Second
		afterOff := Duration(offAfter) * Second

		ts, err := TimestampFromTime(next)
		if err != nil {
			break
		}
		switch {
		case !cur.IsDST() && after.IsDST() && !haveStart:
			local := LocalDateTime{ticks: ts.ticks + int64(beforeOff)}
			if local.Year() == year {
				rule.Start = FixedTransition(local.Month(), local.Day(), local.TimeOfDay())
				rule.DaylightDelta = afterOff - beforeOff
				haveStart = true
			}
		case cur.IsDST() && !after.IsDST() && !haveEnd:
			local := LocalDateTime{ticks: ts.ticks + int64(beforeOff)}
			if local.Year() == year {
				rule.End = FixedTransition(local.Month(), local.Day(), local.TimeOfDay())
				haveEnd = true
			}
		}
		cur = after
	}

	if !haveStart || !haveEnd || rule.DaylightDelta == 0 {
		return AdjustmentRule{}, false
	}
	rule.FromYear, rule.ToYear = year, year
	return rule, true
}
