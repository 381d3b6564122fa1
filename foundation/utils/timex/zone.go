// File: zone.go
// Title: Time Zone Rules
// Description: Defines the TimeZoneRules capability the zoned types consume,
//              the mapping of civil values onto the time line (normal, gap,
//              overlap) and the fixed offset zones including UTC.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-17
// Modified: 2026-09-17
//
// Change History:
// - 2026-09-17 v0.2.0: Initial implementation

package timex

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeZoneRules is the read-only rule set of a time zone. Implementations
// must be safe for concurrent use.
type TimeZoneRules interface {
	// ID returns the zone identifier, e.g. "Europe/Berlin"
	ID() string

	// BaseUtcOffset returns the standard (non-daylight) offset
	BaseUtcOffset() Duration

	// OffsetAt returns the offset in effect at an instant
	OffsetAt(ts Timestamp) ZoneOffset

	// Classify maps a civil value onto the time line
	Classify(local LocalDateTime) LocalMapping

	// AdjustmentRuleFor returns the daylight rule active in year
	AdjustmentRuleFor(year int) (AdjustmentRule, bool)
}

// ZoneOffset is a UTC offset together with its daylight flag
type ZoneOffset struct {
	Offset   Duration
	Daylight bool
}

// MappingKind classifies a civil value within a zone
type MappingKind int

const (
	// MappingNormal means the civil value occurs exactly once
	MappingNormal MappingKind = iota

	// MappingGap means the civil value was skipped by a forward transition
	MappingGap

	// MappingOverlap means the civil value occurs twice
	MappingOverlap
)

// String returns the name of the kind
func (k MappingKind) String() string {
	switch k {
	case MappingNormal:
		return "normal"
	case MappingGap:
		return "gap"
	case MappingOverlap:
		return "overlap"
	default:
		return fmt.Sprintf("MappingKind(%d)", int(k))
	}
}

// LocalMapping describes how a civil value maps onto the time line. For a
// normal value Offset is the offset in effect. For gaps and overlaps
// Transition is the instant of the clock change and Before/After are the
// offsets on either side of it.
type LocalMapping struct {
	Kind       MappingKind
	Offset     ZoneOffset
	Transition Timestamp
	Before     ZoneOffset
	After      ZoneOffset
}

// Delta returns the clock change of a transition, positive for gaps
func (m LocalMapping) Delta() Duration {
	return m.After.Offset - m.Before.Offset
}

// Window returns the civil range affected by the transition: the skipped
// values of a gap or the repeated values of an overlap
func (m LocalMapping) Window() (LocalRange, bool) {
	if m.Kind == MappingNormal {
		return LocalRange{}, false
	}
	a := m.Transition.ticks + int64(m.Before.Offset)
	b := m.Transition.ticks + int64(m.After.Offset)
	if a > b {
		a, b = b, a
	}
	return LocalRange{Start: LocalDateTime{ticks: a}, End: LocalDateTime{ticks: b - 1}}, true
}

// standard returns the non-daylight side of an overlap, the later one when
// both sides agree
func (m LocalMapping) standard() ZoneOffset {
	if m.Before.Daylight && !m.After.Daylight {
		return m.After
	}
	if !m.Before.Daylight && m.After.Daylight {
		return m.Before
	}
	return m.After
}

// daylight returns the daylight side of an overlap, the earlier one when
// both sides agree
func (m LocalMapping) daylight() ZoneOffset {
	if m.Before.Daylight && !m.After.Daylight {
		return m.Before
	}
	if !m.Before.Daylight && m.After.Daylight {
		return m.After
	}
	return m.Before
}

// LocalRange is an inclusive range of civil values
type LocalRange struct {
	Start LocalDateTime
	End   LocalDateTime
}

// Contains reports whether l lies within the range
func (r LocalRange) Contains(l LocalDateTime) bool {
	return !l.Before(r.Start) && !l.After(r.End)
}

// Intersect returns the overlap of two ranges
func (r LocalRange) Intersect(other LocalRange) (LocalRange, bool) {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return LocalRange{}, false
	}
	return LocalRange{Start: start, End: end}, true
}

// String renders the range as [start, end]
func (r LocalRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// ===============================
// Fixed Offset Zones
// ===============================

// FixedZone is a zone with a constant offset and no daylight time
type FixedZone struct {
	id     string
	offset Duration
}

// UTC is the zone used whenever no zone is given
var UTC = NewFixedZone("UTC", 0)

// NewFixedZone creates a zone with a constant offset. An empty id is
// replaced by the offset notation, e.g. "UTC+05:30".
func NewFixedZone(id string, offset Duration) *FixedZone {
	if id == "" {
		id = "UTC" + FormatOffset(offset)
	}
	return &FixedZone{id: id, offset: offset}
}

// ID returns the zone identifier
func (z *FixedZone) ID() string { return z.id }

// BaseUtcOffset returns the constant offset
func (z *FixedZone) BaseUtcOffset() Duration { return z.offset }

// OffsetAt returns the constant offset
func (z *FixedZone) OffsetAt(Timestamp) ZoneOffset { return ZoneOffset{Offset: z.offset} }

// Classify always reports a normal mapping
func (z *FixedZone) Classify(LocalDateTime) LocalMapping {
	return LocalMapping{Kind: MappingNormal, Offset: ZoneOffset{Offset: z.offset}}
}

// AdjustmentRuleFor always reports no rule
func (z *FixedZone) AdjustmentRuleFor(int) (AdjustmentRule, bool) {
	return AdjustmentRule{}, false
}

// FormatOffset renders an offset as ±HH:mm
func FormatOffset(d Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	minutes := int64(d) / TicksPerMinute
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// ParseOffset parses an offset written as ±HH:mm, ±HH or ±HHmm, with an
// optional "UTC" prefix. "UTC" and "Z" alone mean zero.
func ParseOffset(value string) (Duration, error) {
	const expected = "±HH:mm"
	s := strings.TrimPrefix(strings.TrimSpace(value), "UTC")
	if s == "" || s == "Z" {
		return 0, nil
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, invalidFormat("ParseOffset", value, expected)
	}
	sign := Duration(1)
	if s[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	if len(digits) != 2 && len(digits) != 4 {
		return 0, invalidFormat("ParseOffset", value, expected)
	}
	hours, err := strconv.Atoi(digits[:2])
	if err != nil {
		return 0, invalidFormat("ParseOffset", value, expected)
	}
	minutes := 0
	if len(digits) == 4 {
		if minutes, err = strconv.Atoi(digits[2:]); err != nil || minutes > 59 {
			return 0, invalidFormat("ParseOffset", value, expected)
		}
	}
	offset := sign * (Duration(hours)*Hour + Duration(minutes)*Minute)
	if offset.Abs() > 14*Hour {
		return 0, outOfRange("ParseOffset", "offset", value, "-14:00", "+14:00")
	}
	return offset, nil
}

func zoneOrUTC(zone TimeZoneRules) TimeZoneRules {
	if zone == nil {
		return UTC
	}
	return zone
}
