// File: interval.go
// Title: Zoned Intervals
// Description: Resolves a nominal civil interval [start, end] into real
//              instants of a zone. Shared by ZonedDay and ZonedWeek.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-20
// Modified: 2026-09-20
//
// Change History:
// - 2026-09-20 v0.2.0: Initial implementation

package timex

// interval is a resolved civil interval. duration counts the end tick.
// The corrections record how far resolution moved each bound: negative for
// time skipped by a gap, positive for a repeated window taken in.
type interval struct {
	start           ZonedDateTime
	end             ZonedDateTime
	duration        Duration
	startCorrection Duration
	endCorrection   Duration
}

// resolveInterval resolves the inclusive civil range [first, last]. A start
// inside a gap moves to the first instant after it and an ambiguous start
// takes the earlier instant; an end inside a gap moves to the last instant
// before it and an ambiguous end takes the later instant.
func resolveInterval(op string, first, last LocalDateTime, zone TimeZoneRules) (interval, error) {
	zone = zoneOrUTC(zone)
	if !first.IsValid() || !last.IsValid() {
		return interval{}, outOfRange(op, "date", first.String(), MinLocalDateTime.String(), MaxLocalDateTime.String())
	}

	var iv interval
	var startTS, endTS Timestamp

	m := zone.Classify(first)
	switch m.Kind {
	case MappingGap:
		startTS = m.Transition
		iv.startCorrection = -Duration(startTS.ticks + int64(m.After.Offset) - first.ticks)
	case MappingOverlap:
		hi, lo := m.Before, m.After
		if lo.Offset > hi.Offset {
			hi, lo = lo, hi
		}
		startTS = Timestamp{ticks: first.ticks - int64(hi.Offset)}
		iv.startCorrection = hi.Offset - lo.Offset
	default:
		startTS = Timestamp{ticks: first.ticks - int64(m.Offset.Offset)}
	}

	m = zone.Classify(last)
	switch m.Kind {
	case MappingGap:
		endTS = m.Transition.Add(-Tick)
		iv.endCorrection = -Duration(last.ticks - (endTS.ticks + int64(m.Before.Offset)))
	case MappingOverlap:
		hi, lo := m.Before, m.After
		if lo.Offset > hi.Offset {
			hi, lo = lo, hi
		}
		endTS = Timestamp{ticks: last.ticks - int64(lo.Offset)}
		iv.endCorrection = hi.Offset - lo.Offset
	default:
		endTS = Timestamp{ticks: last.ticks - int64(m.Offset.Offset)}
	}

	if !startTS.IsValid() || !endTS.IsValid() {
		return interval{}, outOfRange(op, "date", first.String(), MinLocalDateTime.String(), MaxLocalDateTime.String())
	}
	if endTS.Before(startTS) {
		// the whole range was skipped by a transition
		return interval{}, invalidZonedDateTime(op, first, zone)
	}

	iv.start = CreateZonedFromTimestamp(startTS, zone)
	iv.end = CreateZonedFromTimestamp(endTS, zone)
	iv.duration = endTS.Sub(startTS) + Tick
	return iv, nil
}

func (iv interval) contains(z ZonedDateTime) bool {
	return !z.timestamp.Before(iv.start.timestamp) && !z.timestamp.After(iv.end.timestamp)
}

func (iv interval) offsetLabel() string {
	s, e := iv.start.UtcOffset(), iv.end.UtcOffset()
	if s == e {
		return FormatOffset(s)
	}
	return FormatOffset(s) + "/" + FormatOffset(e)
}
