// File: clock.go
// Title: Clocks
// Description: Clock abstraction used to obtain the current instant, with
//              the system clock and a fixed clock for tests and replays.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-21
// Modified: 2026-09-21
//
// Change History:
// - 2026-09-21 v0.2.0: Initial implementation

package timex

import "time"

// Clock provides the current instant
type Clock interface {
	Now() Timestamp
}

// SystemClock reads the host clock
type SystemClock struct{}

// Now returns the current instant
func (SystemClock) Now() Timestamp {
	ts, _ := TimestampFromTime(time.Now())
	return ts
}

// FixedClock always returns the same instant
type FixedClock struct {
	Instant Timestamp
}

// Now returns the fixed instant
func (c FixedClock) Now() Timestamp { return c.Instant }

// NowZoned returns the current instant of clock observed in zone
func NowZoned(clock Clock, zone TimeZoneRules) ZonedDateTime {
	if clock == nil {
		clock = SystemClock{}
	}
	return CreateZonedFromTimestamp(clock.Now(), zone)
}
