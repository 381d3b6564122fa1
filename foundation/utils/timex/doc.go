// Package timex implements timezone-aware calendar arithmetic for chronik.
//
// Package: timex
// Title: Calendar Arithmetic Engine
// Description: Exact durations, calendar periods, civil date-times, zoned
//              date-times and DST-safe day and week intervals on top of
//              pluggable time zone rules.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-26
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with time.Time helpers
// - 2026-09-15 v0.2.0: Rewritten as the calendar engine
//
// Package Overview:
//
// All values are immutable and measured in ticks of 100 nanoseconds on a
// proleptic Gregorian calendar covering the years 1 to 9999.
//
// # Exact and Calendar Quantities
//
//   - Duration: elapsed time, one day is always 24 hours
//   - Period: calendar quantity (years .. ticks); one day may last 23 or 25
//     hours depending on where the period is applied
//   - TimeOfDay, LocalDateTime: civil values without a zone
//   - Timestamp: instant on the UTC time line
//
// # Zones
//
// The zoned types consume time zone data through the TimeZoneRules
// interface. The package provides UTC and fixed offsets (FixedZone),
// zones defined by adjustment rules (RuleZone) and an adapter over the host
// time zone database (LocationZone).
//
// # Zoned Values
//
// ZonedDateTime pairs an instant with its civil reading. Civil values that a
// forward transition skipped are invalid:
//
//	zone, _ := timex.LoadLocationZone("Europe/Berlin")
//	_, err := timex.CreateZoned(timex.MustLocalDateTime(2021, time.March, 28, 2, 30, 0, 0), zone)
//	timex.IsInvalidZonedDateTime(err) // true
//
// Civil values repeated by a backward transition resolve to the standard
// offset. Calendar arithmetic (AddPeriod, AddDays, ...) keeps the daylight
// side of its source instead:
//
//	z, _ := timex.CreateZoned(timex.MustLocalDateTime(2021, time.October, 31, 1, 30, 0, 0), zone)
//	later, _ := z.AddPeriod(timex.FromHours(1)) // 02:30 +02:00, the daylight reading
//
// Exact arithmetic (Add, AddHours, ...) moves along the time line and never
// fails.
//
// # Days and Weeks
//
// ZonedDay and ZonedWeek resolve a civil day or week into its first and last
// instant. A spring-forward day lasts 23 hours and a fall-back day 25:
//
//	day, _ := timex.NewZonedDay(2021, time.March, 28, zone)
//	day.Duration() // 23h
//	day.GetIntersectingInvalidityRange() // [02:00, 02:59:59.9999999]
//
// Week numbering places week 1 around January 4th for any first day of the
// week; with time.Monday it matches ISO 8601.
//
// # Errors
//
// Errors are *error.Error values of the foundation error module carrying
// the codes TIMEX_INVALID_ZONED_DATE_TIME, TIMEX_VALUE_OUT_OF_RANGE and
// TIMEX_INVALID_FORMAT. Use IsInvalidZonedDateTime, IsOutOfRange and
// IsInvalidFormat to classify them. Ambiguity is never an error.
package timex
