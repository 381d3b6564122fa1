// File: calendar.go
// Title: Proleptic Gregorian Calendar Math
// Description: Day numbering helpers converting between civil dates and days
//              since 0001-01-01. Day 0 is Monday, 0001-01-01.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-15
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-15 v0.2.0: Initial implementation

package timex

import "time"

const (
	// MinYear and MaxYear bound every calendar value of the package
	MinYear = 1
	MaxYear = 9999

	// days between 0001-01-01 and 1970-01-01
	unixEpochDays = 719_162

	// days between 0001-01-01 and 10000-01-01
	daysToYear10000 = 3_652_059

	maxTicks = daysToYear10000*TicksPerDay - 1
)

// IsLeapYear reports whether year has 366 days
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days of month in year
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// daysFromCivil returns the day number of a date. The algorithm counts years
// from March so the leap day is the last day of its year.
func daysFromCivil(year int, month time.Month, day int) int64 {
	y := int64(year)
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 {
		era = (y - 399) / 400
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146_097 + doe - 719_468 + unixEpochDays
}

// civilFromDays is the inverse of daysFromCivil
func civilFromDays(days int64) (year int, month time.Month, day int) {
	z := days - unixEpochDays + 719_468
	era := z / 146_097
	if z < 0 {
		era = (z - 146_096) / 146_097
	}
	doe := z - era*146_097
	yoe := (doe - doe/1_460 + doe/36_524 - doe/146_096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), time.Month(m), int(d)
}

// weekdayOfDays returns the weekday of a day number
func weekdayOfDays(days int64) time.Weekday {
	return time.Weekday((days%7 + 8) % 7)
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
