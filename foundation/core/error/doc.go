// Package error provides structured error handling for chronik.
//
// Package: error
// Title: chronik Error Handling
// Description: Errors carry a code, a severity, key-value details and a stack
//              trace. Codes classify calendar failures (invalid zoned date-time,
//              range violations, malformed input) so callers can tell them apart
//              without string matching.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-09-14 v0.2.0: Calendar codes, errors.As based helpers
//
// Usage:
//
//	err := error.New("local time does not exist").
//		WithCode(error.CodeInvalidZonedDateTime).
//		WithDetail("local", "2021-08-26 02:30:00.0000000").
//		WithDetail("zone", "Custom/Test")
//
//	if error.HasCode(err, error.CodeInvalidZonedDateTime) {
//		// fall back to a Try* variant
//	}
package error
