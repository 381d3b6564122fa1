// File: errors.go
// Title: Calendar Errors
// Description: Error constructors and classification helpers of the timex
//              package, built on the foundation error module.
// Author: msto63
// Version: v0.2.0
// Created: 2026-09-15
// Modified: 2026-09-15
//
// Change History:
// - 2026-09-15 v0.2.0: Initial implementation

package timex

import (
	"fmt"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
)

// IsInvalidZonedDateTime reports whether err was caused by a local date-time
// that falls into a gap of its zone
func IsInvalidZonedDateTime(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeInvalidZonedDateTime)
}

// IsOutOfRange reports whether err was caused by a value outside its range
func IsOutOfRange(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeTimexOutOfRange)
}

// IsInvalidFormat reports whether err was caused by unparseable input
func IsInvalidFormat(err error) bool {
	return mdwerror.HasCode(err, mdwerror.CodeTimexInvalidFormat)
}

func invalidZonedDateTime(op string, local LocalDateTime, zone TimeZoneRules) error {
	msg := fmt.Sprintf("local date-time %s is invalid in time zone %s", local, zone.ID())
	return mdwerrors.StandardError(mdwerrors.ModuleTimex, op, mdwerror.CodeInvalidZonedDateTime, msg).
		WithDetail("local", local.String()).
		WithDetail("zone", zone.ID())
}

func outOfRange(op, field string, value, min, max interface{}) error {
	return mdwerrors.OutOfRange(mdwerrors.ModuleTimex, op, field, value, min, max)
}

func checkRange(op, field string, value, min, max int) error {
	if value < min || value > max {
		return outOfRange(op, field, value, min, max)
	}
	return nil
}

func invalidFormat(op string, input interface{}, expected string) error {
	return mdwerrors.InvalidFormat(mdwerrors.ModuleTimex, op, input, expected)
}

func invalidInput(op, reason string) error {
	return mdwerrors.InvalidInput(mdwerrors.ModuleTimex, op, reason)
}
