// File: utils.go
// Title: Shared Error Constructors
// Description: Common failure shapes (range violation, malformed input, missing
//              entity) with consistent codes and details.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-09-14 v0.2.0: Range and format errors for calendar fields

package errors

import (
	"fmt"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
)

// OutOfRange creates a range violation for a field. Timex fields use the
// calendar specific code so callers can tell them apart from other
// validation failures.
func OutOfRange(module, operation, field string, value, min, max interface{}) *mdwerror.Error {
	code := mdwerror.CodeValueOutOfRange
	if module == ModuleTimex {
		code = mdwerror.CodeTimexOutOfRange
	}
	return StandardError(module, operation, code,
		fmt.Sprintf("%s %v out of range [%v, %v]", field, value, min, max)).
		WithDetails(map[string]interface{}{
			"field": field,
			"value": value,
			"min":   min,
			"max":   max,
		})
}

// InvalidFormat creates an error for input that does not match the expected format
func InvalidFormat(module, operation string, input interface{}, expectedFormat string) *mdwerror.Error {
	code := mdwerror.CodeInvalidFormat
	if module == ModuleTimex {
		code = mdwerror.CodeTimexInvalidFormat
	}
	return StandardError(module, operation, code,
		fmt.Sprintf("invalid format %q, expected %s", fmt.Sprint(input), expectedFormat)).
		WithDetails(map[string]interface{}{
			"input":           input,
			"expected_format": expectedFormat,
		})
}

// NotFound creates an error for a missing entity
func NotFound(module, operation string, identifier interface{}) *mdwerror.Error {
	return StandardError(module, operation, mdwerror.CodeNotFound,
		fmt.Sprintf("%v not found", identifier)).
		WithDetail("identifier", identifier)
}

// InvalidInput creates an error for input rejected by validation
func InvalidInput(module, operation, reason string) *mdwerror.Error {
	return StandardError(module, operation, mdwerror.CodeInvalidInput, reason)
}
