// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across chronik. Codes classify
//              failures for callers, log output and the gRPC status mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-09-14 v0.2.0: Calendar and zone codes, dropped platform service codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Storage
	CodeDatabaseError  Code = "DATABASE_ERROR"
	CodeDuplicateEntry Code = "DUPLICATE_ENTRY"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError       Code = "NETWORK_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"

	// Calendar
	CodeInvalidZonedDateTime Code = "TIMEX_INVALID_ZONED_DATE_TIME"
	CodeTimexOutOfRange      Code = "TIMEX_VALUE_OUT_OF_RANGE"
	CodeTimexInvalidFormat   Code = "TIMEX_INVALID_FORMAT"
	CodeUnknownTimeZone      Code = "TIMEX_UNKNOWN_TIME_ZONE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeDatabaseError, CodeDuplicateEntry,
		CodeServiceUnavailable, CodeNetworkError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange,
		CodeInvalidZonedDateTime, CodeTimexOutOfRange, CodeTimexInvalidFormat, CodeUnknownTimeZone:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDatabaseError, CodeDuplicateEntry:
		return "database"
	case CodeServiceUnavailable, CodeNetworkError:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange:
		return "validation"
	case CodeInvalidZonedDateTime, CodeTimexOutOfRange, CodeTimexInvalidFormat, CodeUnknownTimeZone:
		return "calendar"
	default:
		return "generic"
	}
}

// IsClientError reports whether the code describes a caller mistake rather
// than a fault of the system
func (c Code) IsClientError() bool {
	switch c {
	case CodeNotFound, CodeInvalidInput, CodeValidationFailed, CodeInvalidFormat,
		CodeValueOutOfRange, CodeDuplicateEntry,
		CodeInvalidZonedDateTime, CodeTimexOutOfRange, CodeTimexInvalidFormat, CodeUnknownTimeZone:
		return true
	default:
		return false
	}
}
