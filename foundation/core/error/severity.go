// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              to log levels when it records an *Error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-09-14 v0.2.0: Severity mapping for calendar codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a caller mistake such as invalid input
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed operation with a workaround
	SeverityMedium

	// SeverityHigh indicates a failure of a required component
	SeverityHigh

	// SeverityCritical indicates an unusable system
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the severity level for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeDatabaseError, CodeServiceUnavailable, CodeConfigError, CodeInvalidConfig, CodeMissingConfig:
		return SeverityHigh

	case CodeNetworkError, CodeTimeout:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeInvalidFormat,
		CodeValueOutOfRange, CodeDuplicateEntry,
		CodeInvalidZonedDateTime, CodeTimexOutOfRange, CodeTimexInvalidFormat, CodeUnknownTimeZone:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
