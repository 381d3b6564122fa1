// File: standards.go
// Title: Error Standards for chronik Modules
// Description: Provides module-scoped error constructors so every foundation
//              and application package reports failures with the same details
//              layout (module, operation, field, value).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-09-14 v0.2.0: chronik modules, calendar specific constructors

// Package errors provides module-scoped constructors on top of core/error.
package errors

import (
	"fmt"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleTimex    = "timex"
	ModuleConfig   = "config"
	ModuleZones    = "zones"
	ModuleCalendar = "calendar"
)

// StandardError creates an error with module and operation details
func StandardError(module, operation string, code mdwerror.Code, message string) *mdwerror.Error {
	return mdwerror.New(message).
		WithCode(code).
		WithOperation(module + "." + operation).
		WithDetails(map[string]interface{}{
			"module":    module,
			"operation": operation,
		})
}

// ModuleError wraps a cause with module and operation details. The code of
// a coded cause is kept unless code is non-empty.
func ModuleError(module, operation string, code mdwerror.Code, cause error) *mdwerror.Error {
	if cause == nil {
		return nil
	}
	err := mdwerror.Wrap(cause, fmt.Sprintf("%s.%s failed", module, operation)).
		WithOperation(module + "." + operation).
		WithDetails(map[string]interface{}{
			"module":    module,
			"operation": operation,
		})
	if code != "" {
		err = err.WithCode(code)
	}
	return err
}

// IsModuleError checks whether err was raised by the given module
func IsModuleError(err error, module string) bool {
	return ExtractModule(err) == module
}

// ExtractModule returns the module detail of err, or ""
func ExtractModule(err error) string {
	if e, ok := mdwerror.As(err); ok {
		if v, ok := e.Detail("module"); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// ExtractOperation returns the operation detail of err, or ""
func ExtractOperation(err error) string {
	if e, ok := mdwerror.As(err); ok {
		if v, ok := e.Detail("operation"); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}
