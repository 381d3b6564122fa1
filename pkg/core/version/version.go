// ============================================================================
// chronik - Zeitzonenbewusste Kalenderarithmetik
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and the gRPC service
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Application version
	Application = "0.3.0"

	// API is the version of the chronik.v1.Calendar gRPC service
	API = "v1"

	// Store is the schema version of the zone store
	Store = 1
)

// Set at build time with -ldflags "-X ...version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "api":
		return API
	case "store":
		return fmt.Sprintf("%d", Store)
	default:
		return Application
	}
}

// String returns the full version line printed by "chronik version"
func String() string {
	return fmt.Sprintf("chronik %s (api %s, store schema %d, commit %s, built %s, %s)",
		Application, API, Store, Commit, BuildDate, runtime.Version())
}
