// File: doc.go
// Title: Configuration Package Documentation
// Description: Package documentation for the configuration loader.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-23
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-09-23 v0.2.0: Reduced to loading, discovery and typed decoding

/*
Package config loads TOML and YAML configuration files.

Values are addressed by dot paths ("server.port"). When an environment
prefix is set, a variable named after the path overrides the file value:
with prefix CHRONIK the key "calendar.default_zone" is overridden by
CHRONIK_CALENDAR_DEFAULT_ZONE.

	cfg, err := config.Discover(config.DefaultDiscoveryOptions())
	if err != nil {
		return err
	}
	zone := cfg.GetString("calendar.default_zone", "UTC")

	var app AppConfig
	if err := cfg.Unmarshal(&app); err != nil {
		return err
	}

Unmarshal honors toml struct tags for TOML files and yaml tags for YAML
files. A Config is safe for concurrent use.
*/
package config
