// File: discovery.go
// Title: Configuration File Discovery
// Description: Finds a configuration file across search paths and base
//              names and loads it with environment overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-23
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2026-09-23 v0.2.0: Optional discovery falls back to an empty config

package config

import (
	"os"
	"path/filepath"
	"strings"

	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
)

// DiscoveryOptions defines where Discover looks for a configuration file
type DiscoveryOptions struct {
	Paths      []string
	Filenames  []string
	Extensions []string
	EnvPrefix  string
	Required   bool
}

// DefaultDiscoveryOptions searches the working directory and the user
// config directory for chronik.toml, chronik.yaml and config.toml
func DefaultDiscoveryOptions() DiscoveryOptions {
	paths := []string{".", "./configs"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "chronik"))
	}
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{"chronik", "config"},
		Extensions: []string{".toml", ".yaml", ".yml"},
		EnvPrefix:  "CHRONIK",
	}
}

// Discover loads the first configuration file found. Without a file it
// returns an empty configuration unless the file is required.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		return Empty(options.EnvPrefix), nil
	}
	return LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: options.EnvPrefix})
}

// FindConfigFile searches for a configuration file without loading it
func FindConfigFile(options DiscoveryOptions) (string, error) {
	candidates := ListPossibleConfigFiles(options)
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", mdwerrors.NotFound(mdwerrors.ModuleConfig, "FindConfigFile", "configuration file").
		WithDetail("searchPaths", strings.Join(candidates, ", "))
}

// ListPossibleConfigFiles returns every path Discover would try, in order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, path := range options.Paths {
		for _, filename := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(path, filename+ext))
			}
		}
	}
	return paths
}
