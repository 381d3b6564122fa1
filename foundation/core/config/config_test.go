// File: config_test.go
// Title: Configuration Loader Tests
// Description: Tests for loading, discovery, environment overrides and
//              typed decoding.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-23
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-09-23 v0.2.0: Unmarshal and discovery tests

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
)

const sampleTOML = `
[calendar]
default_zone = "Europe/Berlin"
week_start = "monday"

[server]
port = 9090
timeout = "5s"
tls = false
hosts = ["localhost", "127.0.0.1"]

[[zones]]
id = "Test/Zone"
base_offset = "+01:00"
`

const sampleYAML = `
calendar:
  default_zone: Europe/Berlin
  week_start: monday
server:
  port: 9090
  timeout: 5s
  tls: false
  hosts: [localhost, 127.0.0.1]
zones:
  - id: Test/Zone
    base_offset: "+01:00"
`

type sampleConfig struct {
	Calendar struct {
		DefaultZone string `toml:"default_zone" yaml:"default_zone"`
		WeekStart   string `toml:"week_start" yaml:"week_start"`
	} `toml:"calendar" yaml:"calendar"`
	Server struct {
		Port  int      `toml:"port" yaml:"port"`
		TLS   bool     `toml:"tls" yaml:"tls"`
		Hosts []string `toml:"hosts" yaml:"hosts"`
	} `toml:"server" yaml:"server"`
	Zones []struct {
		ID         string `toml:"id" yaml:"id"`
		BaseOffset string `toml:"base_offset" yaml:"base_offset"`
	} `toml:"zones" yaml:"zones"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadBothFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]Format{
		writeFile(t, dir, "chronik.toml", sampleTOML): FormatTOML,
		writeFile(t, dir, "chronik.yaml", sampleYAML): FormatYAML,
	}

	for path, format := range files {
		t.Run(format.String(), func(t *testing.T) {
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Format() != format || cfg.FilePath() != path {
				t.Errorf("Format() = %v, FilePath() = %q", cfg.Format(), cfg.FilePath())
			}
			if got := cfg.GetString("calendar.default_zone"); got != "Europe/Berlin" {
				t.Errorf("GetString() = %q", got)
			}
			if got := cfg.GetInt("server.port"); got != 9090 {
				t.Errorf("GetInt() = %d", got)
			}
			if got := cfg.GetDuration("server.timeout"); got != 5*time.Second {
				t.Errorf("GetDuration() = %v", got)
			}
			if cfg.GetBool("server.tls", true) {
				t.Error("GetBool() should read the file value")
			}
			if got := cfg.GetStringSlice("server.hosts"); len(got) != 2 || got[1] != "127.0.0.1" {
				t.Errorf("GetStringSlice() = %v", got)
			}
			if got := cfg.GetString("missing.key", "fallback"); got != "fallback" {
				t.Errorf("default = %q", got)
			}

			var typed sampleConfig
			if err := cfg.Unmarshal(&typed); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if typed.Server.Port != 9090 || len(typed.Zones) != 1 || typed.Zones[0].BaseOffset != "+01:00" {
				t.Errorf("Unmarshal() = %+v", typed)
			}
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "chronik.toml", sampleTOML)
	t.Setenv("CHRONIK_SERVER_PORT", "7070")
	t.Setenv("CHRONIK_CALENDAR_WEEK_START", "sunday")

	cfg, err := LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: "chronik"})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if got := cfg.GetInt("server.port"); got != 7070 {
		t.Errorf("GetInt() = %d, want 7070", got)
	}

	var typed sampleConfig
	if err := cfg.Unmarshal(&typed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if typed.Server.Port != 7070 || typed.Calendar.WeekStart != "sunday" {
		t.Errorf("Unmarshal() ignored overrides: %+v", typed)
	}

	if got := EnvKey("chronik", "store.sqlite-path"); got != "CHRONIK_STORE_SQLITE_PATH" {
		t.Errorf("EnvKey() = %q", got)
	}
}

func TestDefaultsAndSet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "chronik.toml", sampleTOML)
	cfg, err := LoadWithOptions(path, LoadOptions{
		Defaults: map[string]interface{}{
			"server": map[string]interface{}{"host": "0.0.0.0", "port": 1},
		},
	})
	if err != nil {
		t.Fatalf("LoadWithOptions() error = %v", err)
	}
	if cfg.GetString("server.host") != "0.0.0.0" || cfg.GetInt("server.port") != 9090 {
		t.Errorf("defaults merged wrongly: host=%q port=%d", cfg.GetString("server.host"), cfg.GetInt("server.port"))
	}

	cfg.Set("store.path", "/tmp/zones.db")
	if !cfg.Has("store.path") || cfg.GetString("store.path") != "/tmp/zones.db" {
		t.Error("Set() value not readable")
	}
	found := false
	for _, k := range cfg.Keys() {
		if k == "store.path" {
			found = true
		}
	}
	if !found {
		t.Errorf("Keys() = %v", cfg.Keys())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); !mdwerror.HasCode(err, mdwerror.CodeValidationFailed) {
		t.Errorf("empty path error = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	bad := writeFile(t, t.TempDir(), "bad.toml", "[calendar\nzone = ")
	if _, err := Load(bad); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf("parse error = %v", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	options := DiscoveryOptions{
		Paths:      []string{filepath.Join(dir, "first"), dir},
		Filenames:  []string{"chronik"},
		Extensions: []string{".toml", ".yaml"},
	}

	cfg, err := Discover(options)
	if err != nil {
		t.Fatalf("optional Discover() error = %v", err)
	}
	if len(cfg.Keys()) != 0 {
		t.Errorf("empty config has keys %v", cfg.Keys())
	}

	options.Required = true
	if _, err := Discover(options); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("required Discover() error = %v", err)
	}

	writeFile(t, dir, "chronik.yaml", sampleYAML)
	cfg, err = Discover(options)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Format() != FormatYAML || cfg.GetString("calendar.week_start") != "monday" {
		t.Errorf("Discover() loaded %q", cfg.FilePath())
	}
	if got := len(ListPossibleConfigFiles(options)); got != 4 {
		t.Errorf("ListPossibleConfigFiles() has %d entries", got)
	}
}

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(sampleYAML, FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if got := cfg.GetString("calendar.default_zone"); got != "Europe/Berlin" {
		t.Errorf("GetString() = %q", got)
	}

	cfg, err = LoadFromString(sampleTOML, FormatAuto)
	if err != nil || cfg.Format() != FormatTOML {
		t.Fatalf("LoadFromString(auto) = %v, %v", cfg, err)
	}
	if _, err := LoadFromString("calendar: [", FormatYAML); err == nil {
		t.Error("LoadFromString() accepted broken YAML")
	}
}
