package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()
			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}
			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var v struct {
		Timeout Duration `yaml:"timeout"`
	}
	if err := yaml.Unmarshal([]byte("timeout: 45s\n"), &v); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if v.Timeout.Duration != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", v.Timeout.Duration)
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"log level", cfg.General.LogLevel, "info"},
		{"log format", cfg.General.LogFormat, "console"},
		{"default zone", cfg.Calendar.DefaultZone, "UTC"},
		{"week start", cfg.Calendar.WeekStart, "monday"},
		{"server host", cfg.Server.Host, "127.0.0.1"},
		{"server port", cfg.Server.Port, 9310},
		{"shutdown timeout", cfg.Server.ShutdownTimeout.Duration, 10 * time.Second},
		{"client target", cfg.Client.Target, "127.0.0.1:9310"},
		{"client timeout", cfg.Client.Timeout.Duration, 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.Store.Path == "" {
		t.Error("Store.Path should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_ServerAddress(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: 9400}}
	if got := cfg.ServerAddress(); got != "0.0.0.0:9400" {
		t.Errorf("ServerAddress() = %v, want 0.0.0.0:9400", got)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{"Sunday", time.Sunday, false},
		{"sat", time.Saturday, false},
		{" TUE ", time.Tuesday, false},
		{"someday", time.Sunday, true},
		{"", time.Sunday, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/chronik.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

const tomlConfig = `
[general]
log_level = "debug"

[calendar]
default_zone = "Test/Scenario"
week_start = "sunday"

[server]
port = 9999
shutdown_timeout = "3s"

[[zones]]
id = "Test/Scenario"
base_offset = "+01:00"

[[zones.rules]]
from_year = 2000
to_year = 2100
delta = "1h"
start = "last Sunday of March 02:00"
end = "08-26 02:00"
`

const yamlConfig = `
general:
  log_level: debug
calendar:
  default_zone: Test/Scenario
  week_start: sunday
server:
  port: 9999
  shutdown_timeout: 3s
zones:
  - id: Test/Scenario
    base_offset: "+01:00"
    rules:
      - from_year: 2000
        to_year: 2100
        delta: 1h
        start: last Sunday of March 02:00
        end: 08-26 02:00
`

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "chronik.toml", tomlConfig},
		{"yaml", "chronik.yaml", yamlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if cfg.Source() != configPath {
				t.Errorf("Source() = %v, want %v", cfg.Source(), configPath)
			}
			if cfg.General.LogLevel != "debug" {
				t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
			}
			if cfg.WeekStart() != time.Sunday {
				t.Errorf("WeekStart() = %v, want Sunday", cfg.WeekStart())
			}
			if cfg.Server.Port != 9999 {
				t.Errorf("Server.Port = %v, want 9999", cfg.Server.Port)
			}
			if cfg.Server.ShutdownTimeout.Duration != 3*time.Second {
				t.Errorf("Server.ShutdownTimeout = %v, want 3s", cfg.Server.ShutdownTimeout.Duration)
			}
			if len(cfg.Zones) != 1 || len(cfg.Zones[0].Rules) != 1 {
				t.Fatalf("Zones = %+v, want one zone with one rule", cfg.Zones)
			}
			rule := cfg.Zones[0].Rules[0]
			if rule.End != "08-26 02:00" || rule.FromYear != 2000 {
				t.Errorf("rule = %+v", rule)
			}

			// Defaults for missing values
			if cfg.Server.Host != "127.0.0.1" {
				t.Errorf("Server.Host = %v, want 127.0.0.1 (default)", cfg.Server.Host)
			}
			if cfg.Client.Target != "127.0.0.1:9999" {
				t.Errorf("Client.Target = %v, want 127.0.0.1:9999", cfg.Client.Target)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "chronik.toml")
	if err := os.WriteFile(configPath, []byte(tomlConfig), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("CHRONIK_SERVER_PORT", "9555")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9555 {
		t.Errorf("Server.Port = %v, want 9555 from environment", cfg.Server.Port)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.General.LogLevel = "loud" }, "invalid level"},
		{"bad week start", func(c *Config) { c.Calendar.WeekStart = "someday" }, "week_start"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing zone id", func(c *Config) {
			c.Zones = []ZoneConfig{{BaseOffset: "+01:00"}}
		}, "id is required"},
		{"duplicate zone", func(c *Config) {
			c.Zones = []ZoneConfig{{ID: "A", BaseOffset: "+01:00"}, {ID: "A", BaseOffset: "+02:00"}}
		}, "duplicate id"},
		{"bad offset", func(c *Config) {
			c.Zones = []ZoneConfig{{ID: "A", BaseOffset: "one hour"}}
		}, "base_offset"},
		{"bad transition", func(c *Config) {
			c.Zones = []ZoneConfig{{ID: "A", BaseOffset: "+01:00", Rules: []RuleConfig{
				{FromYear: 2000, ToYear: 2001, Delta: "1h", Start: "sometime", End: "08-26 02:00"},
			}}}
		}, "rules[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("CHRONIK_TEST_DATA", "/srv/chronik")

	cfg := &Config{Store: StoreConfig{Path: "$CHRONIK_TEST_DATA/zones.db"}}
	cfg.expandEnvVars()

	if cfg.Store.Path != "/srv/chronik/zones.db" {
		t.Errorf("Store.Path = %v, want /srv/chronik/zones.db", cfg.Store.Path)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("CHRONIK_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Source() != "" {
		t.Errorf("Source() = %v, want empty", cfg.Source())
	}
	if cfg.Server.Port != 9310 {
		t.Errorf("Server.Port = %v, want default 9310", cfg.Server.Port)
	}
}

func TestLoadFromEnv_ExplicitPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "chronik.yaml")
	if err := os.WriteFile(configPath, []byte(yamlConfig), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("CHRONIK_CONFIG", configPath)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Calendar.DefaultZone != "Test/Scenario" {
		t.Errorf("Calendar.DefaultZone = %v", cfg.Calendar.DefaultZone)
	}
}
