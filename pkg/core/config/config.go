// ============================================================================
// chronik - Zeitzonenbewusste Kalenderarithmetik
// ============================================================================
//
// Package:     config
// Description: Typed application configuration loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	mdwconfig "github.com/msto63/chronik/foundation/core/config"
	mdwlog "github.com/msto63/chronik/foundation/core/log"
	"github.com/msto63/chronik/foundation/utils/timex"
)

// EnvPrefix prefixes environment overrides, e.g. CHRONIK_SERVER_PORT
const EnvPrefix = "CHRONIK"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Calendar CalendarConfig `toml:"calendar" yaml:"calendar"`
	Store    StoreConfig    `toml:"store" yaml:"store"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Client   ClientConfig   `toml:"client" yaml:"client"`
	Zones    []ZoneConfig   `toml:"zones" yaml:"zones"`

	source string
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// CalendarConfig holds calendar defaults
type CalendarConfig struct {
	DefaultZone string `toml:"default_zone" yaml:"default_zone"`
	WeekStart   string `toml:"week_start" yaml:"week_start"`
}

// StoreConfig holds the zone store settings
type StoreConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// ServerConfig holds gRPC server settings
type ServerConfig struct {
	Host             string   `toml:"host" yaml:"host"`
	Port             int      `toml:"port" yaml:"port"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	ShutdownTimeout  Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ClientConfig holds settings for "chronik remote"
type ClientConfig struct {
	Target  string   `toml:"target" yaml:"target"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// ZoneConfig defines a custom rule zone. Offsets are written ±HH:mm,
// transitions as "MM-DD HH:mm" or "last Sunday of March HH:mm".
type ZoneConfig struct {
	ID         string       `toml:"id" yaml:"id" json:"id"`
	BaseOffset string       `toml:"base_offset" yaml:"base_offset" json:"base_offset"`
	Rules      []RuleConfig `toml:"rules" yaml:"rules" json:"rules"`
}

// RuleConfig defines one adjustment rule of a custom zone
type RuleConfig struct {
	FromYear int    `toml:"from_year" yaml:"from_year" json:"from_year"`
	ToYear   int    `toml:"to_year" yaml:"to_year" json:"to_year"`
	Delta    string `toml:"delta" yaml:"delta" json:"delta"`
	Start    string `toml:"start" yaml:"start" json:"start"`
	End      string `toml:"end" yaml:"end" json:"end"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// DefaultConfig returns the configuration used without a config file
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. CHRONIK_* environment
// variables override values present in the file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	raw, err := mdwconfig.LoadWithOptions(path, mdwconfig.LoadOptions{
		Format:    mdwconfig.FormatAuto,
		EnvPrefix: EnvPrefix,
	})
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// LoadFromEnv loads the file named by CHRONIK_CONFIG, or the first file
// found by discovery. Without a file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return Load(path)
	}
	raw, err := mdwconfig.Discover(mdwconfig.DefaultDiscoveryOptions())
	if err != nil {
		return nil, err
	}
	if raw.FilePath() == "" {
		return DefaultConfig(), nil
	}
	return decode(raw)
}

func decode(raw *mdwconfig.Config) (*Config, error) {
	var cfg Config
	if err := raw.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.source = raw.FilePath()
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return &cfg, nil
}

// Source returns the file the configuration was read from, or ""
func (c *Config) Source() string {
	return c.source
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	if c.Calendar.DefaultZone == "" {
		c.Calendar.DefaultZone = "UTC"
	}
	if c.Calendar.WeekStart == "" {
		c.Calendar.WeekStart = "monday"
	}

	if c.Store.Path == "" {
		c.Store.Path = defaultStorePath()
	}

	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9310
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}

	if c.Client.Target == "" {
		c.Client.Target = c.ServerAddress()
	}
	if c.Client.Timeout.Duration == 0 {
		c.Client.Timeout.Duration = 5 * time.Second
	}
}

func defaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/chronik/zones.db"
	}
	return "./data/zones.db"
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// ServerAddress returns the listen address of the gRPC server
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// WeekStart returns the configured first day of the week
func (c *Config) WeekStart() time.Weekday {
	day, err := ParseWeekday(c.Calendar.WeekStart)
	if err != nil {
		return time.Monday
	}
	return day
}

// ParseWeekday parses a weekday name or its three letter abbreviation
func ParseWeekday(value string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", value)
}

// Validate checks values the defaults cannot repair
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := ParseWeekday(c.Calendar.WeekStart); err != nil {
		problems = append(problems, "calendar.week_start: "+err.Error())
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}

	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if z.ID == "" {
			problems = append(problems, fmt.Sprintf("zones[%d]: id is required", i))
		} else if seen[z.ID] {
			problems = append(problems, fmt.Sprintf("zones[%d]: duplicate id %q", i, z.ID))
		}
		seen[z.ID] = true
		if _, err := timex.ParseOffset(z.BaseOffset); err != nil {
			problems = append(problems, fmt.Sprintf("zones[%d].base_offset: %v", i, err))
		}
		for j, r := range z.Rules {
			if _, err := time.ParseDuration(r.Delta); err != nil {
				problems = append(problems, fmt.Sprintf("zones[%d].rules[%d].delta: %v", i, j, err))
			}
			for _, tr := range []string{r.Start, r.End} {
				if _, err := timex.ParseTransitionTime(tr); err != nil {
					problems = append(problems, fmt.Sprintf("zones[%d].rules[%d]: %v", i, j, err))
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
