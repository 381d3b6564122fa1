// File: config.go
// Title: Configuration Loader
// Description: Loads TOML or YAML configuration files into a thread-safe
//              key/value tree with dot-path getters, environment variable
//              overrides and typed decoding into structs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-09-23
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-09-23 v0.2.0: Unmarshal into typed structs, nested defaults, no file watching

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto detects the format from the file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config is a loaded configuration tree
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format
	EnvPrefix string
	Defaults  map[string]interface{}
}

// Load loads configuration from a file, detecting the format
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	const op = "LoadWithOptions"

	if strings.TrimSpace(filePath) == "" {
		return nil, mdwerrors.StandardError(mdwerrors.ModuleConfig, op, mdwerror.CodeValidationFailed,
			"config file path cannot be empty")
	}

	content, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, mdwerrors.NotFound(mdwerrors.ModuleConfig, op, filePath).
			WithDetail("filePath", filePath)
	}
	if err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeConfigError, err).
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config file").
			WithDetail("filePath", filePath)
	}

	if options.Defaults != nil {
		data = mergeDefaults(data, options.Defaults)
	}

	return &Config{
		data:      data,
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
	}, nil
}

// LoadFromString loads configuration from a string
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	return &Config{data: data, format: format}, nil
}

// Empty returns a configuration without values. Getters fall back to
// environment variables and defaults.
func Empty(envPrefix string) *Config {
	return &Config{data: make(map[string]interface{}), envPrefix: envPrefix}
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	const op = "parseContent"
	data := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeInvalidConfig, err).
				WithDetail("format", format.String())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeInvalidConfig, err).
				WithDetail("format", format.String())
		}
		if data == nil {
			data = make(map[string]interface{})
		}
	default:
		return nil, mdwerrors.InvalidInput(mdwerrors.ModuleConfig, op,
			fmt.Sprintf("unsupported format: %s", format))
	}
	return data, nil
}

// mergeDefaults overlays data on defaults, merging nested tables
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(defaults)+len(data))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range data {
		sub, isMap := v.(map[string]interface{})
		base, baseIsMap := result[k].(map[string]interface{})
		if isMap && baseIsMap {
			result[k] = mergeDefaults(sub, base)
			continue
		}
		result[k] = v
	}
	return result
}

// GetString returns a string value with optional default
func (c *Config) GetString(key string, defaultValue ...string) string {
	if env, ok := c.lookupEnv(key); ok {
		return env
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v := c.getValue(key); v != nil {
		return fmt.Sprint(v)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt returns an integer value with optional default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	fallback := 0
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	if env, ok := c.lookupEnv(key); ok {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
		return fallback
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// GetBool returns a boolean value with optional default
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	fallback := false
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	if env, ok := c.lookupEnv(key); ok {
		if b, err := strconv.ParseBool(env); err == nil {
			return b
		}
		return fallback
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// GetDuration returns a duration value written as "30s" or "1h30m"
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	var fallback time.Duration
	if len(defaultValue) > 0 {
		fallback = defaultValue[0]
	}
	if d, err := time.ParseDuration(c.GetString(key)); err == nil {
		return d
	}
	return fallback
}

// GetStringSlice returns a list of strings. An environment override is
// split at commas.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	if env, ok := c.lookupEnv(key); ok {
		parts := strings.Split(env, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	switch v := c.getValue(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// Has reports whether the key is set in the file or the environment
func (c *Config) Has(key string) bool {
	if _, ok := c.lookupEnv(key); ok {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getValue(key) != nil
}

// Set sets a value at runtime, creating intermediate tables
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	setNestedValue(c.data, key, value)
}

// Keys returns the dot paths of all leaf values in sorted order
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var keys []string
	collectKeys(c.data, "", &keys)
	sort.Strings(keys)
	return keys
}

// FilePath returns the file the configuration was loaded from
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the format of the loaded file
func (c *Config) Format() Format {
	return c.format
}

// Unmarshal decodes the configuration into target using its toml or yaml
// struct tags, matching the file format. Environment overrides of keys
// present in the file are applied first.
func (c *Config) Unmarshal(target interface{}) error {
	const op = "Unmarshal"

	c.mu.RLock()
	data := deepCopy(c.data)
	c.mu.RUnlock()

	var keys []string
	collectKeys(data, "", &keys)
	for _, key := range keys {
		if env, ok := c.lookupEnv(key); ok {
			setNestedValue(data, key, parseEnvValue(env))
		}
	}

	switch c.format {
	case FormatYAML:
		raw, err := yaml.Marshal(data)
		if err == nil {
			err = yaml.Unmarshal(raw, target)
		}
		if err != nil {
			return mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeInvalidConfig, err)
		}
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(data); err != nil {
			return mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeInvalidConfig, err)
		}
		if _, err := toml.Decode(buf.String(), target); err != nil {
			return mdwerrors.ModuleError(mdwerrors.ModuleConfig, op, mdwerror.CodeInvalidConfig, err)
		}
	}
	return nil
}

// getValue walks the dot path. Callers hold c.mu.
func (c *Config) getValue(key string) interface{} {
	current := c.data
	parts := strings.Split(key, ".")
	for i, k := range parts {
		if i == len(parts)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func (c *Config) lookupEnv(key string) (string, bool) {
	if c.envPrefix == "" {
		return "", false
	}
	return os.LookupEnv(EnvKey(c.envPrefix, key))
}

// EnvKey returns the environment variable overriding key:
// ("chronik", "server.port") -> CHRONIK_SERVER_PORT
func EnvKey(prefix, key string) string {
	envKey := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if prefix != "" {
		envKey = strings.ToUpper(prefix) + "_" + envKey
	}
	return envKey
}

func collectKeys(data map[string]interface{}, prefix string, keys *[]string) {
	for k, v := range data {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			collectKeys(sub, path, keys)
			continue
		}
		*keys = append(*keys, path)
	}
}

func deepCopy(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if sub, ok := v.(map[string]interface{}); ok {
			dst[k] = deepCopy(sub)
			continue
		}
		dst[k] = v
	}
	return dst
}

func setNestedValue(data map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, ".")
	current := data
	for _, k := range parts[:len(parts)-1] {
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// parseEnvValue converts an environment string to an int64, float64, bool
// or string, in that order
func parseEnvValue(value string) interface{} {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
