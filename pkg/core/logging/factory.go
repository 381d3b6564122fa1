// ============================================================================
// chronik - Zeitzonenbewusste Kalenderarithmetik
// ============================================================================
//
// Package:     logging
// Description: Factory functions creating named loggers from the app config
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	mdwlog "github.com/msto63/chronik/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt
	Format string

	// File receives a copy of every entry when set
	File string

	// Output replaces stderr
	Output io.Writer
}

var (
	defaultsMu sync.RWMutex
	defaults   = LoggerConfig{Level: "info", Format: "console"}
	logFile    *os.File
)

// DefaultLoggerConfig returns the process-wide configuration for a service
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	cfg := defaults
	cfg.ServiceName = serviceName
	return cfg
}

// Configure sets the configuration used by New and replaces the foundation
// default logger. A previously opened log file is closed.
func Configure(cfg LoggerConfig) error {
	if _, err := mdwlog.ParseLevel(cfg.Level); err != nil {
		return err
	}
	if _, err := mdwlog.ParseFormat(cfg.Format); err != nil {
		return err
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
	}

	defaultsMu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	defaults = cfg
	defaultsMu.Unlock()

	mdwlog.SetDefault(NewLogger(DefaultLoggerConfig("chronik")))
	return nil
}

// Close closes the log file opened by Configure
func Close() error {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// NewLogger creates a foundation logger. Invalid level or format values
// fall back to info and console.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, _ := mdwlog.ParseLevel(cfg.Level)

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	defaultsMu.RLock()
	if logFile != nil && cfg.File == defaults.File {
		output = io.MultiWriter(output, logFile)
	}
	defaultsMu.RUnlock()

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// Logger wraps the foundation logger with key-value logging methods
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a named logger from the process-wide configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewLogger(DefaultLoggerConfig(name)),
		name:   name,
	}
}

// Wrap adapts an existing foundation logger
func Wrap(name string, logger *mdwlog.Logger) *Logger {
	return &Logger{Logger: logger.WithName(name), name: name}
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// With returns a logger adding the key-value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...)), name: l.name}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// Audit logs an audit message with key-value pairs
func (l *Logger) Audit(msg string, keysAndValues ...interface{}) {
	l.Logger.Audit(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mdwlog.Fields. Errors are stored
// as their message.
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	fields := make(mdwlog.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr && err != nil {
			fields[key] = err.Error()
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
