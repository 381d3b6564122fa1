// Package log provides structured logging for chronik.
//
// Package: log
// Title: Structured Logging
// Description: Leveled structured logger with contextual fields, JSON, text,
//              console and logfmt output and integration with the
//              foundation error type. The calendar core does not log; the
//              zone registry, store, gRPC server and CLI do.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-09-22
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-09-22 v0.2.0: Trimmed for chronik
//
// Usage:
//
//	logger := log.New().
//		WithFormat(log.FormatText).
//		WithName("zones")
//
//	logger.Info("zone loaded", log.Zone("Europe/Berlin"))
//	logger.LogError(err) // level follows the error severity
//
//	timer := logger.StartTimer("ResolveWeek")
//	defer timer.Stop()
package log
