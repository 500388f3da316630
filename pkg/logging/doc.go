// Package logging provides structured logging utilities for the BCM node
// labeler.
//
// # Overview
//
// This package wraps the standard library slog package with the defaults
// and conventions shared across the daemon: structured JSON to stderr,
// environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("bcm-node-labeler", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("sync complete", "labels", 4)
//	    slog.Error("sync failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("bcm-node-labeler", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug bcm-node-labeler
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "applied node labels",
//	    "module": "bcm-node-labeler",
//	    "version": "v1.0.0",
//	    "node": "node-1",
//	    "count": 4
//	}
//
// Debug logs additionally include the source location of the call site.
package logging
