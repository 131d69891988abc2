// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Attaching request correlation IDs (when present) to each log record.
//
// The terminal UI owns stdout, so the application usually points the handler
// at a log file opened with OpenLogFile.
package pkglog
