// Package logx provides leveled logging configured from environment variables.
//
// Environment Variables:
//   - LOG_LEVEL: Set the minimum log level (TRACE, DEBUG, INFO, WARN, ERROR, OFF)
//   - LOG_FORMAT: Set output format (console, json)
//   - LOG_COLOR: Enable/disable colored output (true/false, default: true)
//   - LOG_CALLER: Enable/disable caller information (true/false, default: true)
//
// Basic Usage:
//
//	logx.Info("registry ready with %d classes", n)
//	logx.Debug("defined error class %s", class.FullName())
//
// Format Examples:
//
//	Console Format (default):
//	[2025-06-08 18:57:52] [DEBUG] registry.go:88: defined error class MapError.dne
//
//	JSON Format (structured logging for log aggregation):
//	LOG_FORMAT=json LOG_LEVEL=DEBUG go run main.go
//	{"caller":"registry.go:88","level":"DEBUG","message":"defined error class MapError.dne","timestamp":"2025-06-08T18:57:52Z"}
//
// Both a global logger and instance loggers are available. Packages that accept a
// *Logger fall back to the global one when given nil.
package logx
