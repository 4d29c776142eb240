package logx

import (
	"io"
	"os"
	"strings"
)

var defaultLogger *Logger

func init() {
	defaultLogger = New()
	configureFromEnv(defaultLogger, os.Getenv)
}

// configureFromEnv applies the LOG_* variables to l.
func configureFromEnv(l *Logger, getenv func(string) string) {
	if logLevel := getenv("LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLevel(logLevel); err == nil {
			l.SetLevel(level)
		}
	}

	if format := getenv("LOG_FORMAT"); format != "" {
		switch strings.ToLower(format) {
		case "json":
			l.SetFormat(FormatJSON)
		default:
			l.SetFormat(FormatConsole)
		}
	}

	if colorEnv := getenv("LOG_COLOR"); colorEnv != "" {
		l.SetColored(strings.ToLower(colorEnv) != "false")
	}

	if callerEnv := getenv("LOG_CALLER"); callerEnv != "" {
		l.SetShowCaller(strings.ToLower(callerEnv) != "false")
	}
}

// SetLevel sets the global log level
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the global output destination
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetFormat sets the global log format
func SetFormat(format OutputFormat) {
	defaultLogger.SetFormat(format)
}

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	return defaultLogger
}

// Global logging functions
func Trace(msg string, args ...any) {
	defaultLogger.Trace(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
