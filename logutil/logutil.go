// Package logutil configures the process-wide structured logger.
// Logs go to stderr so command output on stdout stays machine-readable.
package logutil

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "AGENTRIX_DEBUG"

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	debugEnabled bool
)

func init() {
	Setup(os.Stderr, false, false)
}

// Setup configures the global logger.
//
// Parameters:
//   - debug: When true, enables debug-level logging
//   - structured: When true, outputs JSON-formatted logs; otherwise uses text format
//
// This function is safe for concurrent use.
func Setup(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	debugEnabled = debug

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// IsDebugEnabled returns true if debug logging is enabled, either
// programmatically or via the AGENTRIX_DEBUG environment variable.
func IsDebugEnabled() bool {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	return enabled || os.Getenv(EnvDebug) == "true"
}

// Debug logs a debug message with optional key-value pairs.
// Debug messages are only logged when debug mode is enabled.
func Debug(msg string, args ...any) {
	if IsDebugEnabled() {
		logger().Debug(msg, args...)
	}
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

// Logger returns the underlying slog.Logger for advanced usage.
func Logger() *slog.Logger {
	return logger()
}

func logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}
