// Package logger holds the process wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	once          sync.Once
)

// Initialize sets up the structured logger. Logs go to stderr since stdout
// carries the selected paths.
func Initialize() {
	once.Do(func() {
		level.Set(slog.LevelWarn)
		defaultLogger = New(os.Stderr)
	})
}

// New returns a text logger writing to w at the shared level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Get returns the default structured logger
func Get() *slog.Logger {
	Initialize()
	return defaultLogger
}

// SetLevel changes the level of every logger created by this package.
func SetLevel(l slog.Level) {
	Initialize()
	level.Set(l)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Or returns l, or the default logger when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Get()
	}
	return l
}

// Debug logs a debug level message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}
