// Package logger provides component-scoped structured logging for waclaw.
package logger

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var level = func() *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(slog.LevelInfo)
	return v
}()

var log atomic.Pointer[slog.Logger]

func init() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log.Store(slog.New(h))
}

// SetDebug toggles debug-level output.
func SetDebug(debug bool) {
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// SetLogger replaces the backing slog.Logger. For tests.
func SetLogger(l *slog.Logger) {
	log.Store(l)
}

func fieldsToArgs(component string, fields map[string]any) []any {
	args := make([]any, 0, 2+2*len(fields))
	args = append(args, "component", component)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

// InfoC logs an info message for a component.
func InfoC(component, msg string) {
	log.Load().Info(msg, "component", component)
}

// InfoCF logs an info message for a component with structured fields.
func InfoCF(component, msg string, fields map[string]any) {
	log.Load().Info(msg, fieldsToArgs(component, fields)...)
}

// WarnCF logs a warning for a component with structured fields.
func WarnCF(component, msg string, fields map[string]any) {
	log.Load().Warn(msg, fieldsToArgs(component, fields)...)
}

// ErrorCF logs an error for a component with structured fields.
func ErrorCF(component, msg string, fields map[string]any) {
	log.Load().Error(msg, fieldsToArgs(component, fields)...)
}

// DebugCF logs a debug message for a component with structured fields.
func DebugCF(component, msg string, fields map[string]any) {
	log.Load().Debug(msg, fieldsToArgs(component, fields)...)
}
