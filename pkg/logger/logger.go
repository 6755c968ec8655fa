// Package logger defines the leveled logging contract used across the module
// and an adapter over log/slog handlers.
package logger

import "log/slog"

// Logger is the minimal leveled logger the module logs through. Arguments
// follow the slog convention of alternating keys and values.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// SlogLogger adapts a slog.Handler to the Logger interface.
type SlogLogger struct {
	logger *slog.Logger
}

// New wraps the given slog handler.
func New(h slog.Handler) *SlogLogger {
	return &SlogLogger{logger: slog.New(h)}
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}
