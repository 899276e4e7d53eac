// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging provides the structured, control-plane-only logger used
// across sentrywall. The per-packet data plane never logs (see spec.md §7);
// only table mutations, interface attach/detach, and config reloads do.
package logging

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Logger wraps *slog.Logger with the key-value call signature used
// throughout this repository.
type Logger struct {
	base *slog.Logger
}

// New wraps an existing *slog.Logger.
func New(base *slog.Logger) *Logger {
	return &Logger{base: base}
}

func (l *Logger) Debug(msg string, kv ...any) { l.base.Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.base.Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.base.Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.base.Error(msg, kv...) }

// With returns a Logger that always includes the given key-value pairs.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{base: l.base.With(kv...)}
}

// Enabled reports whether a log record at the given level would be emitted.
func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.base.Enabled(ctx, level)
}

var (
	defaultLogger atomic.Pointer[Logger]
	initOnce      sync.Once
)

// Default returns the process-wide logger singleton, lazily initialized to
// a text handler writing to stderr at Info level.
func Default() *Logger {
	initOnce.Do(func() {
		if defaultLogger.Load() == nil {
			SetDefault(New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))))
		}
	})
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger singleton.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}
