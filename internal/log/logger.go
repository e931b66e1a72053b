// Package log wraps log/slog with component-stamped loggers and the shared
// field names used across the engine.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger stamps every record with the component that produced it.
type Logger struct {
	*slog.Logger
	component string
}

// Config controls handler construction for New.
type Config struct {
	Level   slog.Level
	Handler slog.Handler // optional; text on stdout when nil
}

// DefaultConfig logs text to stdout at Info level.
func DefaultConfig() Config {
	return Config{Level: slog.LevelInfo}
}

// New builds a logger from cfg, scoped to ComponentApp until WithComponent
// rescopes it.
func New(cfg Config) *Logger {
	h := cfg.Handler
	if h == nil {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	return &Logger{Logger: slog.New(h), component: ComponentApp}
}

// WithComponent returns a copy scoped to the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger, component: component}
}

// With returns a copy carrying extra attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// Component returns the component this logger is scoped to.
func (l *Logger) Component() string {
	return l.component
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	all := make([]any, 0, len(args)+2)
	all = append(all, FieldComponent, l.component)
	all = append(all, args...)
	l.Logger.Log(ctx, level, msg, all...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args)
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(DefaultConfig()))
}

// SetDefault installs l as both this package's and slog's process default.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
	slog.SetDefault(l.Logger)
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger.Load()
}
