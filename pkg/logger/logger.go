// Package logger carries a zap logger through context.Context so request and
// job scoped fields follow the work across package boundaries.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects a human-readable, debug level logger.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment selects a JSON, info level logger.
	ProductionEnvironment = "production"

	// TestEnvironment discards everything.
	TestEnvironment = "test"
)

// defaultLogger is used when no logger is found in context. It starts as a
// no-op logger so packages can log before Setup runs (tests, CLI helpers).
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup replaces the default logger with one suited for environment.
// Unknown environments fall back to the development logger.
func Setup(environment string) {
	var (
		l   *zap.Logger
		err error
	)

	switch environment {
	case ProductionEnvironment:
		l, err = zap.NewProduction()
	case TestEnvironment:
		l = zap.NewNop()
	default:
		l, err = zap.NewDevelopment()
	}

	if err != nil || l == nil {
		return
	}

	defaultLogger = l
}

// Default returns the process-wide logger.
func Default() *zap.Logger {
	return defaultLogger
}

// Sync flushes buffered entries of the default logger.
func Sync() {
	_ = defaultLogger.Sync()
}

type key struct{}

// Get returns the logger stored in ctx, or the default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields returns a context whose logger carries fields on every entry.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the context logger has debug enabled.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
