package logger_test

import (
	"context"
	"pen/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		debug       bool
	}{
		{name: "development", environment: logger.DevelopmentEnvironment, debug: true},
		{name: "production", environment: logger.ProductionEnvironment, debug: false},
		{name: "test", environment: logger.TestEnvironment, debug: false},
		{name: "unknown falls back to development", environment: "staging", debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				logger.Setup(tt.environment)
			})

			ctx := context.Background()
			require.NotNil(t, logger.Get(ctx))
			require.Same(t, logger.Default(), logger.Get(ctx))
			require.Equal(t, tt.debug, logger.IsDebug(ctx))
		})
	}
}

func TestGetPrefersContextLogger(t *testing.T) {
	logger.Setup(logger.TestEnvironment)

	custom := zap.NewExample()
	ctx := logger.WithLogger(context.Background(), custom)

	require.Same(t, custom, logger.Get(ctx))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("requestId", "r-1"))
	logger.Info(ctx, "scan done", zap.String("status", "safe"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "scan done", entries[0].Message)
	require.Equal(t, map[string]any{"requestId": "r-1", "status": "safe"}, entries[0].ContextMap())
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	require.False(t, logger.IsDebug(ctx))

	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	require.Equal(t, 0, logs.FilterMessage("hidden").Len())
	require.Equal(t, 3, logs.Len())
	require.Equal(t, zapcore.ErrorLevel, logs.All()[2].Level)
}
