package logger

import (
	"child_growth_backend/internal/config"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func swapLog(t *testing.T, l *zap.Logger) {
	t.Helper()
	prev := Log
	Log = l
	t.Cleanup(func() { Log = prev })
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		mode  string
		level string
		want  zapcore.Level
	}{
		{"debug", "", zap.DebugLevel},
		{"release", "", zap.InfoLevel},
		{"release", "warn", zap.WarnLevel},
		{"debug", "error", zap.ErrorLevel},
	}
	for _, tt := range tests {
		cfg := &config.Config{Server: config.ServerConfig{Mode: tt.mode}, Log: config.LogConfig{Level: tt.level}}
		assert.Equal(t, tt.want, levelFor(cfg), "%s/%s", tt.mode, tt.level)
	}
}

func TestInitLoggerWritesJSONFile(t *testing.T) {
	swapLog(t, Log)
	file := filepath.Join(t.TempDir(), "app.log")
	InitLogger(&config.Config{
		Server: config.ServerConfig{Mode: "release"},
		Log:    config.LogConfig{File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	})

	Log.Debug("hidden")
	Log.Info("session begun", zap.Uint("childID", 7))
	_ = Log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session begun"`)
	assert.Contains(t, string(data), `"childID":7`)
	assert.NotContains(t, string(data), "hidden")
}

func TestWithContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	swapLog(t, zap.New(core))

	WithContext(context.Background()).Info("no span")

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	WithContext(ctx).Info("with span")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].ContextMap())
	fields := entries[1].ContextMap()
	assert.Equal(t, sc.TraceID().String(), fields["traceID"])
	assert.Equal(t, sc.SpanID().String(), fields["spanID"])
}
