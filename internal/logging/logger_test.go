package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetup_JSON(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger := Setup("debug", "JSON", &buf)
	logger.Debug("loaded", "rows", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, float64(3), entry["rows"])
	assert.Same(t, logger, slog.Default())
}

func TestSetup_LevelFilters(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger := Setup("warn", "text", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	assert.True(t, ValidLevel("Warn"))
	assert.False(t, ValidLevel("trace"))
	assert.True(t, ValidFormat("json"))
	assert.False(t, ValidFormat("yaml"))
}

func TestFromContext_RequestID(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	Setup("info", "text", &buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	WithFields(ctx, "run_id", "run-1").Info("compared")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-42")
	assert.Contains(t, out, "run_id=run-1")
}

func TestFromContext_NoRequestID(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	Setup("info", "text", &buf)

	FromContext(context.Background()).Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}
