package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagefilter/internal/config"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", `msg="pages unchanged"`},
		{"json", `"msg":"pages unchanged"`},
		{"yaml", `msg="pages unchanged"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			New(&buf, "info", tt.format).Info("pages unchanged")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf, "warn", "text")
	logger.Info("removed from app: pages/debug")
	logger.Warn("no whitelist or blacklist configured")

	assert.NotContains(t, buf.String(), "removed from app")
	assert.Contains(t, buf.String(), "no whitelist or blacklist configured")
}

func TestSetupWithWriter_QuietAndDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer

	logger := SetupWithWriter(&config.Config{LogLevel: "debug", LogFormat: "json", Quiet: true}, &buf)
	assert.Equal(t, logger.Handler(), slog.Default().Handler())

	logger.Info("hidden")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" warning ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestContext(t *testing.T) {
	logger := Discard()
	assert.Same(t, logger, FromContext(NewContext(context.Background(), logger)))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	ctx := NewContext(context.Background(), New(&buf, "info", "text"))
	ctx = With(ctx, slog.String("manifest", "src/app.json"))

	FromContext(ctx).Info("filtering manifest")
	assert.Contains(t, buf.String(), "manifest=src/app.json")
}

func TestWith_NoAttributes(t *testing.T) {
	ctx := NewContext(context.Background(), Discard())
	assert.Equal(t, ctx, With(ctx))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
