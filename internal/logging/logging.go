// Package logging builds the [log/slog] logger of the pagefilter CLI and
// carries it through a context.
//
// The hook in pkg/pagefilter never logs through the process default; it
// writes to the logger it is given, or to [Discard].
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/pagefilter/internal/config"
)

type ctxKey struct{}

// New returns a logger writing to w in format ("text" or "json") at level.
// Unknown formats fall back to text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup builds the CLI logger from cfg on stderr and makes it the process
// default.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter is Setup with a custom destination.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := New(w, cfg.EffectiveLogLevel(), cfg.LogFormat)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel maps a level name to a slog.Level. Matching ignores case and
// accepts "warning"; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn, "warning":
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewContext returns a child context carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}

// With returns a child context whose logger carries attrs, e.g. the
// manifest path of the current run.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}

	return NewContext(ctx, FromContext(ctx).With(args...))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
