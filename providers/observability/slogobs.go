package observability

import (
	"context"
	"log/slog"
)

// SlogObserver adapts a *slog.Logger to the Observer interface.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver wraps the given logger; a nil logger falls back to
// slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) Debug(ctx context.Context, msg string, attrs ...Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, slogAttrs(attrs)...)
}

func (o *SlogObserver) Info(ctx context.Context, msg string, attrs ...Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, slogAttrs(attrs)...)
}

func (o *SlogObserver) Warn(ctx context.Context, msg string, attrs ...Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, slogAttrs(attrs)...)
}

func (o *SlogObserver) Error(ctx context.Context, msg string, attrs ...Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, slogAttrs(attrs)...)
}

func slogAttrs(attrs []Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.Any(a.Key, a.Value))
	}
	return out
}
