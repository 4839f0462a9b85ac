package logging

import (
	"context"
	"log/slog"
	"slices"
)

// redactedKeys never reach the output verbatim.
var redactedKeys = []string{"password", "digest", "auth_response", "auth_challenge"}

// redact is a slog ReplaceAttr hook masking secret attributes.
func redact(_ []string, a slog.Attr) slog.Attr {
	if slices.Contains(redactedKeys, a.Key) {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
