package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// Options selects and tunes a Logger backend.
type Options struct {
	// Format is one of FormatText, FormatJSON (slog) or FormatZap.
	Format string
	// Level is debug, info, warn or error.
	Level string
	// File, when set, receives a rotated JSON copy of the log (zap only).
	File string
	// Output overrides stderr for the slog backends.
	Output io.Writer
}

// New builds a Logger from opts.
func New(opts Options) (Logger, error) {
	switch strings.ToLower(opts.Format) {
	case FormatZap:
		zl, err := buildZap(opts.Level, opts.File)
		if err != nil {
			return nil, err
		}
		return NewZapLogger(zl), nil
	case "", FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	lvl := opts.Level
	if lvl == "" {
		lvl = "info"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}

	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	ho := &slog.HandlerOptions{Level: level, ReplaceAttr: redact}
	var h slog.Handler = slog.NewTextHandler(w, ho)
	if strings.EqualFold(opts.Format, FormatJSON) {
		h = slog.NewJSONHandler(w, ho)
	}
	return NewSlogLogger(slog.New(h)), nil
}
