package xslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLevel  = "LOG_LEVEL"
	EnvFormat = "LOG_FORMAT"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Options configure NewLogger. Zero values mean info level and JSON output.
type Options struct {
	Level  slog.Level
	Format Format
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q (valid: debug, info, warn, error)", s)
	}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return FormatJSON, fmt.Errorf("invalid log format: %q (valid: json, text)", s)
	}
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT, keeping fallback for any
// value that is unset or unparseable.
func OptionsFromEnv(fallback Options) Options {
	opts := fallback
	if s := os.Getenv(EnvLevel); s != "" {
		if level, err := ParseLevel(s); err == nil {
			opts.Level = level
		}
	}
	if s := os.Getenv(EnvFormat); s != "" {
		if format, err := ParseFormat(s); err == nil {
			opts.Format = format
		}
	}
	return opts
}

func NewLogger(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Format == FormatText {
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts))
}

// NewLoggerFromEnv builds a JSON logger whose level and format can be
// overridden through the environment.
func NewLoggerFromEnv(w io.Writer) *slog.Logger {
	return NewLogger(w, OptionsFromEnv(Options{Format: FormatJSON}))
}

// NewCLILogger is NewLoggerFromEnv for interactive commands: text output at
// warn level unless the environment says otherwise.
func NewCLILogger(w io.Writer) *slog.Logger {
	return NewLogger(w, OptionsFromEnv(Options{Level: slog.LevelWarn, Format: FormatText}))
}

type loggerKey struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext falls back to slog.Default when ctx carries no logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	handler := FromContext(ctx).Handler().WithAttrs(attrs)
	return WithLogger(ctx, slog.New(handler))
}
