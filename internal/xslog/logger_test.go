package xslog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	go_json "github.com/goccy/go-json"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "bogus")

	got := OptionsFromEnv(Options{Level: slog.LevelWarn, Format: FormatText})
	want := Options{Level: slog.LevelDebug, Format: FormatText}
	if got != want {
		t.Errorf("OptionsFromEnv() = %+v, want %+v", got, want)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var jsonBuf, textBuf bytes.Buffer
	NewLogger(&jsonBuf, Options{}).Info("hello", slog.String("k", "v"))
	NewLogger(&textBuf, Options{Level: slog.LevelWarn, Format: FormatText}).Info("dropped")

	var line map[string]any
	if err := go_json.Unmarshal(jsonBuf.Bytes(), &line); err != nil {
		t.Fatalf("json output not decodable: %v", err)
	}
	if line["msg"] != "hello" || line["k"] != "v" {
		t.Errorf("json line = %v", line)
	}
	if textBuf.Len() != 0 {
		t.Errorf("text logger at warn wrote info line: %q", textBuf.String())
	}
}

func TestWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), NewLogger(&buf, Options{Format: FormatText}))
	ctx = WithAttrs(ctx, slog.String("user", "u1"))

	FromContext(ctx).InfoContext(ctx, "scored")

	if !strings.Contains(buf.String(), "user=u1") {
		t.Errorf("log line missing attr: %q", buf.String())
	}
	if got := WithAttrs(ctx); got != ctx {
		t.Error("WithAttrs() without attrs returned a new context")
	}
}

func TestFromContextDefault(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext() without logger did not return slog.Default()")
	}
}
