package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithPretty(false), WithTimeLayout("none"), WithFormat(FormatText)))
	Config(WithLevel(LevelTrace))

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"trace", func() { Trace("m", slog.String("k", "v")) }, "TRACE"},
		{"debug", func() { Debug("m", slog.String("k", "v")) }, "DEBUG"},
		{"info", func() { InfoContext(context.Background(), "m", slog.String("k", "v")) }, "INFO"},
		{"warn", func() { Warn("m", slog.String("k", "v")) }, "WARN"},
		{"error", func() { ErrorContext(context.Background(), "m", slog.String("k", "v")) }, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			want := "level=" + tt.level + " msg=m k=v"
			if got := strings.TrimSpace(buf.String()); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}

	buf.Reset()
	With(slog.String("a", "b")).Info("m")

	if !strings.Contains(buf.String(), "a=b") {
		t.Errorf("With did not use the default logger: %q", buf.String())
	}
}
