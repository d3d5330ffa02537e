package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/tacit/log"
)

func TestSearchPath(t *testing.T) {
	a, b, c := t.TempDir(), t.TempDir(), t.TempDir()
	missing := filepath.Join(a, "missing")

	env := strings.Join([]string{b, missing, c}, string(os.PathListSeparator))

	got := searchPath([]string{a, c}, env)

	if len(got) == 0 || got[0] != a {
		t.Fatalf("searchPath = %q, want %q first", got, a)
	}

	for _, dir := range []string{b, c} {
		if !slices.Contains(got, dir) {
			t.Errorf("searchPath = %q, missing %q", got, dir)
		}
	}

	if slices.Contains(got, missing) {
		t.Errorf("searchPath = %q kept a missing directory", got)
	}

	if got := searchPath(nil, ""); len(got) != 0 {
		t.Errorf("empty search path = %q", got)
	}
}

func TestEncodingEnum(t *testing.T) {
	if got := encodingEnum(); got != "combined,separated" {
		t.Errorf("encodingEnum() = %q", got)
	}
}

func TestLogScan(t *testing.T) {
	defer log.SetDefault(log.Default())

	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{name: "separate values", args: []string{"--log-level", "debug", "--log-format", "text"}, level: "debug", format: "text", pretty: true},
		{name: "assigned values", args: []string{"eval", "--log-level=trace", "--log-caller"}, level: "trace", pretty: true, caller: true},
		{name: "negated", args: []string{"--no-log-pretty", "--log-caller=false"}, pretty: false},
		{name: "negated assigned", args: []string{"--no-log-pretty=false"}, pretty: true},
		{name: "after terminator", args: []string{"--", "--log-level=error"}, pretty: true},
		{name: "missing value", args: []string{"--log-level", "--log-caller"}, pretty: true, caller: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level || f.Format != tt.format || f.Pretty != tt.pretty || f.Caller != tt.caller {
				t.Errorf("scan(%q) = %+v", tt.args, f)
			}
		})
	}
}
