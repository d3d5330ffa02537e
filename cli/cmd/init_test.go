package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tacit/lang"
)

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr bool
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing content"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Verbose bool     `help:"Enable verbose output"`
				Output  string   `help:"Output file"`
				Count   int      `help:"Number of items"`
				LogFile string   `help:"Log file"`
				Path    []string `help:"Search path"`
				Secret  string   `hidden:""`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse([]string{
				"--verbose", "--output=out.tc", "--count=5",
				"--path=a", "--path=b", "--secret=x",
			})
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
					t.Errorf("error = %v", err)
				}

				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			prog, err := lang.ParseString(ctx, string(content))
			if err != nil {
				t.Fatalf("generated config does not parse: %v\n%s", err, content)
			}

			consts, err := prog.Consts(ctx)
			if err != nil {
				t.Fatalf("generated config does not evaluate: %v", err)
			}

			got := make(map[string]string, len(consts))
			for _, c := range consts {
				got[c.Name] = lang.FormatValue(c.Value)
			}

			want := map[string]string{
				"verbose": "true",
				"output":  `"out.tc"`,
				"count":   "5",
				"path":    `["a", "b"]`,
			}

			for k, v := range want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}

			for _, k := range []string{"help", "log_file", "secret"} {
				if _, ok := got[k]; ok {
					t.Errorf("%s was written:\n%s", k, content)
				}
			}
		})
	}
}

func TestInitNoConfigPath(t *testing.T) {
	var cli struct{}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	err = (&Init{}).Run(WithContext(context.Background(), kctx))
	if !errors.Is(err, ErrNoConfigPath) {
		t.Errorf("expected ErrNoConfigPath, got %v", err)
	}
}

func TestConfigName(t *testing.T) {
	for flag, want := range map[string]string{
		"log-level": "log_level",
		"encoding":  "encoding",
		"a-b-c":     "a_b_c",
	} {
		if got := ConfigName(flag); got != want {
			t.Errorf("ConfigName(%q) = %q, want %q", flag, got, want)
		}
	}

	if !strings.Contains(ConfigName("x"), "x") {
		t.Error("ConfigName dropped the flag name")
	}
}
