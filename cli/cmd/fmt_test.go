package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestFmtNative(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		indent  int
		want    string
		wantErr bool
	}{
		{name: "function", input: "fn   add a b=a+b", indent: 2, want: "fn add a b = a + b\n"},
		{name: "several", input: "let x = 1; x", indent: 2, want: "let x = 1\nx\n"},
		{name: "invalid", input: "let = 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := newTestContext(t, Input{Stdin: strings.NewReader(tt.input)}, nil)

			err := (&Native{Indent: tt.indent}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Native.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestFmtSourceArgs(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.tc", "const k = 1")

	// The global input names stdin, which is empty; the argument wins.
	ctx, out := newTestContext(t, Input{Sources: []string{"-"}, Stdin: strings.NewReader("")}, nil)

	native := &Native{Indent: 2, SourceArgs: SourceArgs{Sources: []string{path}}}
	if err := native.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if out.String() != "const k = 1\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestFmtJSON(t *testing.T) {
	ctx, out := newTestContext(t, Input{Stdin: strings.NewReader("fn f x = x")}, nil)

	if err := (&JSON{Indent: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var doc any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	if !strings.Contains(out.String(), `"kind"`) {
		t.Errorf("output has no node kinds:\n%s", out)
	}
}

func TestFmtYAML(t *testing.T) {
	ctx, out := newTestContext(t, Input{Stdin: strings.NewReader("let [a, b] = [1, 2]")}, nil)

	if err := (&YAML{Indent: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	var doc any
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
}

func TestFmtAST(t *testing.T) {
	ctx, out := newTestContext(t, Input{Stdin: strings.NewReader("1 + 2")}, nil)

	if err := (&AST{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "@"+stdinName) {
		t.Errorf("tree has no spans:\n%s", out)
	}
}
