package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectApplication(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		fn     string
		arg    int
	}{
		{name: "name only", input: "add", wantOK: false},
		{name: "first argument", input: "add ", wantOK: true, fn: "add", arg: 0},
		{name: "typing first", input: "add 1", wantOK: true, fn: "add", arg: 0},
		{name: "second argument", input: "add 1 ", wantOK: true, fn: "add", arg: 1},
		{name: "after pipe", input: "x |> add ", wantOK: true, fn: "add", arg: 0},
		{name: "inside parens", input: "f (add 1 ", wantOK: true, fn: "add", arg: 1},
		{name: "group argument", input: "add (f 1) ", wantOK: true, fn: "add", arg: 1},
		{name: "list argument", input: "len [1, 2] ", wantOK: true, fn: "len", arg: 1},
		{name: "inside list", input: "[add ", wantOK: true, fn: "add", arg: 0},
		{name: "literal head", input: "1 2 ", wantOK: false},
		{name: "after operator", input: "a + ", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := detectApplication(tt.input, len(tt.input))
			if app.ok != tt.wantOK || app.name != tt.fn || app.argIndex != tt.arg {
				t.Errorf("detectApplication(%q) = %+v", tt.input, app)
			}
		})
	}
}

func TestAtoms(t *testing.T) {
	got := atoms(" f (g x) [1, 2]  y")
	want := []string{"f", "(g x)", "[1, 2]", "y"}

	if !slices.Equal(got, want) {
		t.Errorf("atoms = %q, want %q", got, want)
	}
}

func TestRenderSignatureHint(t *testing.T) {
	hint := renderSignatureHint("add", []string{"a", "b"}, 1)
	for _, want := range []string{"add", "a", "b"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q missing %q", hint, want)
		}
	}

	if got := renderSignatureHint("pi", nil, 0); !strings.Contains(got, "no parameters") {
		t.Errorf("nullary hint = %q", got)
	}
}
