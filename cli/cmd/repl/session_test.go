package repl

import (
	"context"
	"strings"
	"testing"

	"github.com/ardnew/tacit/lang/ast"
)

func newTestSession() *session {
	return newSession(nil, Config{Encoding: ast.Combined})
}

func TestSession_Eval(t *testing.T) {
	ctx := context.Background()
	s := newTestSession()

	tests := []struct {
		name  string
		input string
		want  []string
		items int
	}{
		{name: "function", input: "fn add a b = a + b", want: []string{"fn add a b = a + b"}, items: 1},
		{name: "const", input: "const k = 1 + 2", want: []string{"const k = 1 + 2", "= 3"}, items: 2},
		{name: "constant expression", input: "k * 2", want: []string{"k * 2", "= 6"}, items: 2},
		{name: "application", input: "add k 1", want: []string{"add k 1"}, items: 2},
		{name: "several items", input: "let x = 1; x", want: []string{"let x = 1", "x"}, items: 3},
		{name: "syntax error", input: "let = 1", want: []string{"error:", "^"}, items: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.eval(ctx, tt.input)

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("eval(%q) = %q, missing %q", tt.input, out, want)
				}
			}

			if got := len(s.prog.Items); got != tt.items {
				t.Errorf("session has %d items, want %d", got, tt.items)
			}
		})
	}

	if strings.Contains(s.eval(ctx, "add k 1"), "=") {
		t.Error("non-constant expression printed a value")
	}
}

func TestSession_Sources(t *testing.T) {
	s := newTestSession()

	s.eval(context.Background(), "fn f = 1")
	s.eval(context.Background(), "fn g = 2")

	f, _ := s.prog.Lookup("f")
	g, _ := s.prog.Lookup("g")

	if f.Span().Source == g.Span().Source {
		t.Errorf("input lines share source %q", f.Span().Source)
	}
}

func TestSession_Commands(t *testing.T) {
	ctx := context.Background()
	s := newTestSession()
	s.eval(ctx, "fn add a b = a + b\nlet [x, y] = [1, 2]\nconst k = 4")

	tests := []struct {
		name string
		got  string
		want []string
	}{
		{name: "list", got: s.list(ctx), want: []string{"add", "fn", "x, y", "let", "k", "const"}},
		{name: "show", got: s.show(ctx, []string{"add", "nope"}), want: []string{"fn add a b = a + b", "nope: not declared"}},
		{name: "show usage", got: s.show(ctx, nil), want: []string{"usage: show"}},
		{name: "view fmt", got: s.view(ctx, nil), want: []string{"let [x, y] = [1, 2]"}},
		{name: "view json", got: s.view(ctx, []string{"json"}), want: []string{`"kind"`}},
		{name: "view yaml", got: s.view(ctx, []string{"yaml"}), want: []string{"kind:"}},
		{name: "view tree", got: s.view(ctx, []string{"tree"}), want: []string{"@<repl:1>:"}},
		{name: "view usage", got: s.view(ctx, []string{"xml"}), want: []string{"usage: view"}},
		{name: "consts", got: s.consts(ctx), want: []string{"k = 4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.want {
				if !strings.Contains(tt.got, want) {
					t.Errorf("output %q missing %q", tt.got, want)
				}
			}
		})
	}
}

func TestSession_Empty(t *testing.T) {
	ctx := context.Background()
	s := newTestSession()

	if got := s.list(ctx); !strings.Contains(got, "no declarations") {
		t.Errorf("list = %q", got)
	}

	if got := s.consts(ctx); !strings.Contains(got, "no constants") {
		t.Errorf("consts = %q", got)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "fn f = 1", want: "fn f = 1"},
		{in: "fn f = {\n  1\n}", want: "fn f = {..."},
		{in: strings.Repeat("x", 50), want: strings.Repeat("x", 37) + "..."},
	}

	for _, tt := range tests {
		if got := preview(tt.in); got != tt.want {
			t.Errorf("preview(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
