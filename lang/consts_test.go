package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConsts(t *testing.T) {
	src := strings.Join([]string{
		"const a = 1 + 2",
		"const b = a * 2",
		`const s = $"a={a}"`,
		`const big = if b > 5 then "big" else "small"`,
		"const n = 2 |> neg",
		"const m = max 3 4",
		"const f = first [4, 5]",
		"const h = 7 / 2",
		"const p = (a == 3) && (b != 3)",
		"const l = [a, b] |> len",
		"let ignored = 1",
	}, "\n")

	consts, err := parse(t, src).Consts(context.Background())
	if err != nil {
		t.Fatalf("Consts failed: %v", err)
	}

	want := []struct {
		name  string
		value string
	}{
		{"a", "3"},
		{"b", "6"},
		{"s", `"a=3"`},
		{"big", `"big"`},
		{"n", "-2"},
		{"m", "4"},
		{"f", "4"},
		{"h", "3.5"},
		{"p", "true"},
		{"l", "2"},
	}

	if len(consts) != len(want) {
		t.Fatalf("got %d constants, want %d", len(consts), len(want))
	}

	for i, w := range want {
		if consts[i].Name != w.name {
			t.Errorf("const %d: name = %q, want %q", i, consts[i].Name, w.name)
		}

		if got := FormatValue(consts[i].Value); got != w.value {
			t.Errorf("const %s = %s, want %s", w.name, got, w.value)
		}
	}

	if got := consts[0].Span.String(); got != DefaultSource+":1:7" {
		t.Errorf("span = %s", got)
	}
}

func TestConsts_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "undefined", input: "const u = missing + 1", target: ErrUndefined},
		{name: "undefined is not constant", input: "const u = missing", target: ErrNotConstant},
		{name: "combinator", input: "const c = f . g", target: ErrNotConstant},
		{name: "lambda", input: `const l = \x -> x`, target: ErrNotConstant},
		{name: "placeholder", input: "const h = add _ 1", target: ErrNotConstant},
		{name: "declared function", input: "fn sq x = x * x\nconst s = sq 2", target: ErrNotConstant},
		{name: "local in branch", input: "const c = if true then { let y = 1; y } else 2", target: ErrNotConstant},
		{name: "arity", input: "const c = neg 1 2", target: ErrNotConstant},
		{name: "type mismatch", input: `const e = "a" * 2`, target: ErrConstEval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consts, err := parse(t, tt.input).Consts(context.Background())
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}

			if len(consts) != 0 {
				t.Errorf("failed constant was returned: %v", consts)
			}

			var diags Diagnostics
			if !errors.As(err, &diags) || len(diags) != 1 {
				t.Errorf("expected one diagnostic, got %v", err)
			}
		})
	}
}

func TestConsts_FormatSpan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "undefined", input: "const a = 1\nconst b = $\"x{zzz}\"", want: DefaultSource + ":2:15"},
		{name: "padded", input: "const a = 1\nconst b = $\"x{ zzz }\"", want: DefaultSource + ":2:16"},
		{name: "second", input: "const a = 1\nconst b = $\"{a}-{a . a}\"", want: DefaultSource + ":2:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input).Consts(context.Background())
			if !errors.Is(err, ErrNotConstant) {
				t.Fatalf("expected ErrNotConstant, got %v", err)
			}

			if got := WrapError(err).Span().String(); got != tt.want {
				t.Errorf("span = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConsts_SkipsFailures(t *testing.T) {
	src := "const a = 1\nconst b = nope\nconst c = b\nconst d = a + 1"

	consts, err := parse(t, src).Consts(context.Background())

	var diags Diagnostics
	if !errors.As(err, &diags) || len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %v", err)
	}

	if len(consts) != 2 || consts[0].Name != "a" || consts[1].Name != "d" {
		t.Errorf("constants = %v", consts)
	}

	if got := FormatValue(consts[1].Value); got != "2" {
		t.Errorf("d = %s", got)
	}
}

func TestConsts_None(t *testing.T) {
	consts, err := parse(t, "fn f = { const k = 1; k }").Consts(context.Background())
	if err != nil || len(consts) != 0 {
		t.Errorf("nested constants are not evaluated: %v %v", consts, err)
	}
}
