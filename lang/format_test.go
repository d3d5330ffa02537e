package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/tacit/lang/ast"
)

func format(t *testing.T, prog *Program, indent int) string {
	t.Helper()

	var buf bytes.Buffer
	if err := prog.Format(context.Background(), &buf, indent); err != nil {
		t.Fatalf("format error: %v", err)
	}

	return buf.String()
}

func TestFormat_Simple(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent int
		want   string
	}{
		{name: "let", input: "let x = 1", want: "let x = 1\n"},
		{name: "const", input: "const k = 2 * 3", want: "const k = 2 * 3\n"},
		{name: "function", input: "fn add a b = a + b", want: "fn add a b = a + b\n"},
		{name: "items on one line", input: "x\ny", want: "x; y\n"},
		{name: "items one per line", input: "x; y", indent: 2, want: "x\ny\n"},
		{name: "spacing normalized", input: "f   x|>g", want: "f x |> g\n"},
		{name: "parentheses kept", input: "(1 + 2) * 3", want: "(1 + 2) * 3\n"},
		{name: "argument parentheses", input: "f (g x)", want: "f (g x)\n"},
		{name: "backward pipe", input: "f <| g <| x", want: "f <| g <| x\n"},
		{name: "lambda", input: `map (\x -> x + 1) xs`, want: `map (\x -> x + 1) xs` + "\n"},
		{name: "if", input: "if a then b else c", want: "if a then b else c\n"},
		{name: "list", input: "[1,2 ,3]", want: "[1, 2, 3]\n"},
		{name: "array", input: "#[]", want: "#[]\n"},
		{name: "pattern", input: "let [a, _] = xs", want: "let [a, _] = xs\n"},
		{name: "char and string", input: `f 'a' "b\n"`, want: `f 'a' "b\n"` + "\n"},
		{name: "format string", input: `$"a{{b}}{x}"`, want: `$"a{{b}}{x}"` + "\n"},
		{name: "block on one line", input: "fn f = {\n  let y = 1\n  y\n}", want: "fn f = { let y = 1; y }\n"},
		{name: "block indented", input: "fn f = { let y = 1; y }", indent: 2, want: "fn f = {\n  let y = 1\n  y\n}\n"},
		{name: "block without tail", input: "fn f = { let y = 1 }", want: "fn f = { let y = 1 }\n"},
		{name: "empty block", input: "fn f = {}", want: "fn f = ()\n"},
		{name: "doc comment kept", input: "## Adds.\nfn add a b = a + b", indent: 2, want: "## Adds.\nfn add a b = a + b\n"},
		{name: "doc comment dropped", input: "## Adds.\nfn add a b = a + b", want: "fn add a b = a + b\n"},
		{name: "empty program", input: "", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := format(t, parse(t, tt.input), tt.indent)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	sources := []string{
		"fn add a b = a + b\nlet inc = add 1\ninc 2",
		"let [x, [y, _]] = [1, [2, 3]]\nx + y * 2 - 1 / 4",
		"fn f = {\n  fn g x = x * 2\n  const k = 3\n  let y = g k\n  if y > 1 then { let z = y; z } else 0\n}",
		"xs |> map (\\x -> x + 1) |> filter (\\x -> x > 2)",
		"f <| g <| x\n(x |> f) |> g\nf <| (g <| x)",
		"f . g . h\n(f . g) . h\nf .: g <* h *> k <: m :> n",
		"a || b && c == d\n(a || b) && c",
		"(\\x -> x) 1\nf (if a then b else c) d\n1 + (if a then b else c)",
		"$\"{a} and {{b}} {f \"}\"}\"",
		"'x'; \"tab\\there\"; 1.5e-3; #[1, 2,]; []; ()",
		"neg _ |> twice",
	}

	for _, src := range sources {
		for _, indent := range []int{0, 2} {
			prog := parse(t, src)
			out := format(t, prog, indent)

			again, err := ParseString(context.Background(), out)
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", out, err)
			}

			if !ast.EqualItems(prog.Items, again.Items) {
				t.Errorf("round trip changed tree:\nsource: %s\nformatted: %s", src, out)
			}
		}
	}
}

func TestFormat_SeparatedRoundTrip(t *testing.T) {
	src := "fn f x = { let y = x; y > 1 && true || false }\nf 2.5"

	prog := parse(t, src, WithEncoding(ast.Separated))
	out := format(t, prog, 0)

	again := parse(t, out, WithEncoding(ast.Separated))
	if !ast.EqualItems(prog.Items, again.Items) {
		t.Errorf("round trip changed tree: %s", out)
	}
}

func TestFormat_AddsParentheses(t *testing.T) {
	b := NewBuilder("gen")

	// (1 + 2) * 3 built without an explicit ParenedExpr.
	sum := b.Bin(b.Real("1"), ast.Add, b.Real("2"))
	prog := b.Program(b.Expr(b.Bin(sum, ast.Mul, b.Real("3"))))

	out := format(t, prog, 0)
	if out != "(1 + 2) * 3\n" {
		t.Errorf("got %q", out)
	}

	again := parse(t, out)

	got := ast.StripParens(again.Items[0].(ast.ExprItem).Expr)
	got.Value = stripOperands(got.Value)

	if !ast.EqualExpr(got, prog.Items[0].(ast.ExprItem).Expr) {
		t.Errorf("reparsed %s", sexpr(got))
	}
}

// stripOperands removes parentheses around the operands of a binary
// operation.
func stripOperands(e ast.Expr) ast.Expr {
	if bin, ok := e.(ast.BinExpr); ok {
		bin.Left = ast.StripParens(bin.Left)
		bin.Right = ast.StripParens(bin.Right)

		return bin
	}

	return e
}

func TestFormatExpr(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1+2", want: "1 + 2"},
		{input: `\ x y->x`, want: `\x y -> x`},
		{input: "if a then\nb else c", want: "if a then b else c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := ParseExpr(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if got := FormatExpr(e); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	prog := parse(t, "let x = 1", WithSource("main.tc"))

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc struct {
		Source   string           `json:"source"`
		Encoding string           `json:"encoding"`
		Items    []map[string]any `json:"items"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if doc.Source != "main.tc" || doc.Encoding != ast.Combined.String() {
		t.Errorf("header = %q %q", doc.Source, doc.Encoding)
	}

	if len(doc.Items) != 1 || doc.Items[0]["kind"] != "let" || doc.Items[0]["span"] != "main.tc:1:5" {
		t.Fatalf("items = %v", doc.Items)
	}

	expr, _ := doc.Items[0]["expr"].(map[string]any)
	if expr["kind"] != "real" || expr["value"] != "1" {
		t.Errorf("expr = %v", expr)
	}
}

func TestFormatJSON_Indent(t *testing.T) {
	prog := parse(t, "x")

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 4); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if !strings.Contains(buf.String(), "\n    \"encoding\"") {
		t.Errorf("expected 4-space indentation, got %s", buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	prog := parse(t, "fn id x = x")

	var buf bytes.Buffer
	if err := prog.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	for _, want := range []string{"kind: fn", "name: id", "params:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("missing %q in:\n%s", want, buf.String())
		}
	}
}

func TestPrint(t *testing.T) {
	prog := parse(t, "let [a, _] = f 1", WithSource("t"))

	var buf bytes.Buffer
	if err := prog.Print(&buf); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	want := strings.Join([]string{
		"let @t:1:5",
		"  expr:",
		"    call @t:1:14",
		"      arg:",
		`        real @t:1:16 value="1"`,
		"      func:",
		`        ident @t:1:14 name="f"`,
		"  pattern:",
		"    list @t:1:5",
		"      items:",
		`        ident @t:1:6 name="a"`,
		"        discard @t:1:9",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// limitWriter fails once more than n bytes have been written.
type limitWriter struct{ n int }

var errShortWrite = errors.New("short write")

func (w *limitWriter) Write(b []byte) (int, error) {
	if len(b) > w.n {
		return 0, errShortWrite
	}

	w.n -= len(b)

	return len(b), nil
}

func TestPrint_WriteError(t *testing.T) {
	prog := parse(t, "let [a, _] = f 1\nfn g x = x")

	for _, n := range []int{0, 10, 60} {
		if err := prog.Print(&limitWriter{n: n}); !errors.Is(err, errShortWrite) {
			t.Errorf("limit %d: expected errShortWrite, got %v", n, err)
		}
	}

	if err := PrintExpr(&limitWriter{}, prog.Items[0].(ast.Let).Expr); !errors.Is(err, errShortWrite) {
		t.Errorf("PrintExpr: expected errShortWrite, got %v", err)
	}
}
