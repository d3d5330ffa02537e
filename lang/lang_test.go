package lang

import (
	"context"
	"slices"
	"testing"

	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/lang/builtin"
)

const queries = "fn add a b = a + b\nlet inc = \\x -> add x 1\nconst k = 3"

func TestProgram_Identifiers(t *testing.T) {
	got := parse(t, queries).Identifiers()
	want := []string{"a", "add", "b", "inc", "k", "x"}

	if !slices.Equal(got, want) {
		t.Errorf("Identifiers() = %v, want %v", got, want)
	}
}

func TestProgram_Functions(t *testing.T) {
	prog := parse(t, queries)

	ids := prog.FunctionIDs()
	if len(ids) != 2 {
		t.Fatalf("FunctionIDs() = %v", ids)
	}

	if ids[0] != ast.Named("add") {
		t.Errorf("first id = %s, want `add`", ids[0])
	}

	span, ok := ids[1].Span()
	if !ok || span.Start.Line != 2 || span.Start.Column != 11 {
		t.Errorf("second id = %s, want the lambda on line 2", ids[1])
	}

	funcs := prog.Functions()
	if got := len(funcs[ids[1]].Params); got != 1 {
		t.Errorf("lambda has %d params", got)
	}
}

func TestProgram_Resolve(t *testing.T) {
	prog := parse(t, queries)

	tests := []struct {
		name string
		want ast.FunctionID
		ok   bool
	}{
		{name: "add", want: ast.Named("add"), ok: true},
		{name: "neg", want: ast.Builtin1(builtin.Neg), ok: true},
		{name: "max", want: ast.Builtin2(builtin.Max), ok: true},
		{name: "inc", ok: false},
		{name: "k", ok: false},
		{name: "nothing", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := prog.Resolve(tt.name)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Resolve(%q) = %s, %v", tt.name, got, ok)
			}
		})
	}
}

func TestProgram_Signature(t *testing.T) {
	prog := parse(t, queries)

	tests := []struct {
		name string
		want []string
		ok   bool
	}{
		{name: "add", want: []string{"a", "b"}, ok: true},
		{name: "abs", want: []string{"x"}, ok: true},
		{name: "pow", want: []string{"x", "y"}, ok: true},
		{name: "inc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := prog.Signature(tt.name)
			if ok != tt.ok || !slices.Equal(got, tt.want) {
				t.Errorf("Signature(%q) = %v, %v", tt.name, got, ok)
			}
		})
	}
}

func TestProgram_Lookup(t *testing.T) {
	prog := parse(t, "let x = 1\nlet [y, x] = [2, 3]\nx")

	it, ok := prog.Lookup("x")
	if !ok {
		t.Fatal("x not found")
	}

	if it.Span() != prog.Items[1].Span() {
		t.Errorf("Lookup(x) = %v, want the second let", it)
	}

	if _, ok := prog.Lookup("z"); ok {
		t.Error("found undeclared name")
	}
}

func TestProgram_Extend(t *testing.T) {
	ctx := context.Background()

	session, err := ParseString(ctx, "fn f = 1")
	if err != nil {
		t.Fatal(err)
	}

	more, err := ParseString(ctx, "fn f = 2\nlet g = f")
	if err != nil {
		t.Fatal(err)
	}

	session.Extend(more)

	if len(session.Items) != 3 {
		t.Fatalf("got %d items", len(session.Items))
	}

	it, _ := session.Lookup("f")
	if got := FormatExpr(it.(ast.FunctionDef).Func.Body.Expr); got != "2" {
		t.Errorf("f = %s, want the later definition", got)
	}

	if _, ok := session.Lookup("g"); !ok {
		t.Error("extended declarations not indexed")
	}
}

func TestProgram_All(t *testing.T) {
	prog := parse(t, "a; b; c")

	var n int
	for range prog.All() {
		n++
	}

	if n != 3 {
		t.Errorf("All yielded %d items", n)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder("gen")

	prog := b.Program(
		b.Fn("inc", []string{"x"}, b.Body(b.Bin(b.Ident("x"), ast.Add, b.Real("1")))),
	)

	if err := Check(prog); err != nil {
		t.Fatalf("Check = %v", err)
	}

	if got := format(t, prog, 0); got != "fn inc x = x + 1\n" {
		t.Errorf("got %q", got)
	}

	if prog.Source != "gen" || prog.Items[0].Span().Source != "gen" {
		t.Errorf("source = %q", prog.Source)
	}
}
