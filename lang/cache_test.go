package lang

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/tacit/lang/ast"
)

func TestParseReader_Cached(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	source := "fn add a b = a + b\nlet x = add 1 2"

	first, err := ParseReader(ctx, strings.NewReader(source))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	second, err := ParseReader(ctx, strings.NewReader(source))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if &first.Items[0] != &second.Items[0] {
		t.Error("expected cached items to be shared")
	}

	if first == second {
		t.Error("expected distinct programs")
	}

	if _, ok := second.Lookup("x"); !ok {
		t.Error("cached program lost its index")
	}
}

func TestParseReader_OptionsKeyed(t *testing.T) {
	ClearCache()

	ctx := context.Background()
	source := "let x = 1"

	combined, err := ParseReader(ctx, strings.NewReader(source))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	separated, err := ParseReader(ctx, strings.NewReader(source), WithEncoding(ast.Separated))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if _, ok := combined.Items[0].(ast.Let).Expr.Value.(ast.RealLit); !ok {
		t.Error("combined parse did not produce a real")
	}

	if _, ok := separated.Items[0].(ast.Let).Expr.Value.(ast.IntLit); !ok {
		t.Error("separated parse reused the combined tree")
	}

	named, err := ParseReader(ctx, strings.NewReader(source), WithSource("other.tc"))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if got := named.Items[0].Span().Source; got != "other.tc" {
		t.Errorf("source = %q, want other.tc", got)
	}
}

func TestParseReader_CachedError(t *testing.T) {
	ClearCache()

	ctx := context.Background()

	for range 2 {
		prog, err := ParseReader(ctx, strings.NewReader("let = 1; y"))
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("expected ErrSyntax, got %v", err)
		}

		if len(prog.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(prog.Items))
		}
	}
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	source := "let x = 1"

	first, _ := ParseReader(ctx, strings.NewReader(source))

	ClearCache()

	second, _ := ParseReader(ctx, strings.NewReader(source))

	if &first.Items[0] == &second.Items[0] {
		t.Error("expected a fresh parse after ClearCache")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.tc")
	if err := os.WriteFile(path, []byte("fn sq x = x * x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	prog, err := ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if prog.Source != path {
		t.Errorf("source = %q, want %q", prog.Source, path)
	}

	if got := prog.Items[0].Span().Source; got != path {
		t.Errorf("span source = %q, want %q", got, path)
	}

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.tc"))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("expected ErrReadInput, got %v", err)
	}
}

func TestStream_Lookup(t *testing.T) {
	ctx := context.Background()
	s := NewStreamFromString("fn a = 1; let b = 2; const c = 3")

	it, err := s.Lookup(ctx, "b")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if _, ok := it.(ast.Let); !ok {
		t.Errorf("expected ast.Let, got %T", it)
	}

	_, err = s.Lookup(ctx, "missing")
	if !errors.Is(err, ErrNotDeclared) {
		t.Errorf("expected ErrNotDeclared, got %v", err)
	}
}

func TestStream_Items(t *testing.T) {
	ctx := context.Background()

	var names []string

	for it := range ItemsFrom(ctx, strings.NewReader("fn a = 1\nlet b = 2\nc")) {
		for _, name := range declared(it) {
			names = append(names, string(name.Value))
		}
	}

	if got := strings.Join(names, " "); got != "a b" {
		t.Errorf("declared = %q, want \"a b\"", got)
	}

	count := 0
	for range NewStream(strings.NewReader("x; y; z")).Items(ctx) {
		count++

		break
	}

	if count != 1 {
		t.Errorf("iteration did not stop early")
	}
}

func TestStream_RecoveredItems(t *testing.T) {
	ctx := context.Background()

	it, err := LookupFrom(ctx, strings.NewReader("let = 1\nfn f = 2"), "f")
	if err != nil {
		t.Fatalf("recovered declaration not found: %v", err)
	}

	if _, ok := it.(ast.FunctionDef); !ok {
		t.Errorf("expected ast.FunctionDef, got %T", it)
	}

	_, err = NewStreamFromString("let = 1").Lookup(ctx, "g")
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected the parse error, got %v", err)
	}
}
