package lang

import (
	"bytes"
	"context"
	"testing"

	"github.com/ardnew/tacit/lang/ast"
)

func FuzzParseString(f *testing.F) {
	seeds := []string{
		"",
		"let x = 1",
		"fn add a b = a + b\nadd 1 2",
		"## Doc.\nfn f = { let [a, _] = xs; a }",
		`$"{a} {{b}} {f "}"}"`,
		"xs |> map (\\x -> x * 2) |> filter (\\x -> x > 1)",
		"f . g .: h <* k *> m <: n :> o",
		"if a then { b } else c; #[1, 2,]",
		"const k = 'c'",
		"let = 1; (]; fn",
		"((((((",
		"\"unterminated",
	}

	for _, s := range seeds {
		f.Add(s, false)
	}

	f.Add("x && true || 1.5", true)

	f.Fuzz(func(t *testing.T, input string, separated bool) {
		enc := ast.Combined
		if separated {
			enc = ast.Separated
		}

		ctx := context.Background()

		prog, err := ParseString(ctx, input, WithEncoding(enc), WithMaxDepth(40))
		if prog == nil {
			t.Fatal("nil program")
		}

		if err != nil {
			return
		}

		if err := Check(prog); err != nil {
			t.Fatalf("parsed tree fails Check: %v\ninput: %q", err, input)
		}

		var buf bytes.Buffer
		if err := prog.Format(ctx, &buf, 2); err != nil {
			t.Fatalf("format: %v", err)
		}

		again, err := ParseString(ctx, buf.String(), WithEncoding(enc))
		if err != nil {
			t.Fatalf("formatted output does not parse: %v\ninput: %q\noutput: %q", err, input, buf.String())
		}

		if !ast.EqualItems(prog.Items, again.Items) {
			t.Fatalf("round trip changed tree\ninput: %q\noutput: %q", input, buf.String())
		}
	})
}
