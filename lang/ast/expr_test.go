package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(start, end int, name string) Spanned[Expr] {
	return Sp[Expr](at(start, end), IdentExpr{Name: Ident(name)})
}

func num(start, end int, text string) Spanned[Expr] {
	return Sp[Expr](at(start, end), RealLit{Text: text})
}

func TestDefaultExpr(t *testing.T) {
	assert.Equal(t, Unit{}, DefaultExpr())
	assert.Equal(t, Unit{}, Of(nil))
	assert.Equal(t, Placeholder{}, Of(Placeholder{}))

	var b Block
	assert.True(t, EqualExpr(b.Expr, Sp(Span{}, DefaultExpr())))
}

func TestBlockOf(t *testing.T) {
	e := Bin(num(0, 1, "1"), Sp(at(2, 3), Add), num(4, 5, "2"))
	b := BlockOf(e)

	assert.Empty(t, b.Items)
	assert.Equal(t, e, b.Expr)
	assert.Equal(t, e.Span, b.Span())
}

func TestNewBlock(t *testing.T) {
	let := Let{
		Pattern: Sp[Pattern](at(6, 7), IdentPattern{Name: "x"}),
		Expr:    num(10, 11, "1"),
	}

	t.Run("tail", func(t *testing.T) {
		tail := ident(13, 14, "x")
		b := NewBlock([]Item{let}, &tail, at(15, 16))

		assert.Equal(t, tail, b.Expr)
		assert.Equal(t, at(6, 14), b.Span())
	})

	t.Run("synthetic", func(t *testing.T) {
		b := NewBlock([]Item{let}, nil, at(15, 16))

		assert.Equal(t, Unit{}, b.Expr.Value)
		assert.Equal(t, at(15, 16), b.Expr.Span)
		assert.Equal(t, at(6, 16), b.Span())
	})
}

func TestItemSpans(t *testing.T) {
	// let x = 1
	let := Let{
		Pattern: Sp[Pattern](at(4, 5), IdentPattern{Name: "x"}),
		Expr:    num(8, 9, "1"),
	}
	assert.Equal(t, at(4, 9), let.Span())

	// const k = 2
	c := Const{Name: Sp(at(6, 7), Ident("k")), Expr: num(10, 11, "2")}
	assert.Equal(t, at(6, 11), c.Span())

	e := ExprItem{Expr: ident(0, 3, "abc")}
	assert.Equal(t, at(0, 3), e.Span())
}

func TestItemSpanCoversDescendants(t *testing.T) {
	// fn f a = if a then [a, 1] else #[]
	cond := ident(12, 13, "a")
	list := Sp[Expr](at(19, 26), ListExpr{Items: []Spanned[Expr]{
		ident(20, 21, "a"), num(23, 24, "1"),
	}})
	arr := Sp[Expr](at(32, 35), ArrayExpr{})
	body := Sp[Expr](at(9, 35), IfExpr{
		Cond: cond, IfTrue: BlockOf(list), IfFalse: BlockOf(arr),
	})

	def := NewFunctionDef(nil, Sp(at(3, 4), Ident("f")), Func{
		ID:     Named("f"),
		Params: []Spanned[Ident]{Sp(at(5, 6), Ident("a"))},
		Body:   BlockOf(body),
	})

	var visited int

	Walk(def, func(span Span, _ any) bool {
		visited++

		assert.True(t, def.Span().Contains(span), "%v not in %v", span, def.Span())

		return true
	})

	assert.Equal(t, 9, visited)
}

func TestEmptyCollections(t *testing.T) {
	for _, e := range []Spanned[Expr]{
		Sp[Expr](at(0, 2), ListExpr{}),
		Sp[Expr](at(0, 3), ArrayExpr{}),
	} {
		assert.True(t, e.Span.Valid())
	}
}

func TestStripParens(t *testing.T) {
	inner := Bin(ident(1, 2, "a"), Sp(at(3, 4), Mul), ident(5, 6, "b"))
	wrapped := Sp[Expr](at(0, 7), ParenedExpr{Inner: inner})
	twice := Sp[Expr](at(0, 9), ParenedExpr{Inner: wrapped})

	assert.Equal(t, inner, StripParens(wrapped))
	assert.Equal(t, inner, StripParens(twice))
	assert.Equal(t, inner, StripParens(inner))
	assert.False(t, EqualExpr(inner, wrapped))
}

func TestUncurry(t *testing.T) {
	// f a b c
	f := ident(0, 1, "f")
	args := []Spanned[Expr]{ident(2, 3, "a"), ident(4, 5, "b"), ident(6, 7, "c")}

	call := Call(Call(Call(f, args[0]), args[1]), args[2])
	assert.Equal(t, at(0, 7), call.Span)

	app := Uncurry(call)
	assert.Equal(t, f, app.Func)
	assert.Equal(t, args, app.Args)
	assert.Equal(t, call, app.Curry())

	bare := Uncurry(f)
	assert.Equal(t, f, bare.Func)
	assert.Empty(t, bare.Args)
	assert.Equal(t, f, bare.Curry())
}

func TestPipeToCall(t *testing.T) {
	x, f := ident(0, 1, "x"), ident(5, 6, "f")
	want := Sp[Expr](at(0, 6), CallExpr{Func: f, Arg: x})

	forward := PipeExpr{Left: x, Op: Sp(at(2, 4), Forward), Right: f}
	assert.Equal(t, want, PipeToCall(at(0, 6), forward))

	// f <| x
	f, x = ident(0, 1, "f"), ident(5, 6, "x")
	backward := PipeExpr{Left: f, Op: Sp(at(2, 4), Backward), Right: x}
	assert.Equal(t, Sp[Expr](at(0, 6), CallExpr{Func: f, Arg: x}),
		PipeToCall(at(0, 6), backward))
}

func TestEqualExprIgnoresSpans(t *testing.T) {
	a := Bin(num(0, 1, "1"), Sp(at(2, 3), Add), num(4, 5, "2"))
	b := Bin(num(10, 11, "1"), Sp(at(12, 13), Add), num(14, 15, "2"))
	c := Bin(num(0, 1, "1"), Sp(at(2, 3), Sub), num(4, 5, "2"))

	assert.True(t, EqualExpr(a, b))
	assert.False(t, EqualExpr(a, c))
	assert.False(t, EqualExpr(a, num(0, 1, "1")))

	lam := func(start int) Spanned[Expr] {
		return Sp[Expr](at(start, start+8), FuncExpr{Func: Func{
			ID:     Anonymous(at(start, start+8)),
			Params: []Spanned[Ident]{Sp(at(start+1, start+2), Ident("x"))},
			Body:   BlockOf(ident(start+6, start+7, "x")),
		}})
	}

	first, second := lam(0), lam(20)
	require.NotEqual(t,
		first.Value.(FuncExpr).Func.ID, second.Value.(FuncExpr).Func.ID)
	assert.True(t, EqualExpr(first, second))
}

func TestEqualItems(t *testing.T) {
	doc := Sp(at(0, 5), "doc")
	mk := func(off int, d *Spanned[string]) Item {
		return NewFunctionDef(d, Sp(at(off+3, off+4), Ident("k")), Func{
			ID:   Named("k"),
			Body: BlockOf(num(off+7, off+8, "1")),
		})
	}

	assert.True(t, EqualItems([]Item{mk(0, nil)}, []Item{mk(30, nil)}))
	assert.True(t, EqualItem(mk(0, &doc), mk(30, &doc)))
	assert.False(t, EqualItem(mk(0, &doc), mk(0, nil)))
	assert.False(t, EqualItems([]Item{mk(0, nil)}, nil))

	p := func(names ...string) Spanned[Pattern] {
		items := make([]Spanned[Pattern], len(names))
		for i, n := range names {
			if n == "_" {
				items[i] = Sp[Pattern](at(i, i+1), Discard{})
			} else {
				items[i] = Sp[Pattern](at(i, i+1), IdentPattern{Name: Ident(n)})
			}
		}

		return Sp[Pattern](at(0, len(names)), ListPattern{Items: items})
	}

	assert.True(t, EqualPattern(p("a", "_"), p("a", "_")))
	assert.False(t, EqualPattern(p("a", "_"), p("a", "b")))
	assert.False(t, EqualPattern(p("a"), p("a", "b")))
}

func TestBinders(t *testing.T) {
	// [a, [b, _], a]
	pat := Sp[Pattern](at(0, 14), ListPattern{Items: []Spanned[Pattern]{
		Sp[Pattern](at(1, 2), IdentPattern{Name: "a"}),
		Sp[Pattern](at(4, 10), ListPattern{Items: []Spanned[Pattern]{
			Sp[Pattern](at(5, 6), IdentPattern{Name: "b"}),
			Sp[Pattern](at(8, 9), Discard{}),
		}}),
		Sp[Pattern](at(12, 13), IdentPattern{Name: "a"}),
	}})

	binders := Binders(pat)
	require.Len(t, binders, 3)
	assert.Equal(t, Ident("b"), binders[1].Value)

	dups := DuplicateBinders(binders)
	require.Len(t, dups, 1)
	assert.Equal(t, at(12, 13), dups[0].Span)
}

func TestWalkSkip(t *testing.T) {
	// [f x, y]
	e := Sp[Expr](at(0, 8), ListExpr{Items: []Spanned[Expr]{
		Call(ident(1, 2, "f"), ident(3, 4, "x")),
		ident(6, 7, "y"),
	}})

	var names []Ident

	WalkExpr(e, func(_ Span, node any) bool {
		switch n := node.(type) {
		case CallExpr:
			return false
		case IdentExpr:
			names = append(names, n.Name)
		}

		return true
	})

	assert.Equal(t, []Ident{"y"}, names)
}
