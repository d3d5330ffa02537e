package lang

import (
	"strconv"

	"github.com/ardnew/tacit/lang/ast"
)

// Builder provides a programmatic API for constructing trees without parsing
// source text. This is useful for generating tacit programs or for testing.
//
// Every leaf receives a fresh span of a synthetic source, laid out left to
// right in the order the leaves are built, and composite nodes merge the spans
// of their parts. Building the operands of a node before the node keeps every
// span inside the span of its item.
//
// Example:
//
//	b := lang.NewBuilder("gen")
//	prog := b.Program(
//	    b.Fn("inc", []string{"x"},
//	        b.Body(b.Bin(b.Ident("x"), ast.Add, b.Real("1")))),
//	)
type Builder struct {
	source string
	offset int
}

// NewBuilder returns a builder whose spans name source.
func NewBuilder(source string) *Builder {
	return &Builder{source: source}
}

// span allocates the next synthetic span covering text.
func (b *Builder) span(text string) ast.Span {
	width := max(len(text), 1)

	start := ast.Loc{Offset: b.offset, Line: 1, Column: b.offset + 1}
	b.offset += width

	end := ast.Loc{Offset: b.offset, Line: 1, Column: b.offset + 1}
	b.offset++ // gap

	return ast.MakeSpan(b.source, start, end)
}

func (b *Builder) name(s string) ast.Spanned[ast.Ident] {
	return ast.Sp(b.span(s), ast.NewIdent(s))
}

// Unit returns the unit value.
func (b *Builder) Unit() ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span("()"), ast.Unit{})
}

// Real returns a number literal of the combined encoding.
func (b *Builder) Real(text string) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(text), ast.RealLit{Text: text})
}

// Int returns an integer literal of the separated encoding.
func (b *Builder) Int(text string) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(text), ast.IntLit{Text: text})
}

// Char returns a character literal.
func (b *Builder) Char(r rune) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(strconv.QuoteRune(r)), ast.CharLit{Value: r})
}

// String returns a string literal.
func (b *Builder) String(s string) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(strconv.Quote(s)), ast.StringLit{Value: s})
}

// Format returns a format string of alternating literal text and
// interpolated source, starting and ending with literal text.
func (b *Builder) Format(segments ...string) ast.Spanned[ast.Expr] {
	lit := ast.FormatStringLit{Segments: segments}

	return ast.Sp[ast.Expr](b.span(FormatExpr(ast.Sp[ast.Expr](ast.Span{}, lit))), lit)
}

// Bool returns a boolean literal of the separated encoding.
func (b *Builder) Bool(v bool) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(strconv.FormatBool(v)), ast.BoolLit{Value: v})
}

// Ident returns a reference to name.
func (b *Builder) Ident(name string) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span(name), ast.IdentExpr{Name: ast.NewIdent(name)})
}

// Placeholder returns the hole of a partial application.
func (b *Builder) Placeholder() ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.span("_"), ast.Placeholder{})
}

func (b *Builder) enclose(open string, items []ast.Spanned[ast.Expr]) ast.Span {
	span := b.span(open)

	for _, item := range items {
		span = span.Merge(item.Span)
	}

	return span.Merge(b.span("]"))
}

// List returns a list of items.
func (b *Builder) List(items ...ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.enclose("[", items), ast.ListExpr{Items: items})
}

// Array returns an array of items.
func (b *Builder) Array(items ...ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	return ast.Sp[ast.Expr](b.enclose("#[", items), ast.ArrayExpr{Items: items})
}

// Paren returns inner in parentheses.
func (b *Builder) Paren(inner ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	span := b.span("(").Merge(inner.Span).Merge(b.span(")"))

	return ast.Sp[ast.Expr](span, ast.ParenedExpr{Inner: inner})
}

// Call applies fn to each of args in turn.
func (b *Builder) Call(fn ast.Spanned[ast.Expr], args ...ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	return ast.Application{Func: fn, Args: args}.Curry()
}

// Bin returns left op right.
func (b *Builder) Bin(left ast.Spanned[ast.Expr], op ast.BinOp, right ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	o := ast.Sp(b.span(op.String()), op)
	e := ast.Bin(left, o, right)
	e.Span = e.Span.Merge(o.Span)

	return e
}

// Pipe returns left op right.
func (b *Builder) Pipe(left ast.Spanned[ast.Expr], op ast.PipeOp, right ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	o := ast.Sp(b.span(op.String()), op)

	return ast.Sp[ast.Expr](left.Span.Merge(right.Span).Merge(o.Span),
		ast.PipeExpr{Left: left, Op: o, Right: right})
}

// Logic returns left op right in the separated encoding.
func (b *Builder) Logic(left ast.Spanned[ast.Expr], op ast.LogicOp, right ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	o := ast.Sp(b.span(op.String()), op)

	return ast.Sp[ast.Expr](left.Span.Merge(right.Span).Merge(o.Span),
		ast.LogicExpr{Left: left, Op: o, Right: right})
}

// If returns a conditional.
func (b *Builder) If(cond ast.Spanned[ast.Expr], then, els ast.Block) ast.Spanned[ast.Expr] {
	span := b.span("if").Merge(cond.Span).Merge(then.Span()).Merge(els.Span())

	return ast.Sp[ast.Expr](span, ast.IfExpr{Cond: cond, IfTrue: then, IfFalse: els})
}

func (b *Builder) params(names []string) []ast.Spanned[ast.Ident] {
	params := make([]ast.Spanned[ast.Ident], len(names))
	for i, name := range names {
		params[i] = b.name(name)
	}

	return params
}

// Lambda returns a function literal identified by its span.
func (b *Builder) Lambda(params []string, body ast.Block) ast.Spanned[ast.Expr] {
	span := b.span(`\`).Merge(body.Span())

	ps := b.params(params)
	for _, p := range ps {
		span = span.Merge(p.Span)
	}

	return ast.Sp[ast.Expr](span, ast.FuncExpr{Func: ast.Func{
		ID:     ast.Anonymous(span),
		Params: ps,
		Body:   body,
	}})
}

// Body returns a block of items ending in tail. The tail must be built
// before the items for the block to lie inside its item.
func (b *Builder) Body(tail ast.Spanned[ast.Expr], items ...ast.Item) ast.Block {
	return ast.NewBlock(items, &tail, tail.Span)
}

// Fn returns the definition of a named function.
func (b *Builder) Fn(name string, params []string, body ast.Block) ast.FunctionDef {
	ps := b.params(params)
	n := b.name(name)

	return ast.NewFunctionDef(nil, n, ast.Func{
		ID:     ast.Named(n.Value),
		Params: ps,
		Body:   body,
	})
}

// Doc attaches a doc comment to def.
func (b *Builder) Doc(doc string, def ast.FunctionDef) ast.FunctionDef {
	d := ast.Sp(b.span("## "+doc), doc)
	def.Doc = &d

	return def
}

// Expr returns e as an item.
func (b *Builder) Expr(e ast.Spanned[ast.Expr]) ast.ExprItem {
	return ast.ExprItem{Expr: e}
}

// Let binds pattern to e.
func (b *Builder) Let(pattern ast.Spanned[ast.Pattern], e ast.Spanned[ast.Expr]) ast.Let {
	return ast.Let{Pattern: pattern, Expr: e}
}

// Const binds name to e.
func (b *Builder) Const(name string, e ast.Spanned[ast.Expr]) ast.Const {
	return ast.Const{Name: b.name(name), Expr: e}
}

// Bind returns a pattern binding name.
func (b *Builder) Bind(name string) ast.Spanned[ast.Pattern] {
	return ast.Sp[ast.Pattern](b.span(name), ast.IdentPattern{Name: ast.NewIdent(name)})
}

// Discard returns the pattern that binds nothing.
func (b *Builder) Discard() ast.Spanned[ast.Pattern] {
	return ast.Sp[ast.Pattern](b.span("_"), ast.Discard{})
}

// Destructure returns a list pattern.
func (b *Builder) Destructure(items ...ast.Spanned[ast.Pattern]) ast.Spanned[ast.Pattern] {
	span := b.span("[")

	for _, item := range items {
		span = span.Merge(item.Span)
	}

	span = span.Merge(b.span("]"))

	return ast.Sp[ast.Pattern](span, ast.ListPattern{Items: items})
}

// Program returns a program of items whose source is the builder's.
func (b *Builder) Program(items ...ast.Item) *Program {
	return NewProgram(items, WithSource(b.source))
}
