package lang

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/tacit/lang/ast"
)

// Check verifies the structural invariants of every item in p:
//
//   - spans are non-empty and lie within the span of their item
//   - a function definition has identity Named(name)
//   - an anonymous function is identified by the span of its literal
//   - every block has a tail expression
//   - binders of a pattern or parameter list are distinct
//   - every node belongs to the program's encoding
//
// Trees returned by the parser always pass. Check is meant for trees built
// or rewritten by other code.
func Check(p *Program) error {
	c := checker{enc: p.Encoding}

	for _, it := range p.Items {
		c.check(it)
	}

	if len(c.diags) > 0 {
		p.logger.Debug("check failed", slog.Int("diagnostic_count", len(c.diags)))
	}

	return c.diags.Err()
}

type checker struct {
	diags Diagnostics
	enc   ast.Encoding
}

// check verifies one top-level item. Merging spans of different sources
// panics, so a tree mixing sources is reported rather than walked.
func (c *checker) check(it ast.Item) {
	defer func() {
		if r := recover(); r != nil {
			c.fail(ast.Span{}, "%v", r)
		}
	}()

	c.item(it, false)
	c.contained(it)
}

func (c *checker) fail(span ast.Span, format string, args ...any) {
	c.diags = append(c.diags, ErrInvalidTree.At(span).Wrap(fmt.Errorf(format, args...)))
}

func (c *checker) span(s ast.Span, what string) {
	if !s.Valid() {
		c.fail(s, "%s has an empty span", what)
	}
}

// contained reports every descendant of it whose span escapes it.
func (c *checker) contained(it ast.Item) {
	outer := it.Span()

	ast.Walk(it, func(span ast.Span, node any) bool {
		if !outer.Contains(span) {
			c.fail(span, "%T outside the span of its item at %s", node, outer)
		}

		return true
	})
}

func (c *checker) binders(names []ast.Spanned[ast.Ident]) {
	for _, name := range names {
		c.ident(name)
	}

	for _, dup := range ast.DuplicateBinders(names) {
		c.fail(dup.Span, "%s bound more than once", dup.Value)
	}
}

func (c *checker) ident(name ast.Spanned[ast.Ident]) {
	c.span(name.Span, "identifier")

	if !ast.IsIdent(string(name.Value)) {
		c.fail(name.Span, "invalid identifier %q", name.Value)
	}
}

func (c *checker) item(it ast.Item, nested bool) {
	if !c.enc.AdmitsItem(it, nested) {
		c.fail(it.Span(), "%s not allowed in %s", itemKind(it), c.enc)
	}

	switch v := it.(type) {
	case ast.FunctionDef:
		c.ident(v.Name)

		if v.Func.ID != ast.Named(v.Name.Value) {
			c.fail(v.Name.Span, "function %s has identity %s", v.Name.Value, v.Func.ID)
		}

		c.fn(v.Func)
	case ast.ExprItem:
		c.expr(v.Expr)
	case ast.Let:
		c.span(v.Pattern.Span, "pattern")
		c.binders(ast.Binders(v.Pattern))
		c.expr(v.Expr)
	case ast.Const:
		c.ident(v.Name)
		c.expr(v.Expr)
	default:
		c.fail(ast.Span{}, "unknown item %T", it)
	}
}

func (c *checker) fn(f ast.Func) {
	c.binders(f.Params)
	c.block(f.Body)
}

func (c *checker) block(b ast.Block) {
	for _, it := range b.Items {
		c.item(it, true)
	}

	if b.Expr.Value == nil {
		c.fail(b.Span(), "block has no tail expression")

		return
	}

	c.expr(b.Expr)
}

func (c *checker) expr(e ast.Spanned[ast.Expr]) {
	c.span(e.Span, "expression")

	if !c.enc.AdmitsExpr(e.Value) {
		c.fail(e.Span, "%T not allowed in %s", e.Value, c.enc)
	}

	switch v := e.Value.(type) {
	case nil:
		c.fail(e.Span, "missing expression")
	case ast.IfExpr:
		c.expr(v.Cond)
		c.block(v.IfTrue)
		c.block(v.IfFalse)
	case ast.CallExpr:
		c.expr(v.Func)
		c.expr(v.Arg)
	case ast.BinExpr:
		c.expr(v.Left)
		c.expr(v.Right)
	case ast.PipeExpr:
		c.expr(v.Left)
		c.expr(v.Right)
	case ast.LogicExpr:
		c.expr(v.Left)
		c.expr(v.Right)
	case ast.FormatStringLit:
		if len(v.Segments)%2 == 0 {
			c.fail(e.Span, "format string has %d segments", len(v.Segments))
		}
	case ast.IdentExpr:
		c.ident(ast.Sp(e.Span, v.Name))
	case ast.ListExpr:
		for _, item := range v.Items {
			c.expr(item)
		}
	case ast.ArrayExpr:
		for _, item := range v.Items {
			c.expr(item)
		}
	case ast.ParenedExpr:
		c.expr(v.Inner)
	case ast.FuncExpr:
		if span, ok := v.Func.ID.Span(); !ok || span != e.Span {
			c.fail(e.Span, "function literal has identity %s", v.Func.ID)
		}

		c.fn(v.Func)
	}
}
