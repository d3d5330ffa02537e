package ast

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Encoding selects which of the two node vocabularies a tree may use.
//
// Combined keeps && and || inside [BinOp], allows any item inside a block and
// has Const, Char, String and FormatString nodes; numerals are [RealLit].
// Separated moves && and || into [LogicExpr], restricts block items to [Let]
// and has [IntLit] and [BoolLit] instead.
type Encoding uint8

const (
	Combined Encoding = iota
	Separated
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = Combined

// ErrUnknownEncoding is returned by [ParseEncoding].
var ErrUnknownEncoding = errors.New("unknown encoding")

// String returns the lowercase name of e.
func (e Encoding) String() string {
	switch e {
	case Combined:
		return "combined"
	case Separated:
		return "separated"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// ParseEncoding returns the encoding named s, ignoring case.
func ParseEncoding(s string) (Encoding, error) {
	for e := range Encodings() {
		if strings.EqualFold(strings.TrimSpace(s), e.String()) {
			return e, nil
		}
	}

	return DefaultEncoding, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// Encodings returns an iterator over the supported encodings.
func Encodings() iter.Seq[Encoding] { return enumerate(Combined, Separated) }

// SeparateLogic reports whether && and || are encoded as [LogicExpr].
func (e Encoding) SeparateLogic() bool { return e == Separated }

// AdmitsExpr reports whether x is a node of encoding e. Only the node itself
// is inspected, not its children.
func (e Encoding) AdmitsExpr(x Expr) bool {
	switch v := x.(type) {
	case LogicExpr, IntLit, BoolLit:
		return e == Separated
	case CharLit, StringLit, FormatStringLit:
		return e == Combined
	case BinExpr:
		return !v.Op.Value.IsBoolean() || e == Combined
	default:
		return true
	}
}

// AdmitsItem reports whether it may appear in encoding e, at the top level
// of a program or nested inside a block.
func (e Encoding) AdmitsItem(it Item, nested bool) bool {
	switch it.(type) {
	case Const:
		return e == Combined
	case Let:
		return true
	default:
		return e == Combined || !nested
	}
}

// ErrNotRepresentable is returned by [Convert] for nodes without a
// counterpart in the target encoding.
var ErrNotRepresentable = errors.New("not representable in encoding")

// Convert rewrites items into encoding to. Boolean operators move between
// [BinExpr] and [LogicExpr], [IntLit] becomes [RealLit], and [BoolLit]
// becomes the identifier true or false. Nodes without a counterpart yield an
// error wrapping [ErrNotRepresentable].
func Convert(items []Item, to Encoding) ([]Item, error) {
	c := converter{to: to}
	out := make([]Item, len(items))

	for i, it := range items {
		out[i] = c.item(it, false)
	}

	return out, errors.Join(c.errs...)
}

type converter struct {
	errs []error
	to   Encoding
}

func (c *converter) fail(span Span, what string) {
	c.errs = append(c.errs, fmt.Errorf(
		"%w %s: %s at %s", ErrNotRepresentable, c.to, what, span,
	))
}

func (c *converter) item(it Item, nested bool) Item {
	if !c.to.AdmitsItem(it, nested) {
		c.fail(it.Span(), fmt.Sprintf("%T", it))
	}

	switch v := it.(type) {
	case FunctionDef:
		v.Func = c.fn(v.Func)

		return v
	case ExprItem:
		return ExprItem{Expr: c.expr(v.Expr)}
	case Let:
		return Let{Pattern: v.Pattern, Expr: c.expr(v.Expr)}
	case Const:
		return Const{Name: v.Name, Expr: c.expr(v.Expr)}
	}

	return it
}

func (c *converter) fn(f Func) Func {
	f.Params = append([]Spanned[Ident](nil), f.Params...)
	f.Body = c.block(f.Body)

	return f
}

func (c *converter) block(b Block) Block {
	items := make([]Item, len(b.Items))
	for i, it := range b.Items {
		items[i] = c.item(it, true)
	}

	return Block{Items: items, Expr: c.expr(b.Expr)}
}

func (c *converter) exprs(xs []Spanned[Expr]) []Spanned[Expr] {
	out := make([]Spanned[Expr], len(xs))
	for i, x := range xs {
		out[i] = c.expr(x)
	}

	return out
}

func (c *converter) expr(e Spanned[Expr]) Spanned[Expr] {
	sp := e.Span

	switch v := Of(e.Value).(type) {
	case IfExpr:
		return Sp[Expr](sp, IfExpr{
			Cond:    c.expr(v.Cond),
			IfTrue:  c.block(v.IfTrue),
			IfFalse: c.block(v.IfFalse),
		})
	case CallExpr:
		return Sp[Expr](sp, CallExpr{Func: c.expr(v.Func), Arg: c.expr(v.Arg)})
	case BinExpr:
		left, right := c.expr(v.Left), c.expr(v.Right)
		if lop, ok := v.Op.Value.LogicOp(); ok && c.to.SeparateLogic() {
			return Sp[Expr](sp, LogicExpr{
				Left: left, Op: Sp(v.Op.Span, lop), Right: right,
			})
		}

		return Sp[Expr](sp, BinExpr{Left: left, Op: v.Op, Right: right})
	case LogicExpr:
		left, right := c.expr(v.Left), c.expr(v.Right)
		if !c.to.SeparateLogic() {
			return Sp[Expr](sp, BinExpr{
				Left: left, Op: Sp(v.Op.Span, v.Op.Value.BinOp()), Right: right,
			})
		}

		return Sp[Expr](sp, LogicExpr{Left: left, Op: v.Op, Right: right})
	case PipeExpr:
		return Sp[Expr](sp, PipeExpr{
			Left: c.expr(v.Left), Op: v.Op, Right: c.expr(v.Right),
		})
	case IntLit:
		if c.to == Combined {
			return Sp[Expr](sp, RealLit(v))
		}
	case RealLit:
		if c.to == Separated && isIntegral(v.Text) {
			return Sp[Expr](sp, IntLit(v))
		}
	case BoolLit:
		if c.to == Combined {
			name := "false"
			if v.Value {
				name = "true"
			}

			return Sp[Expr](sp, IdentExpr{Name: Ident(name)})
		}
	case IdentExpr:
		if c.to == Separated && (v.Name == "true" || v.Name == "false") {
			return Sp[Expr](sp, BoolLit{Value: v.Name == "true"})
		}
	case CharLit, StringLit, FormatStringLit:
		if !c.to.AdmitsExpr(v) {
			c.fail(sp, fmt.Sprintf("%T", v))
		}
	case ListExpr:
		return Sp[Expr](sp, ListExpr{Items: c.exprs(v.Items)})
	case ArrayExpr:
		return Sp[Expr](sp, ArrayExpr{Items: c.exprs(v.Items)})
	case ParenedExpr:
		return Sp[Expr](sp, ParenedExpr{Inner: c.expr(v.Inner)})
	case FuncExpr:
		return Sp[Expr](sp, FuncExpr{Func: c.fn(v.Func)})
	}

	return e
}

// isIntegral reports whether a numeral has neither fraction nor exponent.
func isIntegral(text string) bool {
	return text != "" && !strings.ContainsAny(text, ".eE")
}
