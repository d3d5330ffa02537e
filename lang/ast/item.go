package ast

import "fmt"

// Item is a declaration or statement: [FunctionDef], [ExprItem], [Let] or
// [Const].
type Item interface {
	// Span returns the span derived from the item's contents.
	Span() Span
	itemNode()
}

// FunctionDef declares a named function.
type FunctionDef struct {
	Doc  *Spanned[string]
	Name Spanned[Ident]
	Func Func
}

// ExprItem is an expression in item position.
type ExprItem struct {
	Expr Spanned[Expr]
}

// Let binds every identifier in Pattern.
type Let struct {
	Pattern Spanned[Pattern]
	Expr    Spanned[Expr]
}

// Const binds Name to a compile-time constant.
type Const struct {
	Name Spanned[Ident]
	Expr Spanned[Expr]
}

// NewFunctionDef returns the definition of fn under name.
// It panics unless fn.ID is Named(name.Value).
func NewFunctionDef(doc *Spanned[string], name Spanned[Ident], fn Func) FunctionDef {
	if fn.ID != Named(name.Value) {
		panic(fmt.Sprintf(
			"ast: function definition %s has identity %s",
			Named(name.Value), fn.ID,
		))
	}

	return FunctionDef{Doc: doc, Name: name, Func: fn}
}

// Span merges the name with the body's tail.
func (d FunctionDef) Span() Span { return d.Name.Span.Merge(d.Func.Body.Expr.Span) }

// Span returns the span of the expression.
func (e ExprItem) Span() Span { return e.Expr.Span }

// Span merges the pattern with the bound expression.
func (l Let) Span() Span { return l.Pattern.Span.Merge(l.Expr.Span) }

// Span merges the name with the bound expression.
func (c Const) Span() Span { return c.Name.Span.Merge(c.Expr.Span) }

func (FunctionDef) itemNode() {}
func (ExprItem) itemNode()    {}
func (Let) itemNode()         {}
func (Const) itemNode()       {}
