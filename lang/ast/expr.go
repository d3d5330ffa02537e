package ast

// Expr is an expression node. The zero expression is [Unit]; a nil Expr is
// read as Unit by [Of].
//
// Children are owned by their parent and are never shared between trees.
type Expr interface {
	exprNode()
}

// Unit is the empty value.
type Unit struct{}

// IfExpr selects IfTrue or IfFalse by Cond.
type IfExpr struct {
	Cond    Spanned[Expr]
	IfTrue  Block
	IfFalse Block
}

// CallExpr applies Func to a single argument. Multi-argument application is a
// chain of CallExpr nested through Func; see [Uncurry].
type CallExpr struct {
	Func Spanned[Expr]
	Arg  Spanned[Expr]
}

// BinExpr is a binary operation.
type BinExpr struct {
	Left  Spanned[Expr]
	Op    Spanned[BinOp]
	Right Spanned[Expr]
}

// PipeExpr is directional application, kept apart from CallExpr so printers
// and diagnostics see what was written.
type PipeExpr struct {
	Left  Spanned[Expr]
	Op    Spanned[PipeOp]
	Right Spanned[Expr]
}

// LogicExpr is a short-circuit boolean operation of the separated encoding.
type LogicExpr struct {
	Left  Spanned[Expr]
	Op    Spanned[LogicOp]
	Right Spanned[Expr]
}

// RealLit is a numeral kept in its source form.
type RealLit struct{ Text string }

// IntLit is an integral numeral kept in its source form.
type IntLit struct{ Text string }

// CharLit is a character literal with escapes resolved.
type CharLit struct{ Value rune }

// StringLit is a string literal with escapes resolved.
type StringLit struct{ Value string }

// FormatStringLit alternates literal text (even indices) with the source
// text of interpolated expressions (odd indices). At holds the location of
// each interpolated expression in order, when known.
type FormatStringLit struct {
	Segments []string
	At       []Loc
}

// BoolLit is a boolean literal.
type BoolLit struct{ Value bool }

// IdentExpr refers to a variable or function.
type IdentExpr struct{ Name Ident }

// Placeholder is a syntactic hole; its meaning is given by the enclosing
// construct.
type Placeholder struct{}

// ListExpr is a list constructor.
type ListExpr struct{ Items []Spanned[Expr] }

// ArrayExpr is an array constructor.
type ArrayExpr struct{ Items []Spanned[Expr] }

// ParenedExpr records explicit parentheses. Evaluators treat it as identity.
type ParenedExpr struct{ Inner Spanned[Expr] }

// FuncExpr is an anonymous function literal.
type FuncExpr struct{ Func Func }

func (Unit) exprNode()            {}
func (IfExpr) exprNode()          {}
func (CallExpr) exprNode()        {}
func (BinExpr) exprNode()         {}
func (PipeExpr) exprNode()        {}
func (LogicExpr) exprNode()       {}
func (RealLit) exprNode()         {}
func (IntLit) exprNode()          {}
func (CharLit) exprNode()         {}
func (StringLit) exprNode()       {}
func (FormatStringLit) exprNode() {}
func (BoolLit) exprNode()         {}
func (IdentExpr) exprNode()       {}
func (Placeholder) exprNode()     {}
func (ListExpr) exprNode()        {}
func (ArrayExpr) exprNode()       {}
func (ParenedExpr) exprNode()     {}
func (FuncExpr) exprNode()        {}

// DefaultExpr returns the default expression, [Unit].
func DefaultExpr() Expr { return Unit{} }

// Of returns e, or Unit if e is nil.
func Of(e Expr) Expr {
	if e == nil {
		return Unit{}
	}

	return e
}

// Call returns the application of fn to arg, spanning both.
func Call(fn, arg Spanned[Expr]) Spanned[Expr] {
	return Sp[Expr](fn.Span.Merge(arg.Span), CallExpr{Func: fn, Arg: arg})
}

// Bin returns the binary operation of op on left and right, spanning both
// operands.
func Bin(left Spanned[Expr], op Spanned[BinOp], right Spanned[Expr]) Spanned[Expr] {
	return Sp[Expr](
		left.Span.Merge(right.Span),
		BinExpr{Left: left, Op: op, Right: right},
	)
}
