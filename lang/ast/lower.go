package ast

// Application is the multi-argument view of a call: Func applied to Args in
// left-to-right order.
type Application struct {
	Func Spanned[Expr]
	Args []Spanned[Expr]
}

// Uncurry flattens a chain of unary calls. For an expression that is not a
// call, the result has no arguments.
func Uncurry(e Spanned[Expr]) Application {
	var rev []Spanned[Expr]

	for {
		call, ok := e.Value.(CallExpr)
		if !ok {
			break
		}

		rev = append(rev, call.Arg)
		e = call.Func
	}

	args := make([]Spanned[Expr], len(rev))
	for i, arg := range rev {
		args[len(rev)-1-i] = arg
	}

	return Application{Func: e, Args: args}
}

// Curry rebuilds the chain of unary calls. Each call spans its function and
// its argument. Curry(Uncurry(e)) is e.
func (a Application) Curry() Spanned[Expr] {
	e := a.Func
	for _, arg := range a.Args {
		e = Call(e, arg)
	}

	return e
}

// PipeToCall returns the call a pipe denotes: x |> f and f <| x both apply
// f to x.
func PipeToCall(span Span, p PipeExpr) Spanned[Expr] {
	fn, arg := p.Right, p.Left
	if p.Op.Value == Backward {
		fn, arg = p.Left, p.Right
	}

	return Sp[Expr](span, CallExpr{Func: fn, Arg: arg})
}

// StripParens removes any number of enclosing [ParenedExpr] from e.
func StripParens(e Spanned[Expr]) Spanned[Expr] {
	for {
		p, ok := e.Value.(ParenedExpr)
		if !ok {
			return e
		}

		e = p.Inner
	}
}
