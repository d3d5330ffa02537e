package ast

// Visitor is called for each spanned node in pre-order. The node is one of
// [Item], [Expr], [Pattern], [Ident], [BinOp], [PipeOp] or [LogicOp].
// Returning false skips the children of node.
type Visitor func(span Span, node any) bool

// Walk visits it and every spanned node beneath it. Doc comments are not
// visited.
func Walk(it Item, v Visitor) {
	if !v(it.Span(), it) {
		return
	}

	switch n := it.(type) {
	case FunctionDef:
		v(n.Name.Span, n.Name.Value)
		walkFunc(n.Func, v)
	case ExprItem:
		WalkExpr(n.Expr, v)
	case Let:
		walkPattern(n.Pattern, v)
		WalkExpr(n.Expr, v)
	case Const:
		v(n.Name.Span, n.Name.Value)
		WalkExpr(n.Expr, v)
	}
}

// WalkBlock visits the items and tail of b.
func WalkBlock(b Block, v Visitor) {
	for _, it := range b.Items {
		Walk(it, v)
	}

	WalkExpr(b.Expr, v)
}

// WalkExpr visits e and every spanned node beneath it.
func WalkExpr(e Spanned[Expr], v Visitor) {
	x := Of(e.Value)
	if !v(e.Span, x) {
		return
	}

	switch n := x.(type) {
	case IfExpr:
		WalkExpr(n.Cond, v)
		WalkBlock(n.IfTrue, v)
		WalkBlock(n.IfFalse, v)
	case CallExpr:
		WalkExpr(n.Func, v)
		WalkExpr(n.Arg, v)
	case BinExpr:
		WalkExpr(n.Left, v)
		v(n.Op.Span, n.Op.Value)
		WalkExpr(n.Right, v)
	case PipeExpr:
		WalkExpr(n.Left, v)
		v(n.Op.Span, n.Op.Value)
		WalkExpr(n.Right, v)
	case LogicExpr:
		WalkExpr(n.Left, v)
		v(n.Op.Span, n.Op.Value)
		WalkExpr(n.Right, v)
	case ListExpr:
		for _, item := range n.Items {
			WalkExpr(item, v)
		}
	case ArrayExpr:
		for _, item := range n.Items {
			WalkExpr(item, v)
		}
	case ParenedExpr:
		WalkExpr(n.Inner, v)
	case FuncExpr:
		walkFunc(n.Func, v)
	}
}

func walkFunc(f Func, v Visitor) {
	for _, p := range f.Params {
		v(p.Span, p.Value)
	}

	WalkBlock(f.Body, v)
}

func walkPattern(p Spanned[Pattern], v Visitor) {
	if !v(p.Span, p.Value) {
		return
	}

	if list, ok := p.Value.(ListPattern); ok {
		for _, item := range list.Items {
			walkPattern(item, v)
		}
	}
}
