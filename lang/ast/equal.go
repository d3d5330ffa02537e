package ast

import "slices"

// EqualItem reports whether a and b are structurally equal. Spans are
// ignored everywhere, including the locations identifying anonymous
// functions.
func EqualItem(a, b Item) bool {
	switch x := a.(type) {
	case FunctionDef:
		y, ok := b.(FunctionDef)

		return ok && equalDoc(x.Doc, y.Doc) && Equal(x.Name, y.Name) &&
			equalFunc(x.Func, y.Func)
	case ExprItem:
		y, ok := b.(ExprItem)

		return ok && EqualExpr(x.Expr, y.Expr)
	case Let:
		y, ok := b.(Let)

		return ok && EqualPattern(x.Pattern, y.Pattern) && EqualExpr(x.Expr, y.Expr)
	case Const:
		y, ok := b.(Const)

		return ok && Equal(x.Name, y.Name) && EqualExpr(x.Expr, y.Expr)
	}

	return a == nil && b == nil
}

// EqualItems reports whether a and b hold pairwise equal items.
func EqualItems(a, b []Item) bool { return slices.EqualFunc(a, b, EqualItem) }

// EqualBlock reports whether a and b are structurally equal.
func EqualBlock(a, b Block) bool {
	return EqualItems(a.Items, b.Items) && EqualExpr(a.Expr, b.Expr)
}

// EqualPattern reports whether a and b are structurally equal.
func EqualPattern(a, b Spanned[Pattern]) bool {
	switch x := a.Value.(type) {
	case ListPattern:
		y, ok := b.Value.(ListPattern)

		return ok && slices.EqualFunc(x.Items, y.Items, EqualPattern)
	default:
		return a.Value == b.Value
	}
}

// EqualExpr reports whether a and b are structurally equal. A nil
// expression equals Unit.
func EqualExpr(a, b Spanned[Expr]) bool {
	l, r := Of(a.Value), Of(b.Value)

	switch x := l.(type) {
	case IfExpr:
		y, ok := r.(IfExpr)

		return ok && EqualExpr(x.Cond, y.Cond) &&
			EqualBlock(x.IfTrue, y.IfTrue) && EqualBlock(x.IfFalse, y.IfFalse)
	case CallExpr:
		y, ok := r.(CallExpr)

		return ok && EqualExpr(x.Func, y.Func) && EqualExpr(x.Arg, y.Arg)
	case BinExpr:
		y, ok := r.(BinExpr)

		return ok && Equal(x.Op, y.Op) &&
			EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case PipeExpr:
		y, ok := r.(PipeExpr)

		return ok && Equal(x.Op, y.Op) &&
			EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case LogicExpr:
		y, ok := r.(LogicExpr)

		return ok && Equal(x.Op, y.Op) &&
			EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case FormatStringLit:
		y, ok := r.(FormatStringLit)

		return ok && slices.Equal(x.Segments, y.Segments)
	case ListExpr:
		y, ok := r.(ListExpr)

		return ok && slices.EqualFunc(x.Items, y.Items, EqualExpr)
	case ArrayExpr:
		y, ok := r.(ArrayExpr)

		return ok && slices.EqualFunc(x.Items, y.Items, EqualExpr)
	case ParenedExpr:
		y, ok := r.(ParenedExpr)

		return ok && EqualExpr(x.Inner, y.Inner)
	case FuncExpr:
		y, ok := r.(FuncExpr)

		return ok && equalFunc(x.Func, y.Func)
	default:
		// Remaining variants hold only comparable leaves.
		return l == r
	}
}

func equalFunc(a, b Func) bool {
	return equalID(a.ID, b.ID) &&
		slices.EqualFunc(a.Params, b.Params, Equal[Ident]) &&
		EqualBlock(a.Body, b.Body)
}

func equalID(a, b FunctionID) bool {
	if a.Kind() == KindAnonymous {
		return b.Kind() == KindAnonymous
	}

	return a == b
}

func equalDoc(a, b *Spanned[string]) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Value == b.Value
}
