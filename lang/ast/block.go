package ast

// Block is an ordered sequence of items followed by a mandatory tail
// expression, which is the value of the block.
type Block struct {
	Items []Item
	Expr  Spanned[Expr]
}

// BlockOf returns the block with no items whose tail is e.
func BlockOf(e Spanned[Expr]) Block {
	return Block{Expr: e}
}

// NewBlock returns a block of items ending in tail. When tail is nil the
// block ends in a Unit located at end.
func NewBlock(items []Item, tail *Spanned[Expr], end Span) Block {
	b := Block{Items: items}

	if tail != nil {
		b.Expr = *tail
	} else {
		b.Expr = Sp(end, DefaultExpr())
	}

	b.Expr.Value = Of(b.Expr.Value)

	return b
}

// Span returns the span from the first item to the tail.
func (b Block) Span() Span {
	if len(b.Items) == 0 {
		return b.Expr.Span
	}

	return b.Items[0].Span().Merge(b.Expr.Span)
}

// Func is a function: its identity, parameters and body.
// An empty parameter list declares a nullary function.
type Func struct {
	ID     FunctionID
	Params []Spanned[Ident]
	Body   Block
}
