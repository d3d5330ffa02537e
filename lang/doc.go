// Package lang parses, checks, prints and partially evaluates tacit, a small
// point-free expression language. The syntax tree it produces is defined in
// package [github.com/ardnew/tacit/lang/ast].
//
// # Grammar
//
// Informal EBNF. Items are separated by ';' or by a newline that follows a
// token able to end an item, outside of parentheses and brackets.
//
//	Program  → { Item Sep }
//	Item     → FnDef | Let | Const | Expr
//	FnDef    → [DocComment] 'fn' Ident { Ident } '=' Body
//	Let      → 'let' Pattern '=' Expr
//	Const    → 'const' Ident '=' Expr
//	Pattern  → Ident | '_' | '[' [ Pattern { ',' Pattern } ] ']'
//	Body     → '{' { Item Sep } '}' | Expr
//	Expr     → Binary { ('|>' | '<|') Binary }
//	Binary   → App { BinOp App }
//	App      → Atom { Atom }
//	Atom     → Literal | Ident | '_' | '(' [ Expr ] ')'
//	         | ('[' | '#[') [ Expr { ',' Expr } [','] ] ']'
//	         | '\' { Ident } '->' Body
//	         | 'if' Expr 'then' Body 'else' Body
//
// Binary operators, loosest first: '||'; '&&'; comparisons; the combinators
// '<*' '*>' '<:' ':>'; '+' '-'; '*' '/'; and the right-associative
// compositions '.' '.:'. Application binds tighter than any of them, and
// '|>' binds loosest.
//
// A comment runs from '#' to the end of the line. A comment starting with
// '##' at the beginning of a line documents the function defined next.
// Format strings interpolate expressions in braces: $"sum = {a + b}".
//
// # Encodings
//
// The same source can be parsed into two node vocabularies. [ast.Combined],
// the default, reads numbers as reals and '&&' '||' as binary operators.
// [ast.Separated] distinguishes integers from reals, has boolean literals,
// and keeps short-circuit operators apart as [ast.LogicExpr].
//
// # Example
//
//	## Sum of squares.
//	fn sumsq xs = xs |> map sq |> fold add 0
//	fn sq = \x -> x * x
//	const limit = pow 2 10
//	let [lo, hi] = [0, limit]
//	sumsq [lo, hi]
//
// Parse errors do not stop parsing. [ParseString] returns the recovered
// program together with [Diagnostics]:
//
//	prog, err := lang.ParseString(ctx, src, lang.WithSource("main.tc"))
//	var diags lang.Diagnostics
//	if errors.As(err, &diags) {
//	    for _, d := range diags {
//	        fmt.Println(d.Snippet(src))
//	    }
//	}
package lang
