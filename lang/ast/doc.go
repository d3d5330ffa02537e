// Package ast defines the syntax tree of the tacit language.
//
// Every node that came from source text is wrapped in [Spanned], which
// records where it was written. Spans are metadata: structural equality
// ([EqualExpr], [EqualItem]) and the comparison helpers ignore them.
//
// Expressions, items and patterns are closed sums. Each variant is a plain
// struct implementing the sum's interface, and consumers dispatch with a
// type switch:
//
//	switch e := x.Value.(type) {
//	case ast.CallExpr:
//		...
//	case ast.BinExpr:
//		...
//	}
//
// A tree is built for one [Encoding]. The encodings differ in how boolean
// operators, numerals and block items are represented; [Convert] moves a
// tree between them where it can.
package ast
