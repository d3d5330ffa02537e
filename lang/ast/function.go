package ast

import (
	"cmp"

	"github.com/ardnew/tacit/lang/builtin"
)

// FunctionKind discriminates the variants of [FunctionID].
type FunctionKind uint8

const (
	KindNamed FunctionKind = iota
	KindAnonymous
	KindBuiltin1
	KindBuiltin2
)

// FunctionID identifies a callable.
//
// It is comparable, so it can key Go maps directly. The zero value is not a
// valid identity; use one of the constructors.
type FunctionID struct {
	span Span
	name Ident
	kind FunctionKind
	op1  builtin.Op1
	op2  builtin.Op2
}

// Named identifies a user-declared function.
func Named(name Ident) FunctionID {
	return FunctionID{kind: KindNamed, name: NewIdent(string(name))}
}

// Anonymous identifies the function literal written at span.
// Two literals are the same function exactly when their spans are equal.
func Anonymous(span Span) FunctionID {
	return FunctionID{kind: KindAnonymous, span: span}
}

// Builtin1 identifies a unary primitive.
func Builtin1(op builtin.Op1) FunctionID {
	return FunctionID{kind: KindBuiltin1, op1: op}
}

// Builtin2 identifies a binary primitive.
func Builtin2(op builtin.Op2) FunctionID {
	return FunctionID{kind: KindBuiltin2, op2: op}
}

// Kind returns the variant of id.
func (id FunctionID) Kind() FunctionKind { return id.kind }

// Name returns the identifier of a named function.
func (id FunctionID) Name() (Ident, bool) {
	return id.name, id.kind == KindNamed
}

// Span returns the location of an anonymous function literal.
func (id FunctionID) Span() (Span, bool) {
	return id.span, id.kind == KindAnonymous
}

// Op1 returns the primitive of a unary built-in.
func (id FunctionID) Op1() (builtin.Op1, bool) {
	return id.op1, id.kind == KindBuiltin1
}

// Op2 returns the primitive of a binary built-in.
func (id FunctionID) Op2() (builtin.Op2, bool) {
	return id.op2, id.kind == KindBuiltin2
}

// Compare is a total order over function identities: named functions sort
// first, then anonymous, then unary and binary built-ins.
func (id FunctionID) Compare(o FunctionID) int {
	if c := cmp.Compare(id.kind, o.kind); c != 0 {
		return c
	}

	switch id.kind {
	case KindNamed:
		return id.name.Compare(o.name)
	case KindAnonymous:
		return compareSpans(id.span, o.span)
	case KindBuiltin1:
		return cmp.Compare(id.op1, o.op1)
	default:
		return cmp.Compare(id.op2, o.op2)
	}
}

// String returns the display form of id.
func (id FunctionID) String() string {
	switch id.kind {
	case KindNamed:
		return "`" + string(id.name) + "`"
	case KindAnonymous:
		return "fn from " + id.span.String()
	case KindBuiltin1:
		return "`" + id.op1.String() + "`"
	default:
		return "`" + id.op2.String() + "`"
	}
}

// String returns the lowercase name of the variant.
func (k FunctionKind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindAnonymous:
		return "anonymous"
	case KindBuiltin1:
		return "builtin1"
	case KindBuiltin2:
		return "builtin2"
	default:
		return "invalid"
	}
}
