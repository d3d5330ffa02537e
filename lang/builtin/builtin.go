// Package builtin enumerates the primitive operations a tacit program may
// refer to by name without declaring them.
package builtin

//go:generate go tool stringer --linecomment --type Op1,Op2 --output op_string.go

import "iter"

// Op1 is a primitive operation of one argument.
type Op1 uint8

const (
	Not     Op1 = iota // not
	Neg                // neg
	Abs                // abs
	Sqrt               // sqrt
	Floor              // floor
	Ceil               // ceil
	Len                // len
	Reverse            // reverse
	First              // first
	Last               // last
)

// Op2 is a primitive operation of two arguments.
type Op2 uint8

const (
	Add Op2 = iota // +
	Sub            // -
	Mul            // *
	Div            // /
	Mod            // %
	Pow            // ^
	Eq             // ==
	Ne             // !=
	Lt             // <
	Le             // <=
	Gt             // >
	Ge             // >=
	Min            // min
	Max            // max
)

var op2Names = [...]string{
	Add: "add",
	Sub: "sub",
	Mul: "mul",
	Div: "div",
	Mod: "mod",
	Pow: "pow",
	Eq:  "eq",
	Ne:  "ne",
	Lt:  "lt",
	Le:  "le",
	Gt:  "gt",
	Ge:  "ge",
	Min: "min",
	Max: "max",
}

// Name returns the identifier that refers to op in source text.
func (op Op1) Name() string { return op.String() }

// Name returns the identifier that refers to op in source text.
// Unlike [Op2.String], it never contains operator symbols.
func (op Op2) Name() string {
	if int(op) < len(op2Names) {
		return op2Names[op]
	}

	return op.String()
}

// Valid reports whether op is one of the declared constants.
func (op Op1) Valid() bool { return op <= Last }

// Valid reports whether op is one of the declared constants.
func (op Op2) Valid() bool { return op <= Max }

// Op1s returns an iterator over all unary operations in declaration order.
func Op1s() iter.Seq[Op1] {
	return func(yield func(Op1) bool) {
		for op := Not; op <= Last; op++ {
			if !yield(op) {
				return
			}
		}
	}
}

// Op2s returns an iterator over all binary operations in declaration order.
func Op2s() iter.Seq[Op2] {
	return func(yield func(Op2) bool) {
		for op := Add; op <= Max; op++ {
			if !yield(op) {
				return
			}
		}
	}
}

// LookupOp1 returns the unary operation named name.
func LookupOp1(name string) (Op1, bool) {
	for op := range Op1s() {
		if op.Name() == name {
			return op, true
		}
	}

	return 0, false
}

// LookupOp2 returns the binary operation named name.
func LookupOp2(name string) (Op2, bool) {
	for op := range Op2s() {
		if op.Name() == name {
			return op, true
		}
	}

	return 0, false
}

// Names returns the source identifiers of every built-in operation, unary
// operations first.
func Names() []string {
	names := make([]string, 0, int(Last)+int(Max)+2)

	for op := range Op1s() {
		names = append(names, op.Name())
	}

	for op := range Op2s() {
		names = append(names, op.Name())
	}

	return names
}
