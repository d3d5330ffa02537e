package ast

//go:generate go tool stringer --linecomment --type BinOp,PipeOp,LogicOp --output op_string.go

import (
	"iter"

	"github.com/ardnew/tacit/lang/builtin"
)

// BinOp is a binary operator. The set is closed and its declaration order is
// part of the contract.
type BinOp uint8

const (
	Or        BinOp = iota // ||
	And                    // &&
	Eq                     // ==
	Ne                     // !=
	Lt                     // <
	Le                     // <=
	Gt                     // >
	Ge                     // >=
	Add                    // +
	Sub                    // -
	Mul                    // *
	Div                    // /
	Compose                // .
	BlackBird              // .:
	LeftThen               // <*
	RightThen              // *>
	Left                   // <:
	Right                  // :>
)

// PipeOp is a directional application operator.
type PipeOp uint8

const (
	Forward  PipeOp = iota // |>
	Backward               // <|
)

// LogicOp is a short-circuit boolean operator of the separated encoding.
type LogicOp uint8

const (
	LogicAnd LogicOp = iota // &&
	LogicOr                 // ||
)

// BinOps returns an iterator over every BinOp in declaration order.
func BinOps() iter.Seq[BinOp] { return enumerate(Or, Right) }

// PipeOps returns an iterator over every PipeOp in declaration order.
func PipeOps() iter.Seq[PipeOp] { return enumerate(Forward, Backward) }

// LogicOps returns an iterator over every LogicOp in declaration order.
func LogicOps() iter.Seq[LogicOp] { return enumerate(LogicAnd, LogicOr) }

func enumerate[T ~uint8](first, last T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for op := first; op <= last; op++ {
			if !yield(op) {
				return
			}
		}
	}
}

// IsBoolean reports whether op is Or or And.
func (op BinOp) IsBoolean() bool { return op <= And }

// IsComparison reports whether op compares its operands.
func (op BinOp) IsComparison() bool { return op >= Eq && op <= Ge }

// IsArithmetic reports whether op is one of + - * /.
func (op BinOp) IsArithmetic() bool { return op >= Add && op <= Div }

// IsCombinator reports whether the operands of op are treated as functions.
func (op BinOp) IsCombinator() bool { return op >= Compose && op <= Right }

// Builtin returns the primitive an arithmetic or comparison operator applies.
func (op BinOp) Builtin() (builtin.Op2, bool) {
	switch op {
	case Eq:
		return builtin.Eq, true
	case Ne:
		return builtin.Ne, true
	case Lt:
		return builtin.Lt, true
	case Le:
		return builtin.Le, true
	case Gt:
		return builtin.Gt, true
	case Ge:
		return builtin.Ge, true
	case Add:
		return builtin.Add, true
	case Sub:
		return builtin.Sub, true
	case Mul:
		return builtin.Mul, true
	case Div:
		return builtin.Div, true
	}

	return 0, false
}

// LogicOp returns the separated-encoding counterpart of a boolean operator.
func (op BinOp) LogicOp() (LogicOp, bool) {
	switch op {
	case And:
		return LogicAnd, true
	case Or:
		return LogicOr, true
	}

	return 0, false
}

// BinOp returns the combined-encoding counterpart of op.
func (op LogicOp) BinOp() BinOp {
	if op == LogicOr {
		return Or
	}

	return And
}
