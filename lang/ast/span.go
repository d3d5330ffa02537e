package ast

import (
	"cmp"
	"fmt"
	"log/slog"
	"strconv"
)

// Loc is a position in source text.
type Loc struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, in runes
}

// Span is the half-open range [Start, End) of a single source.
type Span struct {
	Source string
	Start  Loc
	End    Loc
}

// MakeSpan returns the span of source from start to end.
func MakeSpan(source string, start, end Loc) Span {
	return Span{Source: source, Start: start, End: end}
}

// Merge returns the smallest span covering both s and o.
//
// Merging spans of different sources is a programming error and panics.
func (s Span) Merge(o Span) Span {
	if s.Source != o.Source {
		panic(fmt.Sprintf(
			"ast: merge spans of different sources: %q and %q",
			s.Source, o.Source,
		))
	}

	if o.Start.Offset < s.Start.Offset {
		s.Start = o.Start
	}

	if o.End.Offset > s.End.Offset {
		s.End = o.End
	}

	return s
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Source == o.Source &&
		s.Start.Offset <= o.Start.Offset &&
		o.End.Offset <= s.End.Offset
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// IsZero reports whether s is the zero Span.
func (s Span) IsZero() bool { return s == Span{} }

// Valid reports whether s is non-empty and well ordered.
func (s Span) Valid() bool { return s.Len() > 0 }

// String returns the start of s as "source:line:col".
func (s Span) String() string {
	return s.Source + ":" + strconv.Itoa(s.Start.Line) + ":" +
		strconv.Itoa(s.Start.Column)
}

// LogValue implements [slog.LogValuer].
func (s Span) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("source", s.Source),
		slog.Int("line", s.Start.Line),
		slog.Int("col", s.Start.Column),
		slog.Int("len", s.Len()),
	)
}

// compareSpans orders spans by source, then start, then end offset.
func compareSpans(a, b Span) int {
	return cmp.Or(
		cmp.Compare(a.Source, b.Source),
		cmp.Compare(a.Start.Offset, b.Start.Offset),
		cmp.Compare(a.End.Offset, b.End.Offset),
	)
}

// Spanned pairs a value with the span it was parsed from.
//
// The span is metadata: [Equal], [Compare] and [Spanned.Key] consider the
// payload only.
type Spanned[T any] struct {
	Span  Span
	Value T
}

// Sp returns v located at span.
func Sp[T any](span Span, v T) Spanned[T] {
	return Spanned[T]{Span: span, Value: v}
}

// Key returns the payload of s, suitable as a map key when T is comparable.
func (s Spanned[T]) Key() T { return s.Value }

// Equal reports whether a and b carry equal payloads.
func Equal[T comparable](a, b Spanned[T]) bool { return a.Value == b.Value }

// Compare orders a and b by payload.
func Compare[T cmp.Ordered](a, b Spanned[T]) int {
	return cmp.Compare(a.Value, b.Value)
}
