package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/tacit/lang/ast"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax          = NewError("syntax error")
	ErrEncoding        = NewError("construct not available in encoding")
	ErrDuplicateBinder = NewError("duplicate binder")
	ErrMaxDepth        = NewError("maximum nesting depth exceeded")
	ErrReadInput       = NewError("failed to read input")
	ErrInvalidTree     = NewError("invalid syntax tree")
	ErrNotConstant     = NewError("expression is not constant")
	ErrConstEval       = NewError("constant evaluation failed")
	ErrUndefined       = NewError("undefined identifier")
)

// Error represents an error with an optional source location and structured
// logging attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	base  *Error      // Sentinel this error was derived from
	span  ast.Span    // Location in source, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message has the form "<span>: <msg>: <err>", omitting any part that is
// not set.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if !e.span.IsZero() {
		part = append(part, e.span.String())
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)

	if e.base != nil {
		errs = append(errs, e.base)
	}

	if e.err != nil {
		errs = append(errs, e.err)
	}

	return errs
}

// Span returns the source location of e, if any.
func (e *Error) Span() ast.Span { return e.span }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if !e.span.IsZero() {
		attrs = append(attrs, slog.Any("span", e.span))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// derive returns a copy of e that still matches e with errors.Is.
func (e *Error) derive() *Error {
	base := e
	if e.base != nil {
		base = e.base
	}

	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  base,
		span:  e.span,
		attrs: e.attrs, // Share attrs
	}
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// At returns a copy of e located at span.
func (e *Error) At(span ast.Span) *Error {
	d := e.derive()
	d.span = span

	return d
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(d.attrs, e.attrs)
	copy(d.attrs[len(e.attrs):], attrs)

	return d
}

// Snippet renders the source line of e with a caret under its column.
// It returns the empty string when e has no location within source.
func (e *Error) Snippet(source string) string {
	line, col := e.span.Start.Line, e.span.Start.Column
	lines := strings.Split(source, "\n")

	if line <= 0 || line > len(lines) {
		return ""
	}

	var buf strings.Builder

	num := strconv.Itoa(line)

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(lines[line-1])
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)
	if col > 0 {
		padding += strings.Repeat(" ", col-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}

// Diagnostics collects every error found in one pass over a source.
type Diagnostics []*Error

// Err returns d as an error, or nil if d is empty.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}

	return d
}

// Error implements the error interface, one diagnostic per line.
func (d Diagnostics) Error() string {
	msgs := make([]string, len(d))
	for i, e := range d {
		msgs[i] = e.Error()
	}

	return strings.Join(msgs, "\n")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (d Diagnostics) Unwrap() []error {
	errs := make([]error, len(d))
	for i, e := range d {
		errs[i] = e
	}

	return errs
}

// LogValue implements slog.LogValuer.
func (d Diagnostics) LogValue() slog.Value {
	attrs := make([]slog.Attr, len(d))
	for i, e := range d {
		attrs[i] = slog.Any(strconv.Itoa(i), e)
	}

	return slog.GroupValue(attrs...)
}
