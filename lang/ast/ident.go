package ast

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ident is a symbol name. The empty name is not an identifier.
type Ident string

// ErrInvalidIdent is returned by [ParseIdent] for text that is not an
// identifier.
var ErrInvalidIdent = errors.New("invalid identifier")

// NewIdent returns s as an Ident. It panics if s is empty.
func NewIdent(s string) Ident {
	if s == "" {
		panic("ast: empty identifier")
	}

	return Ident(s)
}

// ParseIdent returns s as an Ident if it has the lexical shape of one:
// a letter or underscore followed by letters, digits and underscores.
// A lone underscore is the placeholder, not an identifier.
func ParseIdent(s string) (Ident, error) {
	if !IsIdent(s) {
		return "", ErrInvalidIdent
	}

	return Ident(s), nil
}

// IsIdent reports whether s has the lexical shape of an identifier.
func IsIdent(s string) bool {
	if s == "" || s == "_" {
		return false
	}

	r, size := utf8.DecodeRuneInString(s)
	if !IsIdentStart(r) {
		return false
	}

	return strings.IndexFunc(s[size:], func(r rune) bool {
		return !IsIdentPart(r)
	}) < 0
}

// IsIdentStart reports whether r may begin an identifier.
func IsIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// IsIdentPart reports whether r may continue an identifier.
func IsIdentPart(r rune) bool { return IsIdentStart(r) || unicode.IsDigit(r) }

// String returns the name.
func (id Ident) String() string { return string(id) }

// Compare orders identifiers lexicographically.
func (id Ident) Compare(o Ident) int { return strings.Compare(string(id), string(o)) }
