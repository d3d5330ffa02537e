package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"sync"

	"github.com/ardnew/tacit/lang/ast"
)

// ErrNotDeclared is returned by [Stream.Lookup] for names without a
// top-level declaration.
var ErrNotDeclared = NewError("name not declared")

// Stream provides on-demand access to the declarations of tacit source text.
// The input is not read or parsed until first access, and the parsed tree is
// shared through the parse cache.
type Stream struct {
	reader io.Reader
	source *string
	opts   []Option

	once sync.Once
	prog *Program
	err  error
}

// NewStream creates a stream reading source text from r.
// The reader will not be consumed until first access.
func NewStream(r io.Reader, opts ...Option) *Stream {
	return &Stream{reader: r, opts: opts}
}

// NewStreamFromString creates a stream over source.
func NewStreamFromString(source string, opts ...Option) *Stream {
	return &Stream{source: &source, opts: opts}
}

// ensureParsed parses the input once. A program with syntax errors is kept
// alongside the error, so recovered items remain accessible.
func (s *Stream) ensureParsed(ctx context.Context) error {
	s.once.Do(func() {
		if s.source != nil {
			s.prog, s.err = parseStringCached(ctx, *s.source, s.opts...)
		} else {
			s.prog, s.err = ParseReader(ctx, s.reader, s.opts...)
		}

		if s.prog == nil {
			s.prog = newProgram(s.opts...)
		}
	})

	return s.err
}

// Program returns the complete parsed program.
func (s *Stream) Program(ctx context.Context) (*Program, error) {
	err := s.ensureParsed(ctx)

	return s.prog, err
}

// Lookup returns the top-level item that declares name.
func (s *Stream) Lookup(ctx context.Context, name string) (ast.Item, error) {
	err := s.ensureParsed(ctx)

	if it, ok := s.prog.Lookup(name); ok {
		return it, nil
	}

	if err != nil {
		return nil, err
	}

	return nil, ErrNotDeclared.With(slog.String("name", name))
}

// Items returns an iterator over the top-level items in source order.
// If the input cannot be read, the iterator yields no values.
func (s *Stream) Items(ctx context.Context) iter.Seq[ast.Item] {
	return func(yield func(ast.Item) bool) {
		_ = s.ensureParsed(ctx)

		for it := range s.prog.All() {
			if !yield(it) {
				return
			}
		}
	}
}

// ItemsFrom returns an iterator over the top-level items read from r.
func ItemsFrom(ctx context.Context, r io.Reader, opts ...Option) iter.Seq[ast.Item] {
	return NewStream(r, opts...).Items(ctx)
}

// LookupFrom returns the top-level item of r that declares name.
func LookupFrom(ctx context.Context, r io.Reader, name string, opts ...Option) (ast.Item, error) {
	return NewStream(r, opts...).Lookup(ctx, name)
}
