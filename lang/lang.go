package lang

import (
	"iter"
	"slices"

	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/lang/builtin"
	"github.com/ardnew/tacit/log"
)

// Program is the parsed form of one source: its top-level items in source
// order.
//
// A Program returned by a parse function shares its items with the parse
// cache. Treat the tree as read-only.
type Program struct {
	Source   string
	Encoding ast.Encoding
	Items    []ast.Item

	opts   optionsKey
	logger log.Logger
	index  map[ast.Ident]int // top-level declarations
}

// DefaultMaxDepth is the default maximum nesting depth of expressions and
// blocks. Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// DefaultSource names input that has no file name.
const DefaultSource = "<input>"

// optionsKey holds parse configuration.
// Every field participates in cache key hashing.
type optionsKey struct {
	source   string
	maxDepth int
	encoding ast.Encoding
}

// Option configures parsing behavior.
type Option func(*Program)

// WithMaxDepth sets the maximum nesting depth of expressions and blocks.
func WithMaxDepth(depth int) Option {
	return func(p *Program) {
		p.opts.maxDepth = depth
	}
}

// WithEncoding selects the node vocabulary the parser produces.
func WithEncoding(enc ast.Encoding) Option {
	return func(p *Program) {
		p.opts.encoding = enc
	}
}

// WithSource names the source recorded in every span.
func WithSource(name string) Option {
	return func(p *Program) {
		p.opts.source = name
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// newProgram returns an empty program configured by opts.
func newProgram(opts ...Option) *Program {
	p := &Program{
		opts: optionsKey{
			source:   DefaultSource,
			maxDepth: DefaultMaxDepth,
			encoding: ast.DefaultEncoding,
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	p.Source = p.opts.source
	p.Encoding = p.opts.encoding

	return p
}

// NewProgram returns a program of items, which need not come from a single
// source. It is used for trees constructed without parsing.
func NewProgram(items []ast.Item, opts ...Option) *Program {
	p := newProgram(opts...)
	p.Items = items
	p.buildIndex()

	return p
}

// Logger returns the logger configured for p.
func (p *Program) Logger() log.Logger { return p.logger }

// buildIndex records the position of the last top-level declaration of each
// name.
func (p *Program) buildIndex() {
	p.index = make(map[ast.Ident]int, len(p.Items))

	for i, it := range p.Items {
		for _, name := range declared(it) {
			p.index[name.Value] = i
		}
	}
}

// declared returns the names an item binds.
func declared(it ast.Item) []ast.Spanned[ast.Ident] {
	switch v := it.(type) {
	case ast.FunctionDef:
		return []ast.Spanned[ast.Ident]{v.Name}
	case ast.Const:
		return []ast.Spanned[ast.Ident]{v.Name}
	case ast.Let:
		return ast.Binders(v.Pattern)
	}

	return nil
}

// All returns an iterator over the top-level items in source order.
func (p *Program) All() iter.Seq[ast.Item] {
	return func(yield func(ast.Item) bool) {
		for _, it := range p.Items {
			if !yield(it) {
				return
			}
		}
	}
}

// Lookup returns the top-level item that declares name. When name is
// declared more than once, the last declaration wins.
func (p *Program) Lookup(name string) (ast.Item, bool) {
	if p.index == nil {
		p.buildIndex()
	}

	i, ok := p.index[ast.Ident(name)]
	if !ok {
		return nil, false
	}

	return p.Items[i], true
}

// Extend appends the items of q to p, as when a session accumulates
// declarations from separately parsed inputs.
func (p *Program) Extend(q *Program) {
	p.Items = append(slices.Clip(p.Items), q.Items...)
	p.buildIndex()
}

// Functions returns every function in p, named or anonymous, at any depth,
// keyed by identity.
func (p *Program) Functions() map[ast.FunctionID]ast.Func {
	funcs := make(map[ast.FunctionID]ast.Func)

	for _, it := range p.Items {
		ast.Walk(it, func(_ ast.Span, node any) bool {
			switch n := node.(type) {
			case ast.FunctionDef:
				funcs[n.Func.ID] = n.Func
			case ast.FuncExpr:
				funcs[n.Func.ID] = n.Func
			}

			return true
		})
	}

	return funcs
}

// FunctionIDs returns the identities of [Program.Functions] in order.
func (p *Program) FunctionIDs() []ast.FunctionID {
	funcs := p.Functions()

	ids := make([]ast.FunctionID, 0, len(funcs))
	for id := range funcs {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, ast.FunctionID.Compare)

	return ids
}

// Identifiers returns every distinct identifier written in p, declared or
// referenced, in sorted order.
func (p *Program) Identifiers() []string {
	seen := make(map[ast.Ident]struct{})

	for _, it := range p.Items {
		ast.Walk(it, func(_ ast.Span, node any) bool {
			switch n := node.(type) {
			case ast.Ident:
				seen[n] = struct{}{}
			case ast.IdentExpr:
				seen[n.Name] = struct{}{}
			case ast.IdentPattern:
				seen[n.Name] = struct{}{}
			}

			return true
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, string(name))
	}

	slices.Sort(names)

	return names
}

// Resolve returns the function a call of name refers to at the top level: a
// declared function, or else a built-in.
func (p *Program) Resolve(name string) (ast.FunctionID, bool) {
	if it, ok := p.Lookup(name); ok {
		if def, ok := it.(ast.FunctionDef); ok {
			return def.Func.ID, true
		}

		return ast.FunctionID{}, false
	}

	if op, ok := builtin.LookupOp1(name); ok {
		return ast.Builtin1(op), true
	}

	if op, ok := builtin.LookupOp2(name); ok {
		return ast.Builtin2(op), true
	}

	return ast.FunctionID{}, false
}

// Signature returns the parameter names of the function name resolves to.
// Built-ins report positional names.
func (p *Program) Signature(name string) ([]string, bool) {
	id, ok := p.Resolve(name)
	if !ok {
		return nil, false
	}

	switch id.Kind() {
	case ast.KindBuiltin1:
		return []string{"x"}, true
	case ast.KindBuiltin2:
		return []string{"x", "y"}, true
	}

	def, _ := p.Lookup(name)
	params := def.(ast.FunctionDef).Func.Params

	names := make([]string, len(params))
	for i, param := range params {
		names[i] = string(param.Value)
	}

	return names, true
}
