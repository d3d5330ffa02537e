package lang

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/log"
)

// Binding strength of expression forms, loosest first.
const (
	precPipe = iota + 1
	precOr
	precAnd
	precCmp
	precComb
	precSum
	precProd
	precCompose
	precApp
	precAtom
)

// binPrec returns the binding strength of op.
func binPrec(op ast.BinOp) int {
	switch {
	case op == ast.Or:
		return precOr
	case op == ast.And:
		return precAnd
	case op.IsComparison():
		return precCmp
	case op == ast.Add || op == ast.Sub:
		return precSum
	case op == ast.Mul || op == ast.Div:
		return precProd
	case op == ast.Compose || op == ast.BlackBird:
		return precCompose
	default:
		return precComb
	}
}

// ParseString parses source text into a [Program].
//
// Parsing recovers from syntax errors at the next separator. The returned
// program is well formed even when err is non-nil: each item that failed to
// parse is replaced by a Unit expression spanning the skipped text, and err
// is a [Diagnostics] listing every problem found.
func ParseString(
	ctx context.Context,
	input string,
	opts ...Option,
) (*Program, error) {
	prog := newProgram(opts...)

	prog.logger.TraceContext(
		ctx,
		"parse start",
		slog.String("source", prog.Source),
		slog.Int("source_bytes", len(input)),
		slog.String("encoding", prog.Encoding.String()),
		slog.Int("max_depth", prog.opts.maxDepth),
	)

	p := newParser(ctx, input, prog.opts, prog.logger, ast.Loc{})
	prog.Items = p.program()
	prog.buildIndex()

	diags := p.diagnostics()

	prog.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("item_count", len(prog.Items)),
		slog.Int("diagnostic_count", len(diags)),
	)

	return prog, diags.Err()
}

// ParseExpr parses input as a single expression.
func ParseExpr(
	ctx context.Context,
	input string,
	opts ...Option,
) (ast.Spanned[ast.Expr], error) {
	prog := newProgram(opts...)

	return parseExprAt(ctx, input, prog.opts, prog.logger, ast.Loc{})
}

// parseExprAt parses input as a single expression that begins at location
// at of its source.
func parseExprAt(
	ctx context.Context,
	input string,
	opts optionsKey,
	logger log.Logger,
	at ast.Loc,
) (ast.Spanned[ast.Expr], error) {
	p := newParser(ctx, input, opts, logger, at)

	e, err := p.soleExpr()
	if err != nil {
		p.report(err)
	}

	return e, p.diagnostics().Err()
}

// parser is a recursive-descent parser with one token of lookahead and one
// token of peek.
type parser struct {
	ctx    context.Context
	sc     *scanner
	logger log.Logger
	opts   optionsKey

	tok   token   // current token
	prev  token   // last consumed token
	ahead []token // peeked tokens

	depth int
	diags Diagnostics
}

func newParser(
	ctx context.Context,
	input string,
	opts optionsKey,
	logger log.Logger,
	at ast.Loc,
) *parser {
	p := &parser{
		ctx:    ctx,
		sc:     newScanner(input, opts.source, opts.encoding, at),
		logger: logger,
		opts:   opts,
	}

	p.advance()

	return p
}

// diagnostics returns every problem found so far in source order.
func (p *parser) diagnostics() Diagnostics {
	diags := slices.Concat(p.sc.errs, p.diags)

	slices.SortStableFunc(diags, func(a, b *Error) int {
		return cmp.Compare(a.span.Start.Offset, b.span.Start.Offset)
	})

	return diags
}

// report records a problem that does not stop parsing.
func (p *parser) report(err error) {
	p.diags = append(p.diags, WrapError(err))
}

// scan returns the next token from the scanner with the doc comment lines
// that directly precede it.
func (p *parser) scan() token {
	var doc []token

	for {
		t := p.sc.next()
		if t.kind != tokDoc {
			t.doc = doc

			return t
		}

		if t.lineStart {
			doc = append(doc, t)
		}
	}
}

func (p *parser) advance() {
	p.prev = p.tok

	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]

		return
	}

	p.tok = p.scan()
}

func (p *parser) peek() token {
	if len(p.ahead) == 0 {
		p.ahead = append(p.ahead, p.scan())
	}

	return p.ahead[0]
}

func (p *parser) at(kinds ...tokenKind) bool {
	for _, k := range kinds {
		if p.tok.kind == k {
			return true
		}
	}

	return false
}

func (p *parser) skipSeps() {
	for p.tok.kind == tokSep {
		p.advance()
	}
}

// skipSepsBefore skips separators when they are followed by kind.
func (p *parser) skipSepsBefore(kind tokenKind) {
	for p.tok.kind == tokSep && p.peek().kind == kind {
		p.advance()
	}
}

func (p *parser) unexpected(expected string) error {
	return ErrSyntax.At(p.tok.span).
		Wrap(fmt.Errorf("expected %s, found %s", expected, p.tok.describe())).
		With(
			slog.String("expected", expected),
			slog.String("found", p.tok.describe()),
		)
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return p.tok, p.unexpected(kind.String())
	}

	t := p.tok
	p.advance()

	return t, nil
}

// enter increases the nesting depth. The caller must call leave when enter
// succeeds.
func (p *parser) enter() error {
	if p.depth >= p.opts.maxDepth {
		return ErrMaxDepth.At(p.tok.span).
			With(slog.Int("max_depth", p.opts.maxDepth))
	}

	p.depth++

	return nil
}

func (p *parser) leave() { p.depth-- }

// nested parses the right operand of a right-associative chain one level
// deeper.
func (p *parser) nested(parse func() (ast.Spanned[ast.Expr], error)) (ast.Spanned[ast.Expr], error) {
	if err := p.enter(); err != nil {
		return ast.Spanned[ast.Expr]{}, err
	}
	defer p.leave()

	return parse()
}

// sync skips to the next top-level separator and returns the span of the
// last token skipped.
func (p *parser) sync(from ast.Span) ast.Span {
	p.sc.reset()

	end := from
	for !p.at(tokSep, tokEOF) {
		if p.tok.span.Source == end.Source {
			end = end.Merge(p.tok.span)
		}

		p.advance()
	}

	return end
}

// program = { item sep }.
func (p *parser) program() []ast.Item {
	var items []ast.Item

	for {
		p.skipSeps()

		if p.tok.kind == tokEOF {
			return items
		}

		start := p.tok.span

		it, err := p.item()
		if err == nil && !p.at(tokSep, tokEOF) {
			err = p.unexpected("separator")
		}

		if err != nil {
			p.report(err)

			span := p.sync(start)

			p.logger.TraceContext(p.ctx, "recovered", slog.Any("span", span))

			items = append(items, ast.ExprItem{
				Expr: ast.Sp[ast.Expr](span, ast.DefaultExpr()),
			})

			continue
		}

		p.admit(it, false)

		items = append(items, it)
	}
}

// item parses one declaration or expression.
func (p *parser) item() (ast.Item, error) {
	var (
		it  ast.Item
		err error
	)

	switch p.tok.kind {
	case tokFn:
		it, err = p.functionDef(p.tok.doc)
	case tokLet:
		it, err = p.let()
	case tokConst:
		it, err = p.constant()
	default:
		var e ast.Spanned[ast.Expr]

		e, err = p.expr()
		it = ast.ExprItem{Expr: e}
	}

	return it, err
}

// admit reports it when the configured encoding does not allow it here.
func (p *parser) admit(it ast.Item, nested bool) {
	if !p.opts.encoding.AdmitsItem(it, nested) {
		p.report(ErrEncoding.At(it.Span()).
			Wrap(fmt.Errorf("%s not allowed in %s", itemKind(it), p.opts.encoding)))
	}
}

// itemKind names the variant of it for diagnostics.
func itemKind(it ast.Item) string {
	switch it.(type) {
	case ast.FunctionDef:
		return "function definition"
	case ast.Let:
		return "let binding"
	case ast.Const:
		return "constant"
	default:
		return "expression item"
	}
}

// docComment joins doc comment lines.
func docComment(lines []token) *ast.Spanned[string] {
	if len(lines) == 0 {
		return nil
	}

	text := make([]string, len(lines))
	span := lines[0].span

	for i, line := range lines {
		text[i] = line.value
		span = span.Merge(line.span)
	}

	doc := ast.Sp(span, strings.Join(text, "\n"))

	return &doc
}

// functionDef = "fn" IDENT { IDENT } "=" body.
func (p *parser) functionDef(doc []token) (ast.Item, error) {
	p.advance()

	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	name := ast.Sp(nameTok.span, ast.Ident(nameTok.text))
	params := p.params()

	if _, err := p.expect(tokAssign); err != nil {
		return nil, err
	}

	body, err := p.body()
	if err != nil {
		return nil, err
	}

	return ast.NewFunctionDef(docComment(doc), name, ast.Func{
		ID:     ast.Named(name.Value),
		Params: params,
		Body:   body,
	}), nil
}

// params = { IDENT }.
func (p *parser) params() []ast.Spanned[ast.Ident] {
	var params []ast.Spanned[ast.Ident]

	for p.tok.kind == tokIdent {
		params = append(params, ast.Sp(p.tok.span, ast.Ident(p.tok.text)))
		p.advance()
	}

	p.checkBinders(params)

	return params
}

func (p *parser) checkBinders(names []ast.Spanned[ast.Ident]) {
	for _, dup := range ast.DuplicateBinders(names) {
		p.report(ErrDuplicateBinder.At(dup.Span).
			Wrap(fmt.Errorf("%s bound more than once", dup.Value)).
			With(slog.String("name", string(dup.Value))))
	}
}

// let = "let" pattern "=" expr.
func (p *parser) let() (ast.Item, error) {
	p.advance()

	pat, err := p.pattern()
	if err != nil {
		return nil, err
	}

	p.checkBinders(ast.Binders(pat))

	if _, err := p.expect(tokAssign); err != nil {
		return nil, err
	}

	e, err := p.expr()
	if err != nil {
		return nil, err
	}

	return ast.Let{Pattern: pat, Expr: e}, nil
}

// constant = "const" IDENT "=" expr.
func (p *parser) constant() (ast.Item, error) {
	p.advance()

	nameTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokAssign); err != nil {
		return nil, err
	}

	e, err := p.expr()
	if err != nil {
		return nil, err
	}

	return ast.Const{
		Name: ast.Sp(nameTok.span, ast.Ident(nameTok.text)),
		Expr: e,
	}, nil
}

// pattern = IDENT | "_" | "[" [ pattern { "," pattern } ] "]".
func (p *parser) pattern() (ast.Spanned[ast.Pattern], error) {
	t := p.tok

	switch t.kind {
	case tokIdent:
		p.advance()

		return ast.Sp[ast.Pattern](t.span, ast.IdentPattern{Name: ast.Ident(t.text)}), nil
	case tokUnderscore:
		p.advance()

		return ast.Sp[ast.Pattern](t.span, ast.Discard{}), nil
	case tokLBrack:
		if err := p.enter(); err != nil {
			return ast.Spanned[ast.Pattern]{}, err
		}
		defer p.leave()

		p.advance()

		var items []ast.Spanned[ast.Pattern]

		for p.tok.kind != tokRBrack {
			item, err := p.pattern()
			if err != nil {
				return item, err
			}

			items = append(items, item)

			if p.tok.kind != tokComma {
				break
			}

			p.advance()
		}

		end, err := p.expect(tokRBrack)
		if err != nil {
			return ast.Spanned[ast.Pattern]{}, err
		}

		return ast.Sp[ast.Pattern](t.span.Merge(end.span), ast.ListPattern{Items: items}), nil
	}

	return ast.Spanned[ast.Pattern]{}, p.unexpected("pattern")
}

// body = "{" { item sep } "}" | expr.
func (p *parser) body() (ast.Block, error) {
	if p.tok.kind != tokLBrace {
		e, err := p.expr()

		return ast.BlockOf(e), err
	}

	if err := p.enter(); err != nil {
		return ast.Block{}, err
	}
	defer p.leave()

	p.advance()

	var items []ast.Item

	for {
		p.skipSeps()

		if p.tok.kind == tokRBrace {
			break
		}

		it, err := p.item()
		if err != nil {
			return ast.Block{}, err
		}

		items = append(items, it)

		if !p.at(tokSep, tokRBrace) {
			return ast.Block{}, p.unexpected("separator or }")
		}
	}

	closing := p.tok
	p.advance()

	var tail *ast.Spanned[ast.Expr]

	if n := len(items); n > 0 {
		if last, ok := items[n-1].(ast.ExprItem); ok {
			tail = &last.Expr
			items = items[:n-1]
		}
	}

	for _, it := range items {
		p.admit(it, true)
	}

	return ast.NewBlock(items, tail, closing.span), nil
}

// soleExpr parses input holding exactly one expression.
func (p *parser) soleExpr() (ast.Spanned[ast.Expr], error) {
	p.skipSeps()

	e, err := p.expr()
	if err != nil {
		return e, err
	}

	p.skipSeps()

	if p.tok.kind != tokEOF {
		return e, p.unexpected("end of expression")
	}

	return e, nil
}

// expr = pipe.
func (p *parser) expr() (ast.Spanned[ast.Expr], error) {
	if err := p.enter(); err != nil {
		return ast.Spanned[ast.Expr]{}, err
	}
	defer p.leave()

	return p.pipe()
}

// pipe = binary { ("|>" | "<|") binary }, with |> left and <| right
// associative.
func (p *parser) pipe() (ast.Spanned[ast.Expr], error) {
	left, err := p.binary(precOr)

	for err == nil && p.tok.kind == tokPipe {
		opTok := p.tok
		p.advance()

		var right ast.Spanned[ast.Expr]

		if opTok.pipe == ast.Backward {
			right, err = p.nested(p.pipe)
		} else {
			right, err = p.binary(precOr)
		}

		if err != nil {
			break
		}

		left = ast.Sp[ast.Expr](left.Span.Merge(right.Span), ast.PipeExpr{
			Left:  left,
			Op:    ast.Sp(opTok.span, opTok.pipe),
			Right: right,
		})
	}

	return left, err
}

// binary parses the left-associative operators binding at prec or tighter.
func (p *parser) binary(prec int) (ast.Spanned[ast.Expr], error) {
	if prec == precCompose {
		return p.compose()
	}

	left, err := p.binary(prec + 1)

	for err == nil && p.tok.kind == tokOp && binPrec(p.tok.bin) == prec {
		opTok := p.tok
		p.advance()

		var right ast.Spanned[ast.Expr]

		right, err = p.binary(prec + 1)
		if err != nil {
			break
		}

		left = p.bin(left, opTok, right)
	}

	return left, err
}

// compose = app [ ("." | ".:") compose ].
func (p *parser) compose() (ast.Spanned[ast.Expr], error) {
	left, err := p.app()
	if err != nil || p.tok.kind != tokOp || binPrec(p.tok.bin) != precCompose {
		return left, err
	}

	opTok := p.tok
	p.advance()

	right, err := p.nested(p.compose)
	if err != nil {
		return left, err
	}

	return p.bin(left, opTok, right), nil
}

// bin combines operands, encoding && and || as the configured encoding
// requires.
func (p *parser) bin(left ast.Spanned[ast.Expr], op token, right ast.Spanned[ast.Expr]) ast.Spanned[ast.Expr] {
	if lop, ok := op.bin.LogicOp(); ok && p.opts.encoding.SeparateLogic() {
		return ast.Sp[ast.Expr](left.Span.Merge(right.Span), ast.LogicExpr{
			Left:  left,
			Op:    ast.Sp(op.span, lop),
			Right: right,
		})
	}

	return ast.Bin(left, ast.Sp(op.span, op.bin), right)
}

// startsAtom reports whether the current token can begin an atom.
func (p *parser) startsAtom() bool {
	return p.at(
		tokLParen, tokLBrack, tokHashBrack, tokNumber, tokChar, tokString,
		tokFormat, tokIdent, tokUnderscore, tokTrue, tokFalse, tokLambda, tokIf,
	)
}

// app = atom { atom }.
func (p *parser) app() (ast.Spanned[ast.Expr], error) {
	fn, err := p.atom()

	for err == nil && p.startsAtom() {
		var arg ast.Spanned[ast.Expr]

		arg, err = p.atom()
		if err != nil {
			break
		}

		fn = ast.Call(fn, arg)
	}

	return fn, err
}

func (p *parser) atom() (ast.Spanned[ast.Expr], error) {
	t := p.tok
	lit := func(e ast.Expr) (ast.Spanned[ast.Expr], error) {
		p.advance()

		if !p.opts.encoding.AdmitsExpr(e) {
			p.report(ErrEncoding.At(t.span).
				Wrap(fmt.Errorf("%s literal in %s", t.kind, p.opts.encoding)))
		}

		return ast.Sp(t.span, e), nil
	}

	switch t.kind {
	case tokLParen:
		return p.parened()
	case tokLBrack, tokHashBrack:
		return p.list()
	case tokNumber:
		if p.opts.encoding == ast.Separated && isIntegral(t.text) {
			return lit(ast.IntLit{Text: t.text})
		}

		return lit(ast.RealLit{Text: t.text})
	case tokChar:
		// Malformed literals were reported by the scanner.
		r := []rune(t.value)
		if len(r) != 1 {
			r = []rune{0}
		}

		return lit(ast.CharLit{Value: r[0]})
	case tokString:
		return lit(ast.StringLit{Value: t.value})
	case tokFormat:
		p.interpolations(t)

		at := make([]ast.Loc, len(t.interps))
		for i, in := range t.interps {
			at[i] = in.start()
		}

		return lit(ast.FormatStringLit{Segments: t.segments, At: at})
	case tokTrue, tokFalse:
		return lit(ast.BoolLit{Value: t.kind == tokTrue})
	case tokIdent:
		return lit(ast.IdentExpr{Name: ast.Ident(t.text)})
	case tokUnderscore:
		return lit(ast.Placeholder{})
	case tokLambda:
		return p.lambda()
	case tokIf:
		return p.ifExpr()
	}

	return ast.Spanned[ast.Expr]{}, p.unexpected("expression")
}

// isIntegral reports whether a numeral has neither fraction nor exponent.
func isIntegral(text string) bool {
	return text != "" && !strings.ContainsAny(text, ".eE")
}

// interpolations checks that every interpolated expression of a format
// string parses.
func (p *parser) interpolations(t token) {
	for _, in := range t.interps {
		sub := newParser(p.ctx, in.text, p.opts, p.logger, in.at)
		sub.depth = p.depth

		if _, err := sub.soleExpr(); err != nil {
			sub.report(err)
		}

		p.diags = append(p.diags, sub.diagnostics()...)
	}
}

// parened = "(" ")" | "(" expr ")".
func (p *parser) parened() (ast.Spanned[ast.Expr], error) {
	open := p.tok
	p.advance()

	if p.tok.kind == tokRParen {
		closing := p.tok
		p.advance()

		return ast.Sp[ast.Expr](open.span.Merge(closing.span), ast.Unit{}), nil
	}

	inner, err := p.expr()
	if err != nil {
		return inner, err
	}

	closing, err := p.expect(tokRParen)
	if err != nil {
		return inner, err
	}

	return ast.Sp[ast.Expr](open.span.Merge(closing.span), ast.ParenedExpr{Inner: inner}), nil
}

// list = ("[" | "#[") [ expr { "," expr } [","] ] "]".
func (p *parser) list() (ast.Spanned[ast.Expr], error) {
	open := p.tok
	p.advance()

	var items []ast.Spanned[ast.Expr]

	for p.tok.kind != tokRBrack {
		item, err := p.expr()
		if err != nil {
			return item, err
		}

		items = append(items, item)

		if p.tok.kind != tokComma {
			break
		}

		p.advance()
	}

	closing, err := p.expect(tokRBrack)
	if err != nil {
		return ast.Spanned[ast.Expr]{}, err
	}

	span := open.span.Merge(closing.span)

	if open.kind == tokHashBrack {
		return ast.Sp[ast.Expr](span, ast.ArrayExpr{Items: items}), nil
	}

	return ast.Sp[ast.Expr](span, ast.ListExpr{Items: items}), nil
}

// lambda = "\" { IDENT } "->" body.
func (p *parser) lambda() (ast.Spanned[ast.Expr], error) {
	start := p.tok.span
	p.advance()

	params := p.params()

	if _, err := p.expect(tokArrow); err != nil {
		return ast.Spanned[ast.Expr]{}, err
	}

	body, err := p.body()
	if err != nil {
		return ast.Spanned[ast.Expr]{}, err
	}

	span := start.Merge(p.prev.span)

	return ast.Sp[ast.Expr](span, ast.FuncExpr{Func: ast.Func{
		ID:     ast.Anonymous(span),
		Params: params,
		Body:   body,
	}}), nil
}

// ifExpr = "if" expr "then" body "else" body.
func (p *parser) ifExpr() (ast.Spanned[ast.Expr], error) {
	start := p.tok.span
	p.advance()

	cond, err := p.expr()
	if err != nil {
		return cond, err
	}

	p.skipSepsBefore(tokThen)

	if _, err := p.expect(tokThen); err != nil {
		return cond, err
	}

	ifTrue, err := p.body()
	if err != nil {
		return cond, err
	}

	p.skipSepsBefore(tokElse)

	if _, err := p.expect(tokElse); err != nil {
		return cond, err
	}

	ifFalse, err := p.body()
	if err != nil {
		return cond, err
	}

	return ast.Sp[ast.Expr](start.Merge(p.prev.span), ast.IfExpr{
		Cond:    cond,
		IfTrue:  ifTrue,
		IfFalse: ifFalse,
	}), nil
}
