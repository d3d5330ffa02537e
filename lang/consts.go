package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/lang/builtin"
)

// Constant is the value of a top-level const item.
type Constant struct {
	Name  string
	Span  ast.Span
	Value any
}

// LogValue implements slog.LogValuer.
func (c Constant) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.Name),
		slog.Any("span", c.Span),
		slog.Any("value", c.Value),
	)
}

// Consts evaluates every top-level const item of p in source order.
//
// A constant is built from literals, lists, arrays, parentheses, arithmetic,
// comparison and boolean operators, pipes, if expressions whose branches
// declare nothing, calls of built-in functions, and earlier constants. Each
// one is compiled and run with expr-lang.
//
// Constants that fail are left out of the result and reported in err, which
// is a [Diagnostics] wrapping [ErrNotConstant] or [ErrConstEval].
func (p *Program) Consts(ctx context.Context) ([]Constant, error) {
	var (
		consts []Constant
		diags  Diagnostics
	)

	env := make(map[string]any)
	names := make(map[ast.Ident]string)

	for _, it := range p.Items {
		c, ok := it.(ast.Const)
		if !ok {
			continue
		}

		tr := constTranslator{prog: p, ctx: ctx, names: names}

		source, err := tr.expr(c.Expr)
		if err != nil {
			diags = append(diags, WrapError(err).With(slog.String("const", string(c.Name.Value))))

			continue
		}

		p.logger.TraceContext(
			ctx,
			"const compile",
			slog.String("name", string(c.Name.Value)),
			slog.String("expr", source),
		)

		program, err := expr.Compile(source, expr.Env(env))
		if err != nil {
			diags = append(diags, ErrConstEval.At(c.Expr.Span).Wrap(err).
				With(slog.String("const", string(c.Name.Value)), slog.String("expr", source)))

			continue
		}

		value, err := vm.Run(program, env)
		if err != nil {
			diags = append(diags, ErrConstEval.At(c.Expr.Span).Wrap(err).
				With(slog.String("const", string(c.Name.Value)), slog.String("expr", source)))

			continue
		}

		key := "_c" + strconv.Itoa(len(consts))
		env[key] = value
		names[c.Name.Value] = key

		consts = append(consts, Constant{
			Name:  string(c.Name.Value),
			Span:  c.Span(),
			Value: value,
		})
	}

	return consts, diags.Err()
}

// constTranslator renders a constant expression as expr-lang source.
// Earlier constants are referenced through generated names, which avoids
// clashes with expr-lang keywords.
type constTranslator struct {
	prog  *Program
	ctx   context.Context
	names map[ast.Ident]string
}

func notConstant(span ast.Span, format string, args ...any) error {
	return ErrNotConstant.At(span).Wrap(fmt.Errorf(format, args...))
}

func (t *constTranslator) exprs(xs []ast.Spanned[ast.Expr]) (string, error) {
	parts := make([]string, len(xs))

	for i, x := range xs {
		s, err := t.expr(x)
		if err != nil {
			return "", err
		}

		parts[i] = s
	}

	return "[" + strings.Join(parts, ", ") + "]", nil
}

func (t *constTranslator) expr(e ast.Spanned[ast.Expr]) (string, error) {
	switch v := ast.Of(e.Value).(type) {
	case ast.Unit:
		return "nil", nil
	case ast.RealLit:
		return v.Text, nil
	case ast.IntLit:
		return v.Text, nil
	case ast.BoolLit:
		return strconv.FormatBool(v.Value), nil
	case ast.CharLit:
		return strconv.Quote(string(v.Value)), nil
	case ast.StringLit:
		return strconv.Quote(v.Value), nil
	case ast.FormatStringLit:
		return t.format(e.Span, v)
	case ast.IdentExpr:
		if key, ok := t.names[v.Name]; ok {
			return key, nil
		}

		if v.Name == "true" || v.Name == "false" {
			return string(v.Name), nil
		}

		return "", ErrNotConstant.At(e.Span).Wrap(ErrUndefined.
			Wrap(fmt.Errorf("%s is not an earlier constant", v.Name)))
	case ast.ListExpr:
		return t.exprs(v.Items)
	case ast.ArrayExpr:
		return t.exprs(v.Items)
	case ast.ParenedExpr:
		inner, err := t.expr(v.Inner)

		return "(" + inner + ")", err
	case ast.BinExpr:
		if v.Op.Value.IsCombinator() {
			return "", notConstant(v.Op.Span, "combinator %s", v.Op.Value)
		}

		return t.infix(v.Left, v.Op.Value.String(), v.Right)
	case ast.LogicExpr:
		return t.infix(v.Left, v.Op.Value.String(), v.Right)
	case ast.PipeExpr:
		return t.expr(ast.PipeToCall(e.Span, v))
	case ast.IfExpr:
		return t.cond(v)
	case ast.CallExpr:
		return t.call(e)
	case ast.Placeholder:
		return "", notConstant(e.Span, "placeholder")
	case ast.FuncExpr:
		return "", notConstant(e.Span, "function literal")
	}

	return "", notConstant(e.Span, "%T", e.Value)
}

func (t *constTranslator) infix(left ast.Spanned[ast.Expr], op string, right ast.Spanned[ast.Expr]) (string, error) {
	l, err := t.expr(left)
	if err != nil {
		return "", err
	}

	r, err := t.expr(right)
	if err != nil {
		return "", err
	}

	return "(" + l + " " + op + " " + r + ")", nil
}

func (t *constTranslator) cond(v ast.IfExpr) (string, error) {
	for _, b := range []ast.Block{v.IfTrue, v.IfFalse} {
		if len(b.Items) > 0 {
			return "", notConstant(b.Items[0].Span(), "declaration in constant branch")
		}
	}

	c, err := t.expr(v.Cond)
	if err != nil {
		return "", err
	}

	a, err := t.expr(v.IfTrue.Expr)
	if err != nil {
		return "", err
	}

	b, err := t.expr(v.IfFalse.Expr)
	if err != nil {
		return "", err
	}

	return "(" + c + " ? " + a + " : " + b + ")", nil
}

// unary maps built-ins of one argument to expr-lang templates.
var unary = map[builtin.Op1]string{
	builtin.Not:     "!(%s)",
	builtin.Neg:     "-(%s)",
	builtin.Abs:     "abs(%s)",
	builtin.Sqrt:    "((%s) ** 0.5)",
	builtin.Floor:   "floor(%s)",
	builtin.Ceil:    "ceil(%s)",
	builtin.Len:     "len(%s)",
	builtin.Reverse: "reverse(%s)",
	builtin.First:   "first(%s)",
	builtin.Last:    "last(%s)",
}

// binary maps built-ins of two arguments to expr-lang templates.
var binary = map[builtin.Op2]string{
	builtin.Add: "(%s + %s)",
	builtin.Sub: "(%s - %s)",
	builtin.Mul: "(%s * %s)",
	builtin.Div: "(%s / %s)",
	builtin.Mod: "(%s %% %s)",
	builtin.Pow: "(%s ** %s)",
	builtin.Eq:  "(%s == %s)",
	builtin.Ne:  "(%s != %s)",
	builtin.Lt:  "(%s < %s)",
	builtin.Le:  "(%s <= %s)",
	builtin.Gt:  "(%s > %s)",
	builtin.Ge:  "(%s >= %s)",
	builtin.Min: "min(%s, %s)",
	builtin.Max: "max(%s, %s)",
}

func (t *constTranslator) call(e ast.Spanned[ast.Expr]) (string, error) {
	app := ast.Uncurry(e)

	fn, ok := ast.StripParens(app.Func).Value.(ast.IdentExpr)
	if !ok {
		return "", notConstant(app.Func.Span, "call of a computed function")
	}

	id, ok := t.prog.Resolve(string(fn.Name))
	if !ok || id.Kind() == ast.KindNamed {
		return "", notConstant(app.Func.Span, "call of %s", fn.Name)
	}

	args := make([]any, len(app.Args))

	for i, arg := range app.Args {
		s, err := t.expr(arg)
		if err != nil {
			return "", err
		}

		args[i] = s
	}

	var (
		tmpl  string
		arity int
	)

	if op, ok := id.Op1(); ok {
		tmpl, arity = unary[op], 1
	} else if op, ok := id.Op2(); ok {
		tmpl, arity = binary[op], 2
	}

	if len(args) != arity {
		return "", notConstant(e.Span, "%s takes %d arguments, got %d", id, arity, len(args))
	}

	return fmt.Sprintf(tmpl, args...), nil
}

// format concatenates the segments of a format string, converting each
// interpolated value with string().
func (t *constTranslator) format(span ast.Span, lit ast.FormatStringLit) (string, error) {
	parts := make([]string, 0, len(lit.Segments))

	opts := t.prog.opts
	opts.source = span.Source
	opts.encoding = t.prog.Encoding

	for i, seg := range lit.Segments {
		if i%2 == 0 {
			parts = append(parts, strconv.Quote(seg))

			continue
		}

		at := span.Start
		if k := i / 2; k < len(lit.At) {
			at = lit.At[k]
		}

		e, err := parseExprAt(t.ctx, seg, opts, t.prog.logger, at)
		if err != nil {
			return "", ErrNotConstant.At(WrapError(err).Span()).Wrap(err)
		}

		s, err := t.expr(e)
		if err != nil {
			return "", err
		}

		parts = append(parts, "string("+s+")")
	}

	return "(" + strings.Join(parts, " + ") + ")", nil
}
