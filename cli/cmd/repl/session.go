package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/log"
)

// resultName names the synthetic constant used to evaluate an expression.
const resultName = "it"

// session accumulates the declarations entered in a REPL.
type session struct {
	prog     *lang.Program
	encoding ast.Encoding
	logger   log.Logger
	lines    int
}

func newSession(prog *lang.Program, cfg Config) *session {
	if prog == nil {
		prog = lang.NewProgram(nil, lang.WithEncoding(cfg.Encoding))
	}

	return &session{prog: prog, encoding: cfg.Encoding, logger: cfg.Logger}
}

// replace discards the session and starts over from prog.
func (s *session) replace(prog *lang.Program) {
	s.prog = prog
}

// source names the span source of the next input line.
func (s *session) source() string {
	s.lines++

	return fmt.Sprintf("<repl:%d>", s.lines)
}

// eval parses input as items. Declarations extend the session; each item is
// echoed in formatted form, followed by its value when it is constant.
// The returned text is ready to print.
func (s *session) eval(ctx context.Context, input string) string {
	prog, err := lang.ParseString(ctx, input,
		lang.WithSource(s.source()),
		lang.WithEncoding(s.encoding),
		lang.WithLogger(s.logger),
	)
	if err != nil {
		return renderErrors(err, input)
	}

	var out strings.Builder

	var decls []ast.Item

	for _, it := range prog.Items {
		out.WriteString(resultStyle.Render(formatItem(ctx, it)))
		out.WriteByte('\n')

		if _, isExpr := it.(ast.ExprItem); !isExpr {
			decls = append(decls, it)
		}
	}

	if len(decls) > 0 {
		s.prog.Extend(lang.NewProgram(decls, lang.WithEncoding(s.encoding)))
	}

	for _, it := range prog.Items {
		if v, ok := s.value(ctx, it); ok {
			out.WriteString(hintStyle.Render("= " + v))
			out.WriteByte('\n')
		}
	}

	return out.String()
}

// value evaluates it against the session constants when it is a const item
// or a constant expression.
func (s *session) value(ctx context.Context, it ast.Item) (string, bool) {
	var c ast.Const

	switch v := it.(type) {
	case ast.Const:
		c = v
	case ast.ExprItem:
		c = ast.Const{Name: ast.Sp(v.Expr.Span, ast.NewIdent(resultName)), Expr: v.Expr}
	default:
		return "", false
	}

	// Const items are already part of the session.
	items := s.prog.Items
	if _, ok := it.(ast.ExprItem); ok {
		items = append(slices.Clip(items), c)
	}

	consts, _ := lang.NewProgram(items, lang.WithEncoding(s.encoding)).Consts(ctx)

	i := slices.IndexFunc(consts, func(k lang.Constant) bool { return k.Span == c.Span() })
	if i < 0 {
		return "", false
	}

	found := consts[i]

	s.logger.TraceContext(ctx, "repl value",
		slog.String("name", found.Name),
		slog.String("type", lang.ValueType(found.Value)),
	)

	return lang.FormatValue(found.Value), true
}

// formatItem renders a single item in native syntax.
func formatItem(ctx context.Context, it ast.Item) string {
	var buf strings.Builder

	if err := lang.NewProgram([]ast.Item{it}).Format(ctx, &buf, 2); err != nil {
		return err.Error()
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// renderErrors renders every diagnostic in err with its source excerpt.
func renderErrors(err error, input string) string {
	var diags lang.Diagnostics
	if !errors.As(err, &diags) {
		return errorStyle.Render("error: " + err.Error())
	}

	var b strings.Builder

	for _, d := range diags {
		b.WriteString(errorStyle.Render("error: " + d.Error()))
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render(d.Snippet(input)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
