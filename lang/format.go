package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tacit/lang/ast"
)

// Format writes p in native tacit syntax.
//
// With indent > 0, items are written one per line and blocks are indented
// by indent spaces per level. With indent == 0, everything is written on one
// line separated by semicolons, and doc comments are omitted.
//
// Parentheses recorded in the tree are written as-is, and parentheses the
// printed text needs to parse back into the same tree are added. Parsing the
// output of Format yields a tree equal to p, after [ast.StripParens] where
// parentheses were added.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	pr := printer{indent: indent}

	for i, it := range p.Items {
		if i > 0 {
			pr.sep(0)
		}

		pr.item(it, 0)
	}

	pr.WriteString("\n")

	_, err := io.WriteString(w, pr.String())

	return err
}

// FormatExpr returns e in native tacit syntax on one line.
func FormatExpr(e ast.Spanned[ast.Expr]) string {
	var pr printer

	pr.expr(e, precPipe, true, 0)

	return pr.String()
}

// FormatJSON writes the tree of p as JSON.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tree of p as YAML.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

type printer struct {
	strings.Builder

	indent int
}

// sep separates items at nesting depth.
func (pr *printer) sep(depth int) {
	if pr.indent == 0 {
		pr.WriteString("; ")

		return
	}

	pr.WriteString("\n")
	pr.WriteString(strings.Repeat(" ", depth*pr.indent))
}

func (pr *printer) item(it ast.Item, depth int) {
	switch v := it.(type) {
	case ast.FunctionDef:
		if v.Doc != nil && pr.indent > 0 {
			for line := range strings.SplitSeq(v.Doc.Value, "\n") {
				pr.WriteString("## ")
				pr.WriteString(line)
				pr.sep(depth)
			}
		}

		pr.WriteString("fn ")
		pr.WriteString(string(v.Name.Value))
		pr.params(v.Func.Params)
		pr.WriteString(" = ")
		pr.body(v.Func.Body, depth)
	case ast.ExprItem:
		pr.expr(v.Expr, precPipe, true, depth)
	case ast.Let:
		pr.WriteString("let ")
		pr.pattern(v.Pattern.Value)
		pr.WriteString(" = ")
		pr.expr(v.Expr, precPipe, true, depth)
	case ast.Const:
		pr.WriteString("const ")
		pr.WriteString(string(v.Name.Value))
		pr.WriteString(" = ")
		pr.expr(v.Expr, precPipe, true, depth)
	}
}

func (pr *printer) params(params []ast.Spanned[ast.Ident]) {
	for _, param := range params {
		pr.WriteString(" ")
		pr.WriteString(string(param.Value))
	}
}

func (pr *printer) pattern(p ast.Pattern) {
	switch v := p.(type) {
	case ast.IdentPattern:
		pr.WriteString(string(v.Name))
	case ast.Discard:
		pr.WriteString("_")
	case ast.ListPattern:
		pr.WriteString("[")

		for i, item := range v.Items {
			if i > 0 {
				pr.WriteString(", ")
			}

			pr.pattern(item.Value)
		}

		pr.WriteString("]")
	}
}

// body writes a function or branch body. A block without items is written
// as its tail expression.
func (pr *printer) body(b ast.Block, depth int) {
	if len(b.Items) == 0 {
		pr.expr(b.Expr, precPipe, true, depth)

		return
	}

	pr.WriteString("{")

	inner := depth + 1
	if pr.indent == 0 {
		pr.WriteString(" ")
	} else {
		pr.sep(inner)
	}

	for i, it := range b.Items {
		if i > 0 {
			pr.sep(inner)
		}

		pr.item(it, inner)
	}

	if _, unit := ast.Of(b.Expr.Value).(ast.Unit); !unit {
		pr.sep(inner)
		pr.expr(b.Expr, precPipe, true, inner)
	}

	if pr.indent == 0 {
		pr.WriteString(" }")
	} else {
		pr.sep(depth)
		pr.WriteString("}")
	}
}

// exprPrec returns the binding strength of the outermost form of e.
func exprPrec(e ast.Expr) int {
	switch v := e.(type) {
	case ast.PipeExpr:
		return precPipe
	case ast.BinExpr:
		return binPrec(v.Op.Value)
	case ast.LogicExpr:
		return binPrec(v.Op.Value.BinOp())
	case ast.CallExpr:
		return precApp
	default:
		return precAtom
	}
}

// openEnded reports whether e extends as far right as the input allows.
func openEnded(e ast.Expr) bool {
	switch e.(type) {
	case ast.IfExpr, ast.FuncExpr:
		return true
	}

	return false
}

// expr writes e where an expression binding at least as tightly as atLeast
// is expected. Open forms are parenthesized unless they end the enclosing
// expression.
func (pr *printer) expr(e ast.Spanned[ast.Expr], atLeast int, last bool, depth int) {
	x := ast.Of(e.Value)

	if exprPrec(x) < atLeast || (openEnded(x) && !last) {
		pr.WriteString("(")
		pr.expr(e, precPipe, true, depth)
		pr.WriteString(")")

		return
	}

	switch v := x.(type) {
	case ast.Unit:
		pr.WriteString("()")
	case ast.IfExpr:
		pr.WriteString("if ")
		pr.expr(v.Cond, precPipe, true, depth)
		pr.WriteString(" then ")
		pr.body(v.IfTrue, depth)
		pr.WriteString(" else ")
		pr.body(v.IfFalse, depth)
	case ast.CallExpr:
		pr.expr(v.Func, precApp, false, depth)
		pr.WriteString(" ")
		pr.expr(v.Arg, precAtom, last, depth)
	case ast.BinExpr:
		pr.binary(v.Left, v.Op.Value.String(), binPrec(v.Op.Value), v.Right, last, depth)
	case ast.LogicExpr:
		op := v.Op.Value.BinOp()
		pr.binary(v.Left, op.String(), binPrec(op), v.Right, last, depth)
	case ast.PipeExpr:
		// |> is left and <| right associative; a <| pipe never appears as
		// the left operand without parentheses.
		lmin, rmin := precPipe, precOr
		if l, ok := v.Left.Value.(ast.PipeExpr); ok && l.Op.Value == ast.Backward {
			lmin = precOr
		}

		if v.Op.Value == ast.Backward {
			rmin = precPipe
		}

		pr.expr(v.Left, lmin, false, depth)
		pr.WriteString(" ")
		pr.WriteString(v.Op.Value.String())
		pr.WriteString(" ")
		pr.expr(v.Right, rmin, last, depth)
	case ast.RealLit:
		pr.WriteString(v.Text)
	case ast.IntLit:
		pr.WriteString(v.Text)
	case ast.CharLit:
		pr.WriteString(strconv.QuoteRune(v.Value))
	case ast.StringLit:
		pr.WriteString(strconv.Quote(v.Value))
	case ast.FormatStringLit:
		pr.format(v.Segments)
	case ast.BoolLit:
		pr.WriteString(strconv.FormatBool(v.Value))
	case ast.IdentExpr:
		pr.WriteString(string(v.Name))
	case ast.Placeholder:
		pr.WriteString("_")
	case ast.ListExpr:
		pr.list("[", v.Items, depth)
	case ast.ArrayExpr:
		pr.list("#[", v.Items, depth)
	case ast.ParenedExpr:
		pr.WriteString("(")
		pr.expr(v.Inner, precPipe, true, depth)
		pr.WriteString(")")
	case ast.FuncExpr:
		pr.WriteString(`\`)

		for _, param := range v.Func.Params {
			pr.WriteString(string(param.Value))
			pr.WriteString(" ")
		}

		pr.WriteString("-> ")
		pr.body(v.Func.Body, depth)
	}
}

// binary writes an infix operation. Operators binding at precCompose are
// right associative; the rest are left associative.
func (pr *printer) binary(
	left ast.Spanned[ast.Expr],
	op string,
	prec int,
	right ast.Spanned[ast.Expr],
	last bool,
	depth int,
) {
	lmin, rmin := prec, prec+1
	if prec == precCompose {
		lmin, rmin = prec+1, prec
	}

	pr.expr(left, lmin, false, depth)
	pr.WriteString(" ")
	pr.WriteString(op)
	pr.WriteString(" ")
	pr.expr(right, rmin, last, depth)
}

func (pr *printer) list(open string, items []ast.Spanned[ast.Expr], depth int) {
	pr.WriteString(open)

	for i, item := range items {
		if i > 0 {
			pr.WriteString(", ")
		}

		pr.expr(item, precPipe, true, depth)
	}

	pr.WriteString("]")
}

// format writes a format string, escaping braces in literal segments.
func (pr *printer) format(segments []string) {
	pr.WriteString(`$"`)

	for i, seg := range segments {
		if i%2 == 1 {
			pr.WriteString("{")
			pr.WriteString(seg)
			pr.WriteString("}")

			continue
		}

		quoted := strconv.Quote(seg)
		quoted = quoted[1 : len(quoted)-1]
		quoted = strings.ReplaceAll(quoted, "{", "{{")
		quoted = strings.ReplaceAll(quoted, "}", "}}")

		pr.WriteString(quoted)
	}

	pr.WriteString(`"`)
}
