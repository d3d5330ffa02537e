package lang

import (
	"encoding/json"
	"strconv"

	"github.com/ardnew/tacit/lang/ast"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the tree of p to native Go maps and slices. Each node is a
// map holding its variant under "kind", its location under "span", and its
// children by field name.
//
// The conversion is one-way; there is no reader for it.
func (p *Program) ToMap() map[string]any {
	items := make([]any, len(p.Items))
	for i, it := range p.Items {
		items[i] = itemMap(it)
	}

	return map[string]any{
		"source":   p.Source,
		"encoding": p.Encoding.String(),
		"items":    items,
	}
}

func node(kind string, span ast.Span, fields ...any) map[string]any {
	m := map[string]any{"kind": kind, "span": span.String()}

	for i := 0; i+1 < len(fields); i += 2 {
		m[fields[i].(string)] = fields[i+1]
	}

	return m
}

func itemMap(it ast.Item) map[string]any {
	switch v := it.(type) {
	case ast.FunctionDef:
		m := node("fn", v.Span(), "name", string(v.Name.Value))
		if v.Doc != nil {
			m["doc"] = v.Doc.Value
		}

		funcFields(m, v.Func)

		return m
	case ast.ExprItem:
		return node("expr", v.Span(), "expr", exprMap(v.Expr))
	case ast.Let:
		return node("let", v.Span(),
			"pattern", patternMap(v.Pattern), "expr", exprMap(v.Expr))
	case ast.Const:
		return node("const", v.Span(),
			"name", string(v.Name.Value), "expr", exprMap(v.Expr))
	}

	return nil
}

func funcFields(m map[string]any, f ast.Func) {
	params := make([]any, len(f.Params))
	for i, param := range f.Params {
		params[i] = string(param.Value)
	}

	m["id"] = f.ID.String()
	m["params"] = params
	m["body"] = blockMap(f.Body)
}

func blockMap(b ast.Block) map[string]any {
	items := make([]any, len(b.Items))
	for i, it := range b.Items {
		items[i] = itemMap(it)
	}

	return map[string]any{"items": items, "expr": exprMap(b.Expr)}
}

func patternMap(p ast.Spanned[ast.Pattern]) map[string]any {
	switch v := p.Value.(type) {
	case ast.IdentPattern:
		return node("ident", p.Span, "name", string(v.Name))
	case ast.ListPattern:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = patternMap(item)
		}

		return node("list", p.Span, "items", items)
	default:
		return node("discard", p.Span)
	}
}

func exprsMap(xs []ast.Spanned[ast.Expr]) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = exprMap(x)
	}

	return out
}

func exprMap(e ast.Spanned[ast.Expr]) map[string]any {
	sp := e.Span

	switch v := ast.Of(e.Value).(type) {
	case ast.IfExpr:
		return node("if", sp, "cond", exprMap(v.Cond),
			"then", blockMap(v.IfTrue), "else", blockMap(v.IfFalse))
	case ast.CallExpr:
		return node("call", sp, "func", exprMap(v.Func), "arg", exprMap(v.Arg))
	case ast.BinExpr:
		return node("bin", sp, "op", v.Op.Value.String(),
			"left", exprMap(v.Left), "right", exprMap(v.Right))
	case ast.PipeExpr:
		return node("pipe", sp, "op", v.Op.Value.String(),
			"left", exprMap(v.Left), "right", exprMap(v.Right))
	case ast.LogicExpr:
		return node("logic", sp, "op", v.Op.Value.String(),
			"left", exprMap(v.Left), "right", exprMap(v.Right))
	case ast.RealLit:
		return node("real", sp, "value", v.Text)
	case ast.IntLit:
		return node("int", sp, "value", v.Text)
	case ast.CharLit:
		return node("char", sp, "value", string(v.Value))
	case ast.StringLit:
		return node("string", sp, "value", v.Value)
	case ast.FormatStringLit:
		segs := make([]any, len(v.Segments))
		for i, seg := range v.Segments {
			segs[i] = seg
		}

		return node("format", sp, "segments", segs)
	case ast.BoolLit:
		return node("bool", sp, "value", strconv.FormatBool(v.Value))
	case ast.IdentExpr:
		return node("ident", sp, "name", string(v.Name))
	case ast.Placeholder:
		return node("placeholder", sp)
	case ast.ListExpr:
		return node("list", sp, "items", exprsMap(v.Items))
	case ast.ArrayExpr:
		return node("array", sp, "items", exprsMap(v.Items))
	case ast.ParenedExpr:
		return node("parened", sp, "inner", exprMap(v.Inner))
	case ast.FuncExpr:
		m := node("func", sp)
		funcFields(m, v.Func)

		return m
	default:
		return node("unit", sp)
	}
}
