package lang

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/tacit/lang/ast"
)

// Print writes an indented dump of the tree of p, one node per line with its
// span. It returns the first write error.
func (p *Program) Print(w io.Writer) error {
	t := &treeWriter{w: w}

	for _, it := range p.Items {
		t.dump(itemMap(it), 0)
	}

	return t.err
}

// PrintExpr writes an indented dump of e.
func PrintExpr(w io.Writer, e ast.Spanned[ast.Expr]) error {
	t := &treeWriter{w: w}
	t.dump(exprMap(e), 0)

	return t.err
}

// treeWriter writes dump lines until the first write error.
type treeWriter struct {
	w   io.Writer
	err error
}

func (t *treeWriter) put(item ...string) {
	if t.err != nil {
		return
	}

	_, t.err = io.WriteString(t.w, strings.Join(item, " ")+"\n")
}

// dump writes a node map as produced by [Program.ToMap]. Scalar fields
// follow the kind on the node's line; nested nodes are indented beneath it.
func (t *treeWriter) dump(m map[string]any, indent int) {
	prefix := strings.Repeat("  ", indent)

	kind, _ := m["kind"].(string)
	line := []string{prefix + kind}

	if span, ok := m["span"].(string); ok {
		line = append(line, "@"+span)
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		if key != "kind" && key != "span" {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	var nested []string

	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			line = append(line, key+"="+strconv.Quote(v))
		case []any:
			if scalars, ok := stringsOf(v); ok {
				line = append(line, key+"=["+strings.Join(scalars, ", ")+"]")
			} else {
				nested = append(nested, key)
			}
		default:
			nested = append(nested, key)
		}
	}

	t.put(line...)

	for _, key := range nested {
		t.put(prefix+"  "+key+":")

		switch v := m[key].(type) {
		case map[string]any:
			t.dumpChild(v, indent+2)
		case []any:
			for _, child := range v {
				if cm, ok := child.(map[string]any); ok {
					t.dumpChild(cm, indent+2)
				}
			}
		}
	}
}

// dumpChild writes a node, or the fields of a block, which has no kind.
func (t *treeWriter) dumpChild(m map[string]any, indent int) {
	if _, ok := m["kind"]; ok {
		t.dump(m, indent)

		return
	}

	prefix := strings.Repeat("  ", indent)

	if items, _ := m["items"].([]any); len(items) > 0 {
		t.put(prefix+"items:")

		for _, it := range items {
			if im, ok := it.(map[string]any); ok {
				t.dump(im, indent+1)
			}
		}
	}

	if e, ok := m["expr"].(map[string]any); ok {
		t.put(prefix+"expr:")
		t.dump(e, indent+1)
	}
}

// stringsOf returns the quoted elements of xs when all are strings.
func stringsOf(xs []any) ([]string, bool) {
	out := make([]string, len(xs))

	for i, x := range xs {
		s, ok := x.(string)
		if !ok {
			return nil, false
		}

		out[i] = strconv.Quote(s)
	}

	return out, true
}
