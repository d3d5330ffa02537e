package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/tacit/lang/ast"
)

// Styles for parameter hints.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// application is a function application detected at the cursor.
type application struct {
	name     string // applied function
	argIndex int    // 0-based index of the argument under the cursor
	ok       bool
}

// detectApplication finds the application the cursor is in. Application is
// juxtaposition: within the innermost open group, the operand run that ends
// at the cursor starts with the applied name, and every following atom is an
// argument. A cursor after whitespace starts a new argument.
func detectApplication(input string, cursor int) application {
	cursor = min(cursor, len(input))
	text := input[:cursor]

	start := operandStart(text)

	atoms := atoms(text[start:])
	if len(atoms) == 0 || !isName(atoms[0]) {
		return application{}
	}

	args := len(atoms) - 1

	// Still typing the last atom: it is the argument under the cursor.
	if r, _ := utf8.DecodeLastRuneInString(text); r != ' ' && r != '\t' {
		args--
	}

	if args < 0 {
		return application{}
	}

	return application{name: atoms[0], argIndex: args, ok: true}
}

// operandStart returns the offset after the last operator, separator or
// unclosed group opener of text.
func operandStart(text string) int {
	depth := 0

	for i := len(text); i > 0; {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size

		switch r {
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			if depth == 0 {
				return i + size
			}

			depth--
		case '+', '-', '*', '/', '<', '>', '=', '!', '&', '|', '.', ',', ';', '\\', '$', '"':
			if depth == 0 {
				return i + size
			}
		}
	}

	return 0
}

// atoms splits an operand run into its top-level atoms: names, literals and
// balanced groups.
func atoms(text string) []string {
	var (
		out   []string
		depth int
		begin = -1
	)

	for i, r := range text {
		switch {
		case r == '(' || r == '[' || r == '{':
			if depth == 0 && begin < 0 {
				begin = i
			}

			depth++

		case r == ')' || r == ']' || r == '}':
			depth--

		case depth == 0 && (r == ' ' || r == '\t'):
			if begin >= 0 {
				out = append(out, text[begin:i])
				begin = -1
			}

		case begin < 0:
			begin = i
		}
	}

	if begin >= 0 {
		out = append(out, text[begin:])
	}

	return out
}

// isName reports whether atom is a plain identifier.
func isName(atom string) bool {
	first, _ := utf8.DecodeRuneInString(atom)
	if !ast.IsIdentStart(first) {
		return false
	}

	return strings.IndexFunc(atom, func(r rune) bool { return !isWordRune(r) }) < 0
}

// renderSignatureHint renders "name p1 p2" with the parameter at argIdx
// highlighted. Arguments past the last parameter highlight nothing.
func renderSignatureHint(name string, params []string, argIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))

	for i, param := range params {
		b.WriteString(signatureStyle.Render(" "))

		if i == argIdx {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	if len(params) == 0 {
		b.WriteString(signatureStyle.Render(" (no parameters)"))
	}

	return b.String()
}
