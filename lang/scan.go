package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/tacit/lang/ast"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokSep
	tokDoc
	tokIdent
	tokNumber
	tokChar
	tokString
	tokFormat
	tokUnderscore
	tokFn
	tokLet
	tokConst
	tokIf
	tokThen
	tokElse
	tokTrue
	tokFalse
	tokLParen
	tokRParen
	tokLBrack
	tokHashBrack
	tokRBrack
	tokLBrace
	tokRBrace
	tokComma
	tokAssign
	tokArrow
	tokLambda
	tokOp
	tokPipe
)

var tokenNames = [...]string{
	tokEOF:        "end of input",
	tokSep:        "separator",
	tokDoc:        "doc comment",
	tokIdent:      "identifier",
	tokNumber:     "number",
	tokChar:       "character",
	tokString:     "string",
	tokFormat:     "format string",
	tokUnderscore: "_",
	tokFn:         "fn",
	tokLet:        "let",
	tokConst:      "const",
	tokIf:         "if",
	tokThen:       "then",
	tokElse:       "else",
	tokTrue:       "true",
	tokFalse:      "false",
	tokLParen:     "(",
	tokRParen:     ")",
	tokLBrack:     "[",
	tokHashBrack:  "#[",
	tokRBrack:     "]",
	tokLBrace:     "{",
	tokRBrace:     "}",
	tokComma:      ",",
	tokAssign:     "=",
	tokArrow:      "->",
	tokLambda:     `\`,
	tokOp:         "operator",
	tokPipe:       "pipe",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}

	return "token(" + strconv.Itoa(int(k)) + ")"
}

// Keywords recognized in every encoding.
var keywords = map[string]tokenKind{
	"fn":    tokFn,
	"let":   tokLet,
	"const": tokConst,
	"if":    tokIf,
	"then":  tokThen,
	"else":  tokElse,
}

// Keywords returns the reserved words of enc.
func Keywords(enc ast.Encoding) []string {
	words := []string{"fn", "let", "const", "if", "then", "else"}
	if enc == ast.Separated {
		words = append(words, "true", "false")
	}

	return words
}

// interp is the raw text of one interpolated expression.
type interp struct {
	text string
	at   ast.Loc
}

// start returns the location of the first non-space character of in.
func (in interp) start() ast.Loc {
	lead := in.text[:len(in.text)-len(strings.TrimLeftFunc(in.text, unicode.IsSpace))]

	at := in.at
	at.Offset += len(lead)
	at.Column += utf8.RuneCountInString(lead)

	return at
}

type token struct {
	kind      tokenKind
	text      string   // source text
	value     string   // decoded char, string or doc text
	span      ast.Span // location in source
	segments  []string // format string segments
	interps   []interp // format string expressions
	bin       ast.BinOp
	pipe      ast.PipeOp
	lineStart bool    // first token on its line
	doc       []token // doc comment lines directly before the token
}

// describe returns a short description of t for diagnostics.
func (t token) describe() string {
	switch t.kind {
	case tokEOF, tokSep:
		return t.kind.String()
	case tokIdent, tokNumber:
		return t.kind.String() + " " + t.text
	default:
		return strconv.Quote(t.text)
	}
}

// canEnd reports whether an expression may end with a token of kind k.
func (k tokenKind) canEnd() bool {
	switch k {
	case tokIdent, tokNumber, tokChar, tokString, tokFormat, tokUnderscore,
		tokTrue, tokFalse, tokRParen, tokRBrack, tokRBrace:
		return true
	}

	return false
}

// Operators in longest-match order.
var operators = []struct {
	text string
	kind tokenKind
	bin  ast.BinOp
	pipe ast.PipeOp
}{
	{text: "||", kind: tokOp, bin: ast.Or},
	{text: "|>", kind: tokPipe, pipe: ast.Forward},
	{text: "&&", kind: tokOp, bin: ast.And},
	{text: "==", kind: tokOp, bin: ast.Eq},
	{text: "!=", kind: tokOp, bin: ast.Ne},
	{text: "<=", kind: tokOp, bin: ast.Le},
	{text: "<*", kind: tokOp, bin: ast.LeftThen},
	{text: "<:", kind: tokOp, bin: ast.Left},
	{text: "<|", kind: tokPipe, pipe: ast.Backward},
	{text: "<", kind: tokOp, bin: ast.Lt},
	{text: ">=", kind: tokOp, bin: ast.Ge},
	{text: ">", kind: tokOp, bin: ast.Gt},
	{text: "*>", kind: tokOp, bin: ast.RightThen},
	{text: "*", kind: tokOp, bin: ast.Mul},
	{text: ":>", kind: tokOp, bin: ast.Right},
	{text: ".:", kind: tokOp, bin: ast.BlackBird},
	{text: ".", kind: tokOp, bin: ast.Compose},
	{text: "+", kind: tokOp, bin: ast.Add},
	{text: "->", kind: tokArrow},
	{text: "-", kind: tokOp, bin: ast.Sub},
	{text: "/", kind: tokOp, bin: ast.Div},
	{text: "=", kind: tokAssign},
	{text: `\`, kind: tokLambda},
	{text: ",", kind: tokComma},
	{text: ";", kind: tokSep},
	{text: "(", kind: tokLParen},
	{text: ")", kind: tokRParen},
	{text: "[", kind: tokLBrack},
	{text: "]", kind: tokRBrack},
	{text: "{", kind: tokLBrace},
	{text: "}", kind: tokRBrace},
}

// scanner splits source text into tokens on demand.
//
// A newline is a separator when the previous token can end an expression and
// the innermost open bracket, if any, is a brace.
type scanner struct {
	src       string
	source    string
	enc       ast.Encoding
	pos       int
	base      int // offset of src within source
	line      int
	col       int
	last      tokenKind
	lineStart bool
	nest      []tokenKind
	errs      Diagnostics
}

func newScanner(src, source string, enc ast.Encoding, at ast.Loc) *scanner {
	if at.Line == 0 {
		at = ast.Loc{Line: 1, Column: 1}
	}

	return &scanner{
		src:       src,
		source:    source,
		enc:       enc,
		base:      at.Offset,
		line:      at.Line,
		col:       at.Column,
		last:      tokSep,
		lineStart: true,
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
		s.lineStart = true
	} else {
		s.col++
	}
}

func (s *scanner) loc() ast.Loc {
	return ast.Loc{Offset: s.base + s.pos, Line: s.line, Column: s.col}
}

func (s *scanner) spanFrom(start ast.Loc) ast.Span {
	return ast.MakeSpan(s.source, start, s.loc())
}

// reset forgets open brackets, as after a syntax error.
func (s *scanner) reset() { s.nest = s.nest[:0] }

func (s *scanner) newlineSeparates() bool {
	return s.last.canEnd() &&
		(len(s.nest) == 0 || s.nest[len(s.nest)-1] == tokLBrace)
}

// fail records malformed input that the scanner skipped.
func (s *scanner) fail(err *Error) { s.errs = append(s.errs, err) }

// next returns the next token. Malformed input is skipped and recorded in
// s.errs.
func (s *scanner) next() token {
	for !s.eof() {
		r := s.peek()

		switch {
		case r == '\n':
			start := s.loc()
			sep := s.newlineSeparates()
			s.advance()

			if sep {
				return s.emit(token{kind: tokSep, text: "\n", span: s.spanFrom(start)})
			}
		case unicode.IsSpace(r):
			s.advance()
		case r == '#' && !strings.HasPrefix(s.src[s.pos:], "#["):
			if strings.HasPrefix(s.src[s.pos:], "##") {
				return s.doc()
			}

			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		default:
			if t, ok := s.token(); ok {
				return t
			}
		}
	}

	start := s.loc()
	if s.newlineSeparates() {
		return s.emit(token{kind: tokSep, span: s.spanFrom(start)})
	}

	return token{kind: tokEOF, span: s.spanFrom(start)}
}

// emit records t as the previous token and returns it.
func (s *scanner) emit(t token) token {
	if t.kind != tokSep {
		t.lineStart = s.lineStart
		s.lineStart = false
	}

	if t.kind != tokDoc {
		s.last = t.kind
	}

	switch t.kind {
	case tokLParen, tokLBrack, tokHashBrack, tokLBrace:
		s.nest = append(s.nest, t.kind)
	case tokRParen, tokRBrack, tokRBrace:
		if len(s.nest) > 0 {
			s.nest = s.nest[:len(s.nest)-1]
		}
	}

	return t
}

func (s *scanner) doc() token {
	start := s.loc()
	begin := s.pos

	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}

	text := s.src[begin:s.pos]
	value := strings.TrimPrefix(strings.TrimLeft(text, "#"), " ")

	return s.emit(token{
		kind: tokDoc, text: text, value: value, span: s.spanFrom(start),
	})
}

// token scans one token at the current position. It reports false when the
// input there was malformed and skipped.
func (s *scanner) token() (token, bool) {
	start := s.loc()
	begin := s.pos
	r := s.peek()

	switch {
	case r == '_' || ast.IsIdentStart(r):
		for !s.eof() && ast.IsIdentPart(s.peek()) {
			s.advance()
		}

		t := token{kind: tokIdent, text: s.src[begin:s.pos], span: s.spanFrom(start)}
		if kind, ok := keywords[t.text]; ok {
			t.kind = kind
		} else if t.text == "_" {
			t.kind = tokUnderscore
		} else if s.enc == ast.Separated && (t.text == "true" || t.text == "false") {
			t.kind = tokTrue
			if t.text == "false" {
				t.kind = tokFalse
			}
		}

		return s.emit(t), true
	case r >= '0' && r <= '9':
		return s.emit(s.number(start)), true
	case r == '\'' || r == '"':
		return s.quoted(start, r)
	case r == '$' && strings.HasPrefix(s.src[s.pos:], `$"`):
		return s.format(start)
	case r == '#':
		s.advance()
		s.advance()

		return s.emit(token{kind: tokHashBrack, text: "#[", span: s.spanFrom(start)}), true
	}

	for _, op := range operators {
		if strings.HasPrefix(s.src[s.pos:], op.text) {
			for range op.text {
				s.advance()
			}

			return s.emit(token{
				kind: op.kind, text: op.text, span: s.spanFrom(start),
				bin: op.bin, pipe: op.pipe,
			}), true
		}
	}

	s.advance()
	s.fail(ErrSyntax.At(s.spanFrom(start)).
		Wrap(fmt.Errorf("unexpected character %q", r)).
		With(slog.String("found", string(r))))

	return token{}, false
}

func (s *scanner) digits() {
	for !s.eof() && s.peek() >= '0' && s.peek() <= '9' {
		s.advance()
	}
}

func (s *scanner) number(start ast.Loc) token {
	begin := s.pos

	s.digits()

	rest := s.src[s.pos:]
	if len(rest) > 1 && rest[0] == '.' && rest[1] >= '0' && rest[1] <= '9' {
		s.advance()
		s.digits()
	}

	rest = s.src[s.pos:]
	if len(rest) > 1 && (rest[0] == 'e' || rest[0] == 'E') {
		exp := rest[1:]
		if exp[0] == '+' || exp[0] == '-' {
			exp = exp[1:]
		}

		if exp != "" && exp[0] >= '0' && exp[0] <= '9' {
			for range len(rest) - len(exp) {
				s.advance()
			}

			s.digits()
		}
	}

	return token{kind: tokNumber, text: s.src[begin:s.pos], span: s.spanFrom(start)}
}

// quoted scans a character or string literal with Go escapes.
func (s *scanner) quoted(start ast.Loc, quote rune) (token, bool) {
	begin := s.pos
	kind := tokString

	if quote == '\'' {
		kind = tokChar
	}

	s.advance()

	for {
		if s.eof() || s.peek() == '\n' {
			s.fail(ErrSyntax.At(s.spanFrom(start)).
				Wrap(fmt.Errorf("unterminated %s literal", kind)))

			return token{}, false
		}

		r := s.peek()
		s.advance()

		if r == '\\' {
			s.advance()

			continue
		}

		if r == quote {
			break
		}
	}

	t := token{kind: kind, text: s.src[begin:s.pos], span: s.spanFrom(start)}

	value, err := strconv.Unquote(t.text)
	if err != nil {
		s.fail(ErrSyntax.At(t.span).
			Wrap(fmt.Errorf("invalid %s literal %s", kind, t.text)))
	}

	t.value = value

	return s.emit(t), true
}

// format scans $"...". Literal segments have escapes resolved; each {expr}
// contributes its trimmed source text as a segment.
func (s *scanner) format(start ast.Loc) (token, bool) {
	begin := s.pos

	s.advance()
	s.advance()

	t := token{kind: tokFormat}

	var raw strings.Builder

	flush := func() error {
		lit, err := strconv.Unquote(`"` + raw.String() + `"`)
		raw.Reset()
		t.segments = append(t.segments, lit)

		return err
	}

	fail := func(msg string) (token, bool) {
		s.fail(ErrSyntax.At(s.spanFrom(start)).Wrap(errors.New(msg)))

		return token{}, false
	}

	for {
		if s.eof() || s.peek() == '\n' {
			return fail("unterminated format string")
		}

		rest := s.src[s.pos:]

		switch {
		case rest[0] == '"':
			s.advance()

			if err := flush(); err != nil {
				return fail("invalid escape in format string")
			}

			t.text = s.src[begin:s.pos]
			t.span = s.spanFrom(start)

			return s.emit(t), true
		case rest[0] == '\\' && len(rest) > 1:
			raw.WriteString(rest[:2])
			s.advance()
			s.advance()
		case strings.HasPrefix(rest, "{{"), strings.HasPrefix(rest, "}}"):
			raw.WriteByte(rest[0])
			s.advance()
			s.advance()
		case rest[0] == '{':
			if err := flush(); err != nil {
				return fail("invalid escape in format string")
			}

			s.advance()

			in, ok := s.interpolation()
			if !ok {
				return fail("unterminated interpolation in format string")
			}

			text := strings.TrimSpace(in.text)
			if text == "" {
				return fail("empty interpolation in format string")
			}

			t.segments = append(t.segments, text)
			t.interps = append(t.interps, in)
		case rest[0] == '}':
			return fail("unmatched } in format string")
		default:
			raw.WriteRune(s.peek())
			s.advance()
		}
	}
}

// interpolation scans up to the brace closing an interpolated expression.
func (s *scanner) interpolation() (interp, bool) {
	in := interp{at: s.loc()}
	begin := s.pos
	depth := 1

	for !s.eof() && s.peek() != '\n' {
		switch r := s.peek(); r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				in.text = s.src[begin:s.pos]
				s.advance()

				return in, true
			}
		case '"', '\'':
			s.advance()

			for !s.eof() && s.peek() != r && s.peek() != '\n' {
				if s.peek() == '\\' {
					s.advance()
				}

				s.advance()
			}
		}

		s.advance()
	}

	return in, false
}
