package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/lang/builtin"
)

// isWordRune reports whether r may appear in a completed word.
func isWordRune(r rune) bool { return ast.IsIdentPart(r) }

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Any rune that cannot appear in an identifier
// delimits words. The word is empty when the cursor sits on a delimiter.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the words that may complete the word starting at
// wordStart: command names and their arguments in control mode, session
// identifiers, keywords and built-ins in eval mode.
func (s *session) candidates(mode inputMode, input string, wordStart int) []string {
	if mode == modeEval {
		return slices.Compact(slices.Sorted(slices.Values(slices.Concat(
			s.prog.Identifiers(),
			lang.Keywords(s.encoding),
			builtin.Names(),
		))))
	}

	before := strings.Fields(input[:wordStart])
	if len(before) == 0 {
		return ctrlCommands
	}

	switch before[0] {
	case "view", "v":
		if len(before) == 1 {
			return viewModes
		}
	case "show", "s":
		var names []string

		for it := range s.prog.All() {
			if name, _ := declName(it); name != "" {
				names = append(names, strings.Split(name, ", ")...)
			}
		}

		return names
	}

	return nil
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best-first, along with the word boundaries. An empty word
// has no matches so the hint line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	candidates := m.session.candidates(m.mode, input, wordStart)
	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

var (
	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedHighlightStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("4")).
				Bold(true)
)

// renderCandidate renders a single candidate with matched characters
// highlighted. Built-in functions are suffixed with their arity.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, highlightStyle
	if selected {
		base, highlight = selectedStyle, selectedHighlightStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if _, ok := builtin.LookupOp1(match.Str); ok {
		b.WriteString(hintStyle.Render("/1"))
	} else if _, ok := builtin.LookupOp2(match.Str); ok {
		b.WriteString(hintStyle.Render("/2"))
	}

	return b.String()
}
