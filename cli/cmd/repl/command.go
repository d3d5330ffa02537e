package repl

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/lang/ast"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "show", "view", "consts", "edit", "clear", "quit",
}

// viewModes are the arguments of the view command.
var viewModes = []string{"fmt", "json", "tree", "yaml"}

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help          Print this text
  list          List session declarations
  show NAME     Print the declaration of NAME
  view MODE     Print the session as fmt, json, tree or yaml
  consts        Evaluate every session constant
  edit          Edit the session in external $EDITOR
  clear         Clear screen
  quit          Exit REPL

Usage:
  Type declarations (fn, let, const) to extend the session
  Type an expression to see its formatted tree and constant value
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatCtrlCommand(input))
	show := func(s string) (model, tea.Cmd) {
		return m, tea.Sequence(echo, tea.Println(strings.TrimSuffix(s, "\n")))
	}

	ctx := m.ctxFunc()

	switch cmd, args := parts[0], parts[1:]; cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return show(helpMessage())

	case "l", "list":
		return show(m.session.list(ctx))

	case "s", "show":
		return show(m.session.show(ctx, args))

	case "v", "view":
		return show(m.session.view(ctx, args))

	case "consts":
		return show(m.session.consts(ctx))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		prog:     m.session.prog,
		encoding: m.session.encoding,
		ctxFunc:  m.ctxFunc,
		logger:   m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if cmd.result == nil {
			return editCancelledMsg{}
		}

		return editDoneMsg{prog: cmd.result}
	})
}

// list renders one line per session declaration.
func (s *session) list(ctx context.Context) string {
	var b strings.Builder

	for it := range s.prog.All() {
		name, kind := declName(it)
		if name == "" {
			continue
		}

		b.WriteString("  ")
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(hintStyle.Render(kind + " " + preview(formatItem(ctx, it))))
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		return hintStyle.Render("no declarations")
	}

	return b.String()
}

// show renders the declaration of each named identifier.
func (s *session) show(ctx context.Context, names []string) string {
	if len(names) == 0 {
		return errorStyle.Render("usage: show NAME...")
	}

	var b strings.Builder

	for _, name := range names {
		it, ok := s.prog.Lookup(name)
		if !ok {
			b.WriteString(errorStyle.Render(name + ": not declared"))
		} else {
			b.WriteString(formatItem(ctx, it))
		}

		b.WriteByte('\n')
	}

	return b.String()
}

// view renders the whole session in one of [viewModes].
func (s *session) view(ctx context.Context, args []string) string {
	mode := "fmt"
	if len(args) > 0 {
		mode = args[0]
	}

	var (
		b   strings.Builder
		err error
	)

	switch mode {
	case "fmt":
		err = s.prog.Format(ctx, &b, 2)
	case "json":
		err = s.prog.FormatJSON(ctx, &b, 2)
	case "yaml":
		err = s.prog.FormatYAML(ctx, &b, 2)
	case "tree":
		err = s.prog.Print(&b)
	default:
		return errorStyle.Render("usage: view " + strings.Join(viewModes, "|"))
	}

	if err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	return b.String()
}

// consts evaluates every session constant.
func (s *session) consts(ctx context.Context) string {
	consts, err := s.prog.Consts(ctx)

	var b strings.Builder

	for _, c := range consts {
		b.WriteString("  ")
		b.WriteString(c.Name)
		b.WriteString(" = ")
		b.WriteString(resultStyle.Render(lang.FormatValue(c.Value)))
		b.WriteString(hintStyle.Render(" : " + lang.ValueType(c.Value)))
		b.WriteByte('\n')
	}

	var diags lang.Diagnostics
	if errors.As(err, &diags) {
		for _, d := range diags {
			b.WriteString(errorStyle.Render("  " + d.Error()))
			b.WriteByte('\n')
		}
	}

	if b.Len() == 0 {
		return hintStyle.Render("no constants")
	}

	return b.String()
}

// declName returns the first name an item declares and the item's keyword.
func declName(it ast.Item) (name, kind string) {
	switch v := it.(type) {
	case ast.FunctionDef:
		return string(v.Name.Value), "fn"
	case ast.Const:
		return string(v.Name.Value), "const"
	case ast.Let:
		names := make([]string, 0, 1)
		for _, b := range ast.Binders(v.Pattern) {
			names = append(names, string(b.Value))
		}

		return strings.Join(names, ", "), "let"
	}

	return "", ""
}

// preview shortens text to a single line.
func preview(text string) string {
	const maxPreview = 40

	line, _, more := strings.Cut(text, "\n")
	if more || len(line) > maxPreview {
		if len(line) > maxPreview-3 {
			line = line[:maxPreview-3]
		}

		return line + "..."
	}

	return line
}
