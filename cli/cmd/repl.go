package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/tacit/cli/cmd/repl"
	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/log"
)

// Repl starts an interactive session. Declarations of the input sources, if
// any are given, are in scope from the first line.
type Repl struct {
	Sources []string `arg:"" help:"Source file(s) to preload or '-' for stdin." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return repl.ErrNoTerminal
	}

	in := inputFrom(ctx)

	prog := lang.NewProgram(nil, lang.WithEncoding(in.Encoding))

	// Stdin belongs to the terminal; only preload what was asked for.
	if len(r.Sources) > 0 || len(in.Sources) > 0 {
		p, err := in.with(r.Sources).parse(ctx)
		if err != nil {
			return lang.WrapError(err).With(slog.String("command", "repl"))
		}

		prog = p.prog
	}

	cacheDir, _ := kongVar(ctx, CacheIdentifier)

	return repl.Run(ctx, prog, repl.Config{
		CacheDir: cacheDir,
		Encoding: in.Encoding,
		Logger:   log.Default(),
	})
}
