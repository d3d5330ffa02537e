package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/tacit/lang"
)

// Eval evaluates the constants of the input sources and prints them as
// "name = value" lines in source order.
type Eval struct {
	Names []string `arg:"" help:"Constants to print (default all)" name:"name" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, err := inputFrom(ctx).parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "eval"))
	}

	consts, cerr := in.prog.Consts(ctx)

	if cerr == nil {
		for _, name := range e.Names {
			if !slices.ContainsFunc(consts, func(c lang.Constant) bool { return c.Name == name }) {
				return ErrUnknownConstant.With(slog.String("name", name))
			}
		}
	}

	w := output(ctx)

	for _, c := range consts {
		if len(e.Names) > 0 && !slices.Contains(e.Names, c.Name) {
			continue
		}

		if _, err := fmt.Fprintf(w, "%s = %s\n", c.Name, lang.FormatValue(c.Value)); err != nil {
			return err
		}
	}

	if cerr != nil {
		return ErrEval.Wrap(cerr).With(slog.String("command", "eval"))
	}

	return nil
}
