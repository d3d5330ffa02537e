package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/log"
)

// Check parses the input sources, verifies the tree and evaluates every
// constant. Each problem is printed with the source line it refers to.
type Check struct {
	SourceArgs `embed:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, err := inputFrom(ctx).with(c.Sources).parse(ctx)
	if in.prog == nil {
		return err
	}

	diags := collect(err)

	// A tree with parse errors holds recovery placeholders; only verify
	// trees that parsed cleanly.
	if len(diags) == 0 {
		diags = append(diags, collect(lang.Check(in.prog))...)
	}

	if len(diags) == 0 {
		_, err := in.prog.Consts(ctx)
		diags = append(diags, collect(err)...)
	}

	if len(diags) == 0 {
		log.DebugContext(ctx, "check passed", slog.Int("items", len(in.prog.Items)))

		return nil
	}

	if err := report(output(ctx), diags, in.text); err != nil {
		return err
	}

	return ErrCheckFailed.With(slog.Int("diagnostics", len(diags)))
}

// collect flattens err into its diagnostics.
func collect(err error) lang.Diagnostics {
	if err == nil {
		return nil
	}

	var diags lang.Diagnostics
	if errors.As(err, &diags) {
		return diags
	}

	return lang.Diagnostics{lang.WrapError(err)}
}

// report writes each diagnostic followed by its source excerpt.
func report(w io.Writer, diags lang.Diagnostics, text map[string]string) error {
	for _, d := range diags {
		_, err := fmt.Fprintf(w, "%s\n%s", d.Error(), d.Snippet(text[d.Span().Source]))
		if err != nil {
			return err
		}
	}

	return nil
}
