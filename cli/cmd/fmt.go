package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/pkg"
)

// Fmt parses the input sources and writes them in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native tacit syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented tree with spans."`
}

// SourceArgs are the positional sources shared by the fmt subcommands. They
// replace the global --source list when given.
type SourceArgs struct {
	Sources []string `arg:"" help:"Source input file(s) or '-' for stdin." name:"source" optional:""`
}

// format parses the sources and hands the program to write.
func (s SourceArgs) format(
	ctx context.Context,
	name string,
	write func(*lang.Program, io.Writer) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, err := inputFrom(ctx).with(s.Sources).parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", name))
	}

	return write(in.prog, output(ctx))
}

// Native formats input as native tacit syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	SourceArgs `embed:""`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) error {
	return f.format(ctx, "native", func(p *lang.Program, w io.Writer) error {
		return p.Format(ctx, w, f.Indent)
	})
}

// JSON formats input as a JSON tree.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	SourceArgs `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.format(ctx, "json", func(p *lang.Program, w io.Writer) error {
		if err := p.FormatJSON(ctx, w, j.Indent); err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		return nil
	})
}

// YAML formats input as a YAML tree.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	SourceArgs `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.format(ctx, "yaml", func(p *lang.Program, w io.Writer) error {
		if err := p.FormatYAML(ctx, w, y.Indent); err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

		return nil
	})
}

// AST prints the tree with the span of every node.
type AST struct {
	SourceArgs `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	return a.format(ctx, "ast", func(p *lang.Program, w io.Writer) error {
		return p.Print(w)
	})
}
