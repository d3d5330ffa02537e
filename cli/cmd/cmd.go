package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/log"
	"github.com/ardnew/tacit/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// output returns the writer commands print results to.
func output(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// kongVar returns the interpolation variable name of the running application.
func kongVar(ctx context.Context, name string) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return "", false
	}

	v, ok := ktx.Model.Vars()[name]

	return v, ok
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName is the span source recorded for text read from stdin.
const stdinName = "<stdin>"

// Input describes where commands read tacit source text from and how they
// parse it.
type Input struct {
	// Sources lists files in the order they are parsed. "-" reads stdin.
	Sources []string
	// Search lists directories consulted for relative sources that do not
	// exist in the working directory.
	Search []string
	// Encoding selects the node vocabulary of parsed trees.
	Encoding ast.Encoding
	// Stdin replaces os.Stdin when non-nil.
	Stdin io.Reader
}

type inputKey struct{}

// WithInput returns a new context.Context containing in.
func WithInput(ctx context.Context, in Input) context.Context {
	return context.WithValue(ctx, inputKey{}, in)
}

func inputFrom(ctx context.Context) Input {
	in, _ := ctx.Value(inputKey{}).(Input)

	return in
}

// with returns a copy of in reading sources instead, unless sources is empty.
func (in Input) with(sources []string) Input {
	if len(sources) > 0 {
		in.Sources = sources
	}

	return in
}

func (in Input) stdin() io.Reader {
	if in.Stdin != nil {
		return in.Stdin
	}

	return os.Stdin
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// source is one resolved input.
type source struct {
	name string
	path string // empty for stdin
}

// resolve maps every source name to a file, searching the search path for
// relative names missing from the working directory.
//
// Duplicates are removed by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin source,
// placed last so it reads after all regular files. No sources at all reads
// stdin.
func (in Input) resolve() ([]source, error) {
	if len(in.Sources) == 0 {
		return []source{{name: stdinName}}, nil
	}

	var (
		srcs     []source
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})

	for _, name := range in.Sources {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path, err := in.locate(name)
		if err != nil {
			return nil, err
		}

		key, ok, err := statKey(path)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrap(err)
		}

		if ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		srcs = append(srcs, source{name: name, path: path})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinName})
	}

	return srcs, nil
}

// locate returns the path of the file named name.
func (in Input) locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return name, nil
	}

	for _, dir := range in.Search {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", pkg.ErrSourceNotFound.Wrapf("%s", name)
}

// statKey returns the identity of the file at path after resolving symlinks.
// The result is not ok when the platform does not report device/inode pairs.
func statKey(path string) (key fileKey, ok bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return key, false, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return key, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return key, false, err
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false, nil
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true, nil //nolint:unconvert
}

// parsed is the merged result of parsing every input source.
type parsed struct {
	prog *lang.Program
	text map[string]string // source text by span source
}

// parse reads and parses every source of in into one program. Parse errors
// of all sources are joined into a [lang.Diagnostics]; the program holds the
// recovered items of every source regardless.
func (in Input) parse(ctx context.Context) (parsed, error) {
	srcs, err := in.resolve()
	if err != nil {
		return parsed{}, err
	}

	out := parsed{text: make(map[string]string, len(srcs))}

	var diags lang.Diagnostics

	for _, src := range srcs {
		prog, text, err := in.parseOne(ctx, src)
		if prog == nil {
			return parsed{}, err
		}

		out.text[prog.Source] = text

		var d lang.Diagnostics
		if errors.As(err, &d) {
			diags = append(diags, d...)
		}

		if out.prog == nil {
			out.prog = prog
		} else {
			out.prog.Extend(prog)
		}
	}

	log.DebugContext(ctx, "sources parsed",
		slog.Int("sources", len(srcs)),
		slog.Int("items", len(out.prog.Items)),
		slog.Int("diagnostics", len(diags)),
	)

	return out, diags.Err()
}

func (in Input) parseOne(ctx context.Context, src source) (*lang.Program, string, error) {
	var r io.Reader

	if src.path == "" {
		r = in.stdin()
	} else {
		f, err := os.Open(src.path)
		if err != nil {
			return nil, "", pkg.ErrReadInput.Wrap(err)
		}
		defer f.Close()

		r = f
	}

	var text bytes.Buffer

	prog, err := lang.ParseReader(ctx, io.TeeReader(r, &text),
		lang.WithSource(src.name),
		lang.WithEncoding(in.Encoding),
		lang.WithLogger(log.Default()),
	)
	if errors.Is(err, lang.ErrReadInput) {
		return nil, "", err
	}

	return prog, text.String(), err
}
