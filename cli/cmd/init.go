package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/log"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// ignoredFlags are the flag name prefixes never written to the
// configuration file.
var ignoredFlags = []string{"help", "version", "pprof"}

// Init writes the current flag values to the configuration file as tacit
// const items.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	confPath, ok := kongVar(ctx, ConfigIdentifier)
	if !ok || confPath == "" {
		return ErrNoConfigPath
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	prog := i.buildProgram(ctx, confPath)

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = prog.Format(ctx, file, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("items", len(prog.Items)),
	)

	return nil
}

// buildProgram constructs the config program from current flag values.
func (i *Init) buildProgram(ctx context.Context, source string) *lang.Program {
	ktx := kongContextFrom(ctx)
	b := lang.NewBuilder(source)

	var items []ast.Item

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := flagExpr(b, ktx.FlagValue(flag))
		if ok {
			items = append(items, b.Const(ConfigName(flag.Name), val))
		}
	}

	return b.Program(items...)
}

// ConfigName returns the identifier that configures the flag named flag.
func ConfigName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// flagExpr returns a constant expression for a flag value, or false if the
// value is unset.
func flagExpr(b *lang.Builder, val any) (ast.Spanned[ast.Expr], bool) {
	switch v := val.(type) {
	case nil:
		return ast.Spanned[ast.Expr]{}, false

	case bool:
		return b.Ident(strconv.FormatBool(v)), true

	case string:
		if v == "" {
			return ast.Spanned[ast.Expr]{}, false
		}

		return b.String(v), true

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return b.Real(fmt.Sprint(v)), true

	case []string:
		if len(v) == 0 {
			return ast.Spanned[ast.Expr]{}, false
		}

		elems := make([]ast.Spanned[ast.Expr], len(v))
		for i, s := range v {
			elems[i] = b.String(s)
		}

		return b.List(elems...), true

	default:
		return b.String(fmt.Sprint(v)), true
	}
}
