package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/ardnew/tacit/cli/cmd"
	"github.com/ardnew/tacit/lang/ast"
	"github.com/ardnew/tacit/log"
	"github.com/ardnew/tacit/pkg"
)

// CLI is the top-level command-line interface for tacit.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Encoding string   `default:"${encodingDefault}" enum:"${encodingEnum}"           help:"Node vocabulary of parsed trees (${enum})."                   short:"e"`
	Source   []string `help:"Input source file(s) or '-' for stdin."                                                                                     short:"s"`
	Path     []string `help:"Directories searched for relative sources, ahead of ${pathEnv}." placeholder:"DIR"                                         short:"I" type:"path"`

	Init  cmd.Init  `cmd:"" help:"Write the current flags to the configuration file."`
	Fmt   cmd.Fmt   `cmd:"" help:"Format source files."`
	Check cmd.Check `cmd:"" help:"Verify source files and their constants."`
	Repl  cmd.Repl  `cmd:"" help:"Start an interactive session."`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Print the values of constants."`
}

// Run executes the tacit CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Version(),
		"encodingDefault":    ast.DefaultEncoding.String(),
		"encodingEnum":       encodingEnum(),
		"pathEnv":            pkg.EnvVar("path"),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags take effect before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(loadYAML, configFilePath+".yaml"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	enc, err := ast.ParseEncoding(cli.Encoding)
	if err != nil {
		return pkg.ErrInvalidEncoding.Wrap(err)
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithInput(ctx, cmd.Input{
		Sources:  cli.Source,
		Search:   searchPath(cli.Path, os.Getenv(pkg.EnvVar("path"))),
		Encoding: enc,
	})

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	log.DebugContext(ctx, "command selected",
		slog.String("command", ktx.Command()),
		slog.String("encoding", enc.String()),
	)

	return ktx.Run(ctx, &cli)
}

// encodingEnum lists the encoding names accepted by --encoding.
func encodingEnum() string {
	var names []string
	for e := range ast.Encodings() {
		names = append(names, e.String())
	}

	return strings.Join(names, ",")
}

// searchPath places the --path directories ahead of the list in env, drops
// duplicates and keeps only existing directories.
func searchPath(dirs []string, env string) []string {
	list := mung.Make(
		mung.WithSubjectItems(filepath.SplitList(env)...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return slices.DeleteFunc(filepath.SplitList(list), func(s string) bool { return s == "" })
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
