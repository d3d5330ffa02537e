// Package log is a thin layer over [log/slog] used throughout tacit.
//
// A [Logger] is made once from functional options and never changes:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("parsed", slog.String("source", name), slog.Int("items", n))
//
// Methods take typed [slog.Attr] values only. Each level has a variant taking
// a context; the others use [DefaultContextProvider]. [LevelTrace] sits below
// debug and is meant for per-token detail such as the parser's.
//
// The zero Logger discards all output, which lets libraries hold a Logger
// that callers may or may not configure.
//
// # Default logger
//
// The package-level functions write through a process-wide logger, replaced
// with [SetDefault] or adjusted with [Config]. The command line configures it
// from its --log-* flags before any command runs.
//
// # Pretty output
//
// With [WithPretty] enabled (the default), records are written for reading
// rather than parsing: text without quoting, or JSON spread over lines.
// Colors are applied with lipgloss only when the output is a terminal.
package log
