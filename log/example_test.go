package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/tacit/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("program parsed", slog.String("source", "main.tc"), slog.Int("items", 3))
	logger.Debug("not written at the default level")

	// Output:
	// level=INFO msg="program parsed" source=main.tc items=3
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout(""),
		log.WithPretty(false),
		log.WithLevel(log.LevelTrace))

	logger.Trace("token", slog.String("kind", "ident"))

	// Output:
	// {"level":"TRACE","msg":"token","kind":"ident"}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false)).
		With(slog.String("cmd", "check"))

	logger.Warn("duplicate binder", slog.String("name", "x"))

	// Output:
	// level=WARN msg="duplicate binder" cmd=check name=x
}

func Example_withContext() {
	type sessionKey struct{}

	ctx := context.WithValue(context.Background(), sessionKey{}, "repl")

	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
	logger.DebugContext(ctx, "line evaluated", slog.Int("line", 1))
}
