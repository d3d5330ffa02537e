// Package cli contains the command line interface for tacit.
//
// # Usage
//
//	tacit [flags] [eval] [NAME...]
//	tacit fmt {native|json|yaml|ast} [SOURCE...]
//	tacit check [SOURCE...]
//	tacit repl [SOURCE...]
//	tacit init [--force]
//
// Sources are named with --source (-s) or as command arguments; "-" and the
// absence of sources read stdin. Relative names missing from the working
// directory are searched for in the --path (-I) directories and then in the
// directories listed by the TACIT_PATH environment variable.
//
// # Configuration
//
// Flags are also read from files in the user configuration directory, e.g.
// ~/.config/tacit on Linux:
//
//   - config: tacit source whose const items set flags
//   - config.json: a JSON object keyed by flag name
//   - config.yaml: a YAML mapping keyed by flag name
//
// In the tacit file a flag name is spelled with underscores:
//
//	const log_level = "debug"
//	const encoding = "separated"
//	const path = ["/usr/share/tacit"]
//
// "tacit init" writes the current flag values in this form. Command-line
// flags override configured values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/tacit/pprof)
package cli
