// Package cmd implements the tacit subcommands.
//
// Each command is a kong command struct with a Run(context.Context) error
// method. Commands read their inputs from the [Input] stored in the context
// by [WithInput] and write to the stdout of the [kong.Context] stored by
// [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the tacit configuration file.
	ConfigIdentifier = "config"
)
