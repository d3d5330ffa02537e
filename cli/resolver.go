package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tacit/cli/cmd"
	"github.com/ardnew/tacit/lang"
	"github.com/ardnew/tacit/log"
	"github.com/ardnew/tacit/pkg"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in tacit. Every top-level const item sets the flag whose name,
// with '-' replaced by '_', is the constant's name:
//
//	const log_level = "debug"
//	const log_pretty = false
//	const path = ["/usr/share/tacit", "lib"]
//
// Constants may refer to one another. A file that does not parse, or a
// constant that does not evaluate, is logged and ignored. Command-line flags
// override configured values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		path := configPath(baseConfig)

		prog, err := lang.ParseReader(ctx, r,
			lang.WithSource(path),
			lang.WithLogger(log.Default()),
		)
		if err != nil {
			log.WarnContext(ctx, "configuration ignored",
				slog.String("path", path),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		consts, err := prog.Consts(ctx)
		if err != nil {
			log.WarnContext(ctx, "configuration constants ignored",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}

		cfg := make(config, len(consts))
		for _, c := range consts {
			cfg[c.Name] = flagValue(c.Value)
		}

		return cfg, nil
	}
}

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
// Keys are flag names in either spelling.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkg.ErrConfigLoad.Wrap(err)
	}

	cfg := make(config, len(values))
	for k, v := range values {
		cfg[cmd.ConfigName(k)] = flagValue(v)
	}

	return cfg, nil
}

// config implements [kong.Resolver] over values keyed by configuration name.
type config map[string]any

// Validate implements [kong.Resolver]. Keys that name no flag are reported
// but not fatal; a configuration file may declare helper constants.
func (r config) Validate(app *kong.Application) error {
	known := make(map[string]bool)

	for _, node := range app.Leaves(false) {
		for _, flag := range node.Flags {
			known[cmd.ConfigName(flag.Name)] = true
		}
	}

	for _, flag := range app.Flags {
		known[cmd.ConfigName(flag.Name)] = true
	}

	for key := range r {
		if !known[key] {
			log.Debug("configuration key ignored",
				slog.Any("error", pkg.ErrConfigKey.Wrapf("%s", key)))
		}
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[cmd.ConfigName(flag.Name)]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue converts a configured value to one kong decodes. Numbers are
// decoded from strings and lists from comma-separated strings.
func flagValue(v any) any {
	switch val := v.(type) {
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = lang.FormatValue(e)
			if s, ok := flagValue(e).(string); ok {
				parts[i] = s
			}
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}
