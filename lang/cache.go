package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/tacit/lang/ast"
)

// globalCache stores parse results keyed by (source_hash ^ options_hash).
var globalCache sync.Map

// state holds the result of parsing one source under one configuration.
type state struct {
	once  sync.Once
	items []ast.Item
	err   error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	// Encode relevant options fields
	_ = enc.Encode(opts.source)
	_ = enc.Encode(opts.maxDepth)
	_ = enc.Encode(uint8(opts.encoding))

	return xxh3.Hash(buf.Bytes())
}

// ParseReader parses input from an io.Reader.
// The result is cached, so parsing the same content with the same options
// again returns the same tree without re-parsing.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", newProgram(opts...).Source))
	}

	return parseStringCached(ctx, string(data), opts...)
}

// ParseFile parses the file at path, naming spans after path unless a
// [WithSource] option says otherwise.
func ParseFile(
	ctx context.Context,
	path string,
	opts ...Option,
) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	return ParseReader(ctx, f, append([]Option{WithSource(path)}, opts...)...)
}

// parseStringCached parses a string with caching.
func parseStringCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Program, error) {
	prog := newProgram(opts...)

	// Combine source hash with options hash for cache key uniqueness
	sourceHash := xxh3.HashString(source)
	optsHash := hashOptions(prog.opts)
	sourceKey := strconv.FormatUint(sourceHash^optsHash, 36)

	value, cacheHit := globalCache.LoadOrStore(sourceKey, new(state))

	entry, ok := value.(*state)
	if !ok {
		return nil, ErrInvalidTree.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	prog.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		parsed, err := ParseString(ctx, source, opts...)
		entry.items = parsed.Items
		entry.err = err
	})

	prog.Items = entry.items
	prog.buildIndex()

	return prog, entry.err
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
