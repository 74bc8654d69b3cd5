package repl

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
)

// maxCached bounds the number of reports kept by a session.
const maxCached = 256

// reportCache keeps the reports of lines already parsed in a session, keyed
// by a hash of the line combined with a hash of the parse mode.
type reportCache struct {
	entries map[uint64]cached
	logger  log.Logger
}

type cached struct {
	input   string
	grammar string
	memoize bool
	report  grammar.Report
}

func newReportCache(logger log.Logger) *reportCache {
	return &reportCache{entries: make(map[uint64]cached), logger: logger}
}

// hashMode encodes the grammar name and memo mode using gob and hashes the
// encoding with xxh3.
func hashMode(name string, memoize bool) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(name)
	_ = enc.Encode(memoize)

	return xxh3.Hash(buf.Bytes())
}

func cacheKey(input, name string, memoize bool) uint64 {
	return xxh3.HashString(input) ^ hashMode(name, memoize)
}

// parse returns the report for input under g, parsing only when no report
// for the same line, grammar and memo mode is cached.
func (c *reportCache) parse(
	ctx context.Context,
	g grammar.Grammar,
	input string,
	memoize bool,
	parse func() (grammar.Report, error),
) (grammar.Report, error) {
	key := cacheKey(input, g.Name, memoize)

	e, hit := c.entries[key]
	// Colliding keys are treated as misses.
	hit = hit && e.input == input && e.grammar == g.Name && e.memoize == memoize

	c.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("key", strconv.FormatUint(key, 16)),
		slog.String("grammar", g.Name),
		slog.Bool("memoize", memoize),
		slog.Bool("cache_hit", hit),
	)

	if hit {
		return e.report, nil
	}

	rep, err := parse()
	if err != nil {
		return rep, err
	}

	if len(c.entries) >= maxCached {
		clear(c.entries)
	}

	c.entries[key] = cached{
		input:   input,
		grammar: g.Name,
		memoize: memoize,
		report:  rep,
	}

	return rep, nil
}

// len returns the number of cached reports.
func (c *reportCache) len() int { return len(c.entries) }
