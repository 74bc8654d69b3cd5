package memo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/packrat/parse"
	"github.com/ardnew/packrat/seq"
)

// Memo wraps p so that it is evaluated at most once per position of a
// [Carrier] sequence. Successes and failures are both recorded.
//
// Sequences that carry no table are passed straight to p.
func Memo[T, R any](p parse.Parser[T, R], opts ...RuleOption) parse.Parser[T, R] {
	if p == nil {
		panic(parse.ErrNilParser)
	}

	return &memoizer[T, R]{p: p, rule: newRule(ruleName(opts...))}
}

type memoizer[T, R any] struct {
	p    parse.Parser[T, R]
	rule Rule
}

func (m *memoizer[T, R]) Parse(s seq.Sequence[T]) parse.Result[T, R] {
	c, ok := s.(Carrier)
	if !ok {
		return m.p.Parse(s)
	}

	t := c.Table()
	key := s.Key()

	if v, ok := t.Lookup(m.rule, key); ok {
		return entry[T, R](m.rule, v)
	}

	r := m.p.Parse(s)

	// A result computed while a seed grows at this position may depend on
	// that seed, so it is returned without being recorded.
	if bed, ok := t.(seedbed); ok && bed.growing(key) {
		return r
	}

	t.Record(m.rule, key, r)

	return r
}

// Rule returns the identity under which m records results.
func (m *memoizer[T, R]) Rule() Rule { return m.rule }

// Left wraps a left-recursive p with seed-growing memoization.
//
// The first evaluation at a position sees a failure for its own recursive
// call. Each further evaluation sees the previous result, and growth stops
// once an evaluation fails to consume more input than its seed. Unlike
// [Memo], p may run several times at the position that starts the
// recursion; the fixed point is then recorded once.
//
// The recursion may pass through other [Memo] rules. While a seed grows at
// a position, no rule records a result at that position.
func Left[T, R any](p parse.Parser[T, R], opts ...RuleOption) parse.Parser[T, R] {
	if p == nil {
		panic(parse.ErrNilParser)
	}

	return &grower[T, R]{p: p, rule: newRule(ruleName(opts...))}
}

type grower[T, R any] struct {
	p    parse.Parser[T, R]
	rule Rule
}

func (g *grower[T, R]) Parse(s seq.Sequence[T]) parse.Result[T, R] {
	c, ok := s.(Carrier)
	if !ok {
		return g.p.Parse(s)
	}

	t := c.Table()
	key := s.Key()

	bed, growable := t.(seedbed)
	if growable {
		if v, ok := bed.seed(g.rule, key); ok {
			return entry[T, R](g.rule, v)
		}
	}

	if v, ok := t.Lookup(g.rule, key); ok {
		return entry[T, R](g.rule, v)
	}

	if !growable {
		r := g.p.Parse(s)
		t.Record(g.rule, key, r)

		return r
	}

	seed := parse.Expect[T, R](s)
	bed.plant(g.rule, key, seed)

	for {
		r := g.p.Parse(s)
		if !r.OK() || (seed.OK() && r.Consumed(s) <= seed.Consumed(s)) {
			if !seed.OK() {
				seed = r
			}

			break
		}

		seed = r
		bed.grow(g.rule, key, seed)
	}

	bed.uproot(g.rule, key)

	// An enclosing seed at this position may still be growing.
	if !bed.growing(key) {
		t.Record(g.rule, key, seed)
	}

	return seed
}

// Rule returns the identity under which g records results.
func (g *grower[T, R]) Rule() Rule { return g.rule }

func entry[T, R any](rule Rule, v any) parse.Result[T, R] {
	r, ok := v.(parse.Result[T, R])
	if !ok {
		panic(ErrEntryType.With(
			slog.String("rule", rule.name),
			slog.String("type", fmt.Sprintf("%T", v)),
		))
	}

	return r
}

// Run parses base with p using a fresh Stateful root, and returns the result
// together with the table statistics. The root parser is itself memoized.
//
// The remainder of a successful result is unwrapped, so the table is released
// once Run returns.
func Run[T, R any](
	ctx context.Context,
	p parse.Parser[T, R],
	base seq.Sequence[T],
	opts ...Option,
) (parse.Result[T, R], Stats) {
	root := New(base, opts...)
	logger := root.table.logger

	logger.DebugContext(ctx, "parse start",
		slog.String("table", root.table.name),
		slog.Int("length", root.Len()),
	)

	r := Memo(p, As("root")).Parse(root)
	stats := root.Stats()

	logger.DebugContext(ctx, "parse complete",
		slog.String("table", root.table.name),
		slog.Bool("ok", r.OK()),
		slog.Any("stats", stats),
	)

	if !r.OK() {
		return r, stats
	}

	return parse.Success(r.Value(), Unwrap(r.Rest())), stats
}
