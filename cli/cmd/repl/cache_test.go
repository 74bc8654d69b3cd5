package repl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("1+2", "arith", true), cacheKey("1+2", "arith", true))
	assert.NotEqual(t, cacheKey("1+2", "arith", true), cacheKey("1+2", "arith", false))
	assert.NotEqual(t, cacheKey("1+2", "arith", true), cacheKey("1+2", "right", true))
	assert.NotEqual(t, cacheKey("1+2", "arith", true), cacheKey("1+3", "arith", true))
}

func TestReportCache_Reuse(t *testing.T) {
	arith, err := grammar.Lookup("arith")
	require.NoError(t, err)

	right, err := grammar.Lookup("right")
	require.NoError(t, err)

	c := newReportCache(log.Logger{})
	ctx := context.Background()

	var parses int

	parse := func(g grammar.Grammar, input string, memoize bool) grammar.Report {
		rep, err := c.parse(ctx, g, input, memoize,
			func() (grammar.Report, error) {
				parses++

				return g.Parse(ctx, input, memoize)
			})
		require.NoError(t, err)

		return rep
	}

	first := parse(arith, "2 * (3 + 4)", true)
	again := parse(arith, "2 * (3 + 4)", true)

	assert.Equal(t, 1, parses)
	assert.Equal(t, first, again)
	assert.Equal(t, int64(14), again.Value)

	parse(arith, "2 * (3 + 4)", false)
	assert.Equal(t, 2, parses)

	parse(right, "2 * (3 + 4)", true)
	assert.Equal(t, 3, parses)

	parse(arith, "1 +", true)
	parse(arith, "1 +", true)
	assert.Equal(t, 4, parses)
	assert.Equal(t, 4, c.len())
}

func TestReportCache_Bounded(t *testing.T) {
	arith, err := grammar.Lookup("arith")
	require.NoError(t, err)

	c := newReportCache(log.Logger{})

	for i := range maxCached + 1 {
		_, err := c.parse(context.Background(), arith, string(rune('a'+i%26))+
			string(rune('0'+i/26)), true,
			func() (grammar.Report, error) { return grammar.Report{}, nil })
		require.NoError(t, err)
	}

	assert.Equal(t, 1, c.len())
}

func TestRespond_CachesReports(t *testing.T) {
	m := testModel(t, "arith", true)

	_, first := m.respond("1 + 2")
	_, second := m.respond("1 + 2")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, m.reports.len())

	m, _ = m.respond(":memo off")
	m.respond("1 + 2")
	assert.Equal(t, 2, m.reports.len())
}
