package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	LogLevel string `default:"info"`
	Verbose  bool

	Parse struct {
		Grammar string `default:"arith"`
		Depth   int
	} `cmd:""`

	Scale struct {
		Grammar string `default:"overlap"`
		Sizes   []int  `default:"8"`
	} `cmd:""`
}

func parseWith(t *testing.T, conf string, args ...string) *testApp {
	t.Helper()

	var app testApp

	res, err := resolve(strings.NewReader(conf))
	require.NoError(t, err)

	parser, err := kong.New(&app, kong.Resolvers(res), kong.Exit(func(int) { t.FailNow() }))
	require.NoError(t, err)

	_, err = parser.Parse(args)
	require.NoError(t, err)

	return &app
}

func TestResolve_GlobalFlags(t *testing.T) {
	app := parseWith(t, "log_level: debug\nverbose: true\n", "parse")
	assert.Equal(t, "debug", app.LogLevel)
	assert.True(t, app.Verbose)
	assert.Equal(t, "arith", app.Parse.Grammar)
}

func TestResolve_CommandSections(t *testing.T) {
	conf := `
parse:
  grammar: left
  depth: 3
scale:
  sizes: [16, 32, 64]
`

	app := parseWith(t, conf, "parse")
	assert.Equal(t, "left", app.Parse.Grammar)
	assert.Equal(t, 3, app.Parse.Depth)

	app = parseWith(t, conf, "scale")
	assert.Equal(t, "overlap", app.Scale.Grammar)
	assert.Equal(t, []int{16, 32, 64}, app.Scale.Sizes)
}

func TestResolve_CommandLineWins(t *testing.T) {
	app := parseWith(t, "parse:\n  grammar: left\n", "parse", "--grammar", "right")
	assert.Equal(t, "right", app.Parse.Grammar)
}

func TestResolve_IgnoresMalformed(t *testing.T) {
	for _, conf := range []string{"", "- a\n- b\n", "::: not yaml"} {
		app := parseWith(t, conf, "parse")
		assert.Equal(t, "info", app.LogLevel)
	}
}

func TestFlagValue(t *testing.T) {
	assert.Equal(t, "42", flagValue(uint64(42)))
	assert.Equal(t, "-1", flagValue(int64(-1)))
	assert.Equal(t, "1.5", flagValue(1.5))
	assert.Equal(t, "a,2", flagValue([]any{"a", uint64(2)}))
	assert.Equal(t, true, flagValue(true))
}
