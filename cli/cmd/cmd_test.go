package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/parse"
	"github.com/ardnew/packrat/seq"
)

// run executes c with output captured and returns the uncolored output.
func run(t *testing.T, c interface{ Run(context.Context) error }) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	err := c.Run(WithOutput(context.Background(), &buf))

	return ansi.Strip(buf.String()), err
}

func TestInputRead(t *testing.T) {
	s, err := Input{Expr: "1+2"}.read()
	require.NoError(t, err)
	assert.Equal(t, "1+2", seq.String(s))

	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("xxx\r\n"), 0o600))

	s, err = Input{File: path}.read()
	require.NoError(t, err)
	assert.Equal(t, "xxx", seq.String(trimNewline(s)))

	_, err = Input{File: filepath.Join(t.TempDir(), "missing")}.read()
	require.ErrorIs(t, err, ErrReadInput)
}

func TestTrimNewline(t *testing.T) {
	for in, want := range map[string]string{
		"":       "",
		"\n":     "",
		"a\n":    "a",
		"a\r\n":  "a",
		"a\n\n":  "a\n",
		"a":      "a",
		"\r":     "\r",
		"ab\r\n": "ab",
	} {
		assert.Equal(t, want, seq.String(trimNewline(seq.Runes(in))), "%q", in)
	}
}

func TestParse_Text(t *testing.T) {
	out, err := run(t, &Parse{Input: Input{Expr: "2 * (3 + 4)"}, Grammar: "arith", Format: FormatText})
	require.NoError(t, err)
	assert.Contains(t, out, "arith (memoized)")
	assert.Contains(t, out, "ok 14")
	assert.Contains(t, out, "11 runes, 11 consumed")
	assert.Contains(t, out, "hits=")
}

func TestParse_Failure(t *testing.T) {
	out, err := run(t, &Parse{Input: Input{Expr: "1 +"}, Grammar: "arith", Format: FormatText})
	require.ErrorIs(t, err, ErrParseFailed)
	assert.Contains(t, out, "fail")
	assert.Contains(t, out, "1 +\n"+strings.Repeat(" ", 10)+"^")

	var f *parse.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, 2, f.Offset)
}

func TestParse_JSONAndYAML(t *testing.T) {
	out, err := run(t, &Parse{Input: Input{Expr: "xxxx"}, Grammar: "left", Format: FormatJSON})
	require.NoError(t, err)

	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "left", rep["grammar"])
	assert.Equal(t, true, rep["ok"])
	assert.InDelta(t, 4, rep["value"], 0)

	out, err = run(t, &Parse{Input: Input{Expr: "xxxx"}, Grammar: "right", Format: FormatYAML, NoMemo: true})
	require.NoError(t, err)

	rep = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "right", rep["grammar"])
	assert.Equal(t, false, rep["memoized"])
	assert.NotContains(t, rep, "stats")
}

func TestParse_Errors(t *testing.T) {
	_, err := run(t, &Parse{Input: Input{Expr: "x"}, Grammar: "nope"})
	require.ErrorIs(t, err, grammar.ErrUnknownGrammar)

	_, err = run(t, &Parse{Input: Input{Expr: "x"}, Grammar: "left", NoMemo: true})
	require.ErrorIs(t, err, grammar.ErrNeedsMemo)

	_, err = run(t, &Parse{Input: Input{Expr: "x"}, Grammar: "right", Format: "xml"})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGrammars(t *testing.T) {
	out, err := run(t, &Grammars{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(grammar.Names()))
	assert.True(t, strings.HasPrefix(lines[0], "arith"))
	assert.Contains(t, lines[0], "[left-recursive]")

	out, err = run(t, &Grammars{Rules: true})
	require.NoError(t, err)
	assert.Contains(t, out, "e.g. xxxx")
	assert.Contains(t, out, `L := L "x" | "x"`)
}

func TestScale(t *testing.T) {
	out, err := run(t, &Scale{Grammar: "overlap", Sizes: []int{3, 8}, Format: FormatJSON})
	require.NoError(t, err)

	var rows []ScaleRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, ScaleRow{Size: 3, Length: 3, Memoized: 4, Plain: 13, Entries: rows[0].Entries, Hits: rows[0].Hits}, rows[0])
	assert.Equal(t, 9, rows[1].Memoized)
	assert.Equal(t, 48, rows[1].Plain)

	out, err = run(t, &Scale{Grammar: "left", Sizes: []int{4}, Format: FormatText})
	require.NoError(t, err)
	assert.Contains(t, out, "memoized")
	assert.Contains(t, out, "-", "left recursion has no plain count")
}

func TestCalc(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2 * 3", "7\n"},
		{"7 / -2", "-3\n"},
		{"-7 % 3", "-1\n"},
		{"(10 - 4) - 3", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, err := run(t, &Calc{Expr: tt.expr, Check: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCalc_Failure(t *testing.T) {
	out, err := run(t, &Calc{Expr: "1 / 0"})
	require.ErrorIs(t, err, ErrParseFailed)
	assert.Contains(t, err.Error(), "division by zero")
	assert.Contains(t, out, "^")
}

func TestReference(t *testing.T) {
	v, err := reference("9 / 2 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	_, err = reference("1 +")
	require.ErrorIs(t, err, ErrOracleEval)

	_, err = reference("1 / 0")
	require.ErrorIs(t, err, ErrOracleEval)
}

func TestCaret(t *testing.T) {
	indent := strings.Repeat(" ", 8)

	assert.Empty(t, Caret("abc", nil))
	assert.Empty(t, Caret("abc", &parse.Failure{Offset: 9}))
	assert.Equal(t,
		indent+"cd\n"+indent+" ^\n",
		ansi.Strip(Caret("ab\ncd", &parse.Failure{Offset: 4})))

	// wide runes occupy two terminal cells each
	assert.Equal(t,
		indent+"日本+\n"+indent+"    ^\n",
		ansi.Strip(Caret("日本+", &parse.Failure{Offset: 2})))
	assert.Equal(t,
		indent+"é日x\n"+indent+"   ^\n",
		ansi.Strip(Caret("é日x", &parse.Failure{Offset: 2})))
}
