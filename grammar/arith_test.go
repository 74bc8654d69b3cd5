package grammar

import (
	"context"
	"errors"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/packrat/parse"
)

// oracle evaluates input with expr-lang, which shares Go's integer semantics
// for + - * % and unary minus.
func oracle(t *testing.T, input string) int64 {
	t.Helper()

	out, err := expr.Eval(input, nil)
	require.NoError(t, err)

	switch v := out.(type) {
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		t.Fatalf("unexpected oracle result %T", out)

		return 0
	}
}

func TestCalc_MatchesOracle(t *testing.T) {
	tests := []string{
		"42",
		"1 + 2",
		"1 - 2 - 3",
		"2 * 3 + 4",
		"2 + 3 * 4",
		"(2 + 3) * 4",
		"10 % 4 * 3",
		"-7 % 3",
		"-(-5)",
		"-(1 + 2) * -3",
		"  8 - (3 - (2 - 1))  ",
		"100 - 10 * 9 % 7 + 1",
		"((((1))))",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := Calc(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, oracle(t, input), got)
		})
	}
}

func TestCalc_Division(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"8 / 2 / 2", 2},
		{"7 / 2", 3},
		{"-7 / 2", -3},
		{"1 + 9 / 3 * 2", 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Calc(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalc_Failures(t *testing.T) {
	tests := []struct {
		input   string
		offset  int
		message string
	}{
		{"1 / 0", 4, "division by zero"},
		{"5 % (2 - 2)", 5, "division by zero"},
		{"99999999999999999999", 0, "integer out of range"},
		{"1 +", 2, ""},
		{"(1", 2, ""},
		{"", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Calc(context.Background(), tt.input)
			require.Error(t, err)

			var f *parse.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.offset, f.Offset)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestSyntax_Associativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"-1 * 2", "((-1) * 2)"},
		{"8 / 4 % 3", "((8 / 4) % 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rep, err := Arith.Parse(context.Background(), tt.input, true)
			require.NoError(t, err)
			require.True(t, rep.OK)

			r, _ := runSyntax(tt.input)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestArith_RequiresMemo(t *testing.T) {
	_, err := Arith.Parse(context.Background(), "1", false)
	assert.True(t, errors.Is(err, ErrNeedsMemo))
}
