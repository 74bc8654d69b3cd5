package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/expr-lang/expr"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
	"github.com/ardnew/packrat/parse"
)

// Calc evaluates an arithmetic expression.
type Calc struct {
	Expr  string `arg:"" help:"Expression to evaluate"`
	Check bool   `       help:"Compare the result with an independent evaluator" short:"c"`
}

// Run executes the calc command.
func (c *Calc) Run(ctx context.Context) error {
	v, err := grammar.Calc(ctx, c.Expr)
	if err != nil {
		if f, ok := err.(*parse.Failure); ok {
			fmt.Fprint(outputFrom(ctx), Caret(c.Expr, f))
		}

		return ErrParseFailed.With(slog.String("expr", c.Expr)).Wrap(err)
	}

	if c.Check {
		want, err := reference(c.Expr)
		if err != nil {
			return err
		}

		if want != v {
			return ErrOracleMismatch.With(
				slog.String("expr", c.Expr),
				slog.Int64("got", v),
				slog.Int64("want", want),
			)
		}

		log.DebugContext(ctx, "calc checked", slog.String("expr", c.Expr), slog.Int64("value", v))
	}

	_, err = fmt.Fprintln(outputFrom(ctx), v)

	return err
}

// reference evaluates input with expr-lang, overriding "/" with truncating
// integer division.
func reference(input string) (int64, error) {
	program, err := expr.Compile(input,
		expr.Function("idiv",
			func(params ...any) (any, error) {
				a, b := params[0].(int), params[1].(int)
				if b == 0 {
					return nil, grammar.ErrDivideByZero
				}

				return a / b, nil
			},
			new(func(int, int) int),
		),
		expr.Operator("/", "idiv"),
	)
	if err != nil {
		return 0, ErrOracleEval.With(slog.String("expr", input)).Wrap(err)
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, ErrOracleEval.With(slog.String("expr", input)).Wrap(err)
	}

	switch n := out.(type) {
	case int:
		return int64(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int64(n), nil
		}
	}

	return 0, ErrOracleEval.With(
		slog.String("expr", input),
		slog.String("result", fmt.Sprint(out)),
	)
}
