package grammar

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/packrat/memo"
	"github.com/ardnew/packrat/parse"
	"github.com/ardnew/packrat/pkg"
	"github.com/ardnew/packrat/seq"
)

// Expr is a node of an arithmetic syntax tree. A node with no operator is an
// integer literal; unary minus has only a Right operand.
type Expr struct {
	Left, Right *Expr
	Value       int64
	// Offset is the input position where the node starts.
	Offset int
	Op     rune
}

// Eval computes the value of e with 64-bit two's-complement arithmetic.
// Division and remainder truncate toward zero.
func (e *Expr) Eval() (int64, error) {
	switch e.Op {
	case 0:
		return e.Value, nil

	case '-':
		if e.Left == nil {
			v, err := e.Right.Eval()

			return -v, err
		}
	}

	lhs, err := e.Left.Eval()
	if err != nil {
		return 0, err
	}

	rhs, err := e.Right.Eval()
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case '+':
		return lhs + rhs, nil
	case '-':
		return lhs - rhs, nil
	case '*':
		return lhs * rhs, nil
	}

	if rhs == 0 {
		return 0, ErrDivideByZero.With(slog.Int("offset", e.Right.Offset))
	}

	if e.Op == '%' {
		return lhs % rhs, nil
	}

	return lhs / rhs, nil
}

// String renders e fully parenthesized.
func (e *Expr) String() string {
	var sb strings.Builder

	e.write(&sb)

	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	switch {
	case e.Op == 0:
		sb.WriteString(strconv.FormatInt(e.Value, 10))

	case e.Left == nil:
		sb.WriteString("(-")
		e.Right.write(sb)
		sb.WriteByte(')')

	default:
		sb.WriteByte('(')
		e.Left.write(sb)
		sb.WriteByte(' ')
		sb.WriteRune(e.Op)
		sb.WriteByte(' ')
		e.Right.write(sb)
		sb.WriteByte(')')
	}
}

var space = parse.Regexp(`\s*`)

func lexeme[R any](p parse.Parser[rune, R]) parse.Parser[rune, R] {
	return parse.Left(p, space)
}

func operator(ops string) parse.Parser[rune, rune] {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, strconv.QuoteRune(op))
	}

	return lexeme(parse.Satisfy(strings.Join(names, " or "), func(c rune) bool {
		return strings.ContainsRune(ops, c)
	}))
}

// binary parses lhs op rhs into a single node.
func binary(lhs parse.Parser[rune, *Expr], ops string, rhs parse.Parser[rune, *Expr]) parse.Parser[rune, *Expr] {
	return parse.Map(parse.Then(lhs, parse.Then(operator(ops), rhs)),
		func(v parse.Pair[*Expr, parse.Pair[rune, *Expr]]) *Expr {
			return &Expr{
				Op:     v.Second.First,
				Left:   v.First,
				Right:  v.Second.Second,
				Offset: v.First.Offset,
			}
		})
}

var digits = lexeme(parse.Named("integer", parse.Regexp(`[0-9]+`)))

func integer(s seq.Sequence[rune]) parse.Result[rune, *Expr] {
	r := digits.Parse(s)
	if !r.OK() {
		return parse.FailAs[*Expr](r)
	}

	v, err := strconv.ParseInt(r.Value(), 10, 64)
	if err != nil {
		return parse.Reject[rune, *Expr](s, ErrIntegerRange.Error())
	}

	return parse.Success(&Expr{Value: v, Offset: s.Key().Offset()}, r.Rest())
}

// Syntax returns a parser for arithmetic expressions producing syntax trees.
// Rule bodies are memoized; the two binary levels are left-recursive and
// require a memoizing root such as [memo.Run]. Each rule body evaluation is
// counted in evals when it is non-nil.
func Syntax(evals *int) parse.Parser[rune, *Expr] {
	if evals == nil {
		evals = new(int)
	}

	var (
		expr  = parse.NewRef[rune, *Expr]("expr")
		term  = parse.NewRef[rune, *Expr]("term")
		unary = parse.NewRef[rune, *Expr]("unary")
	)

	primary := memo.Memo(counted(evals, parse.OrElse(
		parse.Func[rune, *Expr](integer),
		parse.Right(lexeme(parse.Literal("(")),
			parse.Left(parse.Parser[rune, *Expr](expr), lexeme(parse.Literal(")")))),
	)), memo.As("primary"))

	negated := parse.Right(lexeme(parse.Literal("-")), parse.Parser[rune, *Expr](unary))

	unary.Set(memo.Memo(counted(evals, parse.OrElse(
		parse.Func[rune, *Expr](func(s seq.Sequence[rune]) parse.Result[rune, *Expr] {
			r := negated.Parse(s)
			if !r.OK() {
				return r
			}

			return parse.Success(&Expr{Op: '-', Right: r.Value(), Offset: s.Key().Offset()}, r.Rest())
		}),
		primary,
	)), memo.As("unary")))

	term.Set(memo.Left(counted(evals, parse.OrElse(
		binary(term, "*/%", unary),
		parse.Parser[rune, *Expr](unary),
	)), memo.As("term")))

	expr.Set(memo.Left(counted(evals, parse.OrElse(
		binary(expr, "+-", term),
		parse.Parser[rune, *Expr](term),
	)), memo.As("expr")))

	return parse.Right(space, parse.Parser[rune, *Expr](expr))
}

// evaluate turns the syntax tree produced by p into its value. Evaluation
// errors become failures at the offset of the offending operand.
func evaluate(p parse.Parser[rune, *Expr]) parse.Parser[rune, int64] {
	return parse.Func[rune, int64](func(s seq.Sequence[rune]) parse.Result[rune, int64] {
		r := p.Parse(s)
		if !r.OK() {
			return parse.FailAs[int64](r)
		}

		v, err := r.Value().Eval()
		if err != nil {
			return parse.Fail[rune, int64](&parse.Failure{
				Offset:  errorOffset(err, s.Key().Offset()),
				Message: err.Error(),
			})
		}

		return parse.Success(v, r.Rest())
	})
}

func errorOffset(err error, def int) int {
	var e *pkg.Error
	if !errors.As(err, &e) {
		return def
	}

	for _, a := range e.Attrs() {
		if a.Key == "offset" {
			return int(a.Value.Int64())
		}
	}

	return def
}

// Arith evaluates integer arithmetic with + - * / %, unary minus,
// parentheses and free whitespace. Operators of equal precedence associate
// to the left through left-recursive rules.
var Arith = Grammar{
	Name: "arith",
	Rules: `expr := expr ("+"|"-") term | term ;  ` +
		`term := term ("*"|"/"|"%") unary | unary ;  ` +
		`unary := "-" unary | primary ;  primary := integer | "(" expr ")"`,
	Description:   "left-recursive integer arithmetic",
	Example:       "1 + 2 * (3 - 4) % 5",
	LeftRecursive: true,
	Sample:        arithSample,
	build: func(evals *int) parse.Parser[rune, any] {
		return erase(evaluate(Syntax(evals)))
	},
}

// Calc evaluates an arithmetic expression. The returned error is a
// [*parse.Failure] when input is malformed or divides by zero.
func Calc(ctx context.Context, input string) (int64, error) {
	r, _ := memo.Run(ctx, parse.Phrase(evaluate(Syntax(nil))), seq.Runes(input))
	if !r.OK() {
		return 0, r.Failure()
	}

	return r.Value(), nil
}

// arithSample chains n parenthesized operands with rotating operators.
func arithSample(n int) string {
	const ops = "+-*%"

	var sb strings.Builder

	sb.WriteString("1")

	for i := 1; i < n; i++ {
		sb.WriteByte(' ')
		sb.WriteByte(ops[i%len(ops)])
		sb.WriteString(" (")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte(')')
	}

	return sb.String()
}
