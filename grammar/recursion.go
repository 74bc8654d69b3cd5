package grammar

import (
	"strings"

	"github.com/ardnew/packrat/memo"
	"github.com/ardnew/packrat/parse"
)

var litX = parse.Literal("x")

func one(string) int { return 1 }

func repeat(unit string) func(int) string {
	return func(n int) string { return strings.Repeat(unit, max(n, 1)) }
}

// RightRecursive counts a run of x characters through a rule that calls
// itself after consuming each one.
var RightRecursive = Grammar{
	Name:        "right",
	Rules:       `R := "x" R | "x"`,
	Description: "right-recursive run of x",
	Example:     "xxxx",
	Sample:      repeat("x"),
	build: func(evals *int) parse.Parser[rune, any] {
		r := parse.NewRef[rune, int]("R")

		r.Set(memo.Memo(counted(evals, parse.OrElse(
			parse.Map(parse.Then(litX, parse.Parser[rune, int](r)),
				func(v parse.Pair[string, int]) int { return v.Second + 1 }),
			parse.Map(litX, one),
		)), memo.As("R")))

		return erase[int](r)
	},
}

// LeftRecursive counts a run of x characters through a rule that calls
// itself before consuming anything.
var LeftRecursive = Grammar{
	Name:          "left",
	Rules:         `L := L "x" | "x"`,
	Description:   "left-recursive run of x",
	Example:       "xxxx",
	LeftRecursive: true,
	Sample:        repeat("x"),
	build: func(evals *int) parse.Parser[rune, any] {
		l := parse.NewRef[rune, int]("L")

		l.Set(memo.Left(counted(evals, parse.OrElse(
			parse.Map(parse.Then(parse.Parser[rune, int](l), litX),
				func(v parse.Pair[int, string]) int { return v.First + 1 }),
			parse.Map(litX, one),
		)), memo.As("L")))

		return erase[int](l)
	},
}

// Overlap counts a run of a characters with alternatives that all start by
// matching A on the same suffix. Without memoization every S position
// re-parses its whole suffix, so the number of A evaluations grows
// quadratically with the input; with memoization it grows linearly.
var Overlap = Grammar{
	Name:        "overlap",
	Rules:       `S := A "b" | "a" S | A ;  A := "a" A | "a"`,
	Description: "overlapping alternatives over a run of a",
	Example:     "aaaa",
	Sample:      repeat("a"),
	build: func(evals *int) parse.Parser[rune, any] {
		a := parse.NewRef[rune, int]("A")
		s := parse.NewRef[rune, int]("S")
		lit := parse.Literal("a")

		a.Set(memo.Memo(counted(evals, parse.OrElse(
			parse.Map(parse.Then(lit, parse.Parser[rune, int](a)),
				func(v parse.Pair[string, int]) int { return v.Second + 1 }),
			parse.Map(lit, one),
		)), memo.As("A")))

		s.Set(memo.Memo(parse.OrElse(
			parse.Left(parse.Parser[rune, int](a), parse.Literal("b")),
			parse.Map(parse.Then(lit, parse.Parser[rune, int](s)),
				func(v parse.Pair[string, int]) int { return v.Second + 1 }),
			parse.Parser[rune, int](a),
		), memo.As("S")))

		return erase[int](s)
	},
}
