package grammar

import (
	"context"

	"github.com/ardnew/packrat/memo"
	"github.com/ardnew/packrat/parse"
	"github.com/ardnew/packrat/seq"
)

func runSyntax(input string) (*Expr, memo.Stats) {
	r, stats := memo.Run(context.Background(), parse.Phrase(Syntax(nil)), seq.Runes(input))

	return r.Value(), stats
}
