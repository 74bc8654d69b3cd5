package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/packrat/cli/cmd/repl"
	"github.com/ardnew/packrat/log"
)

// Repl starts an interactive parse loop.
type Repl struct {
	Grammar string `default:"arith" help:"Initial grammar" short:"g"`
	NoMemo  bool   `                help:"Start with memoization disabled"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Options{
		Grammar:  r.Grammar,
		Memoize:  !r.NoMemo,
		CacheDir: cacheDir,
		Logger:   log.Default().With(slog.String("command", "repl")),
	})
}
