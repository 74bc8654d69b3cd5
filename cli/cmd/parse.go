package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/packrat/grammar"
	"github.com/ardnew/packrat/log"
	"github.com/ardnew/packrat/memo"
	"github.com/ardnew/packrat/seq"
)

// Parse runs a grammar over some input and reports the outcome.
type Parse struct {
	Input

	Grammar string `default:"arith" help:"Grammar to parse with (see 'grammars')" short:"g"`
	Format  Format `default:"text"  help:"Report format"                           enum:"text,json,yaml"`
	NoMemo  bool   `                help:"Disable memoization"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g, err := grammar.Lookup(p.Grammar)
	if err != nil {
		return err
	}

	s, err := p.read()
	if err != nil {
		return err
	}

	s = trimNewline(s)

	rep, err := g.Run(ctx, s, !p.NoMemo,
		memo.WithLogger(log.Default().With(slog.String("command", "parse"))))
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parse report", slog.Any("report", rep))

	if err := writeReport(outputFrom(ctx), rep, seq.String(s), p.Format); err != nil {
		return err
	}

	if !rep.OK {
		return ErrParseFailed.With(slog.String("grammar", g.Name)).Wrap(rep.Failure)
	}

	return nil
}
