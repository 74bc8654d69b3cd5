package grammar

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/packrat/memo"
	"github.com/ardnew/packrat/parse"
	"github.com/ardnew/packrat/seq"
)

// Grammar is a named, runnable parser.
type Grammar struct {
	build func(evals *int) parse.Parser[rune, any]
	// Sample returns an accepted input built from n repetitions of the
	// grammar's basic unit.
	Sample func(n int) string
	// Name identifies the grammar in the registry.
	Name string
	// Rules is the grammar in EBNF-like notation.
	Rules string
	// Description is a one-line summary.
	Description string
	// Example is an input the grammar accepts.
	Example string
	// LeftRecursive grammars cannot run without memoization.
	LeftRecursive bool
}

// Report summarizes one run of a grammar.
type Report struct {
	Value       any            `json:"value,omitempty"   yaml:"value,omitempty"`
	Failure     *parse.Failure `json:"failure,omitempty" yaml:"failure,omitempty"`
	Stats       *memo.Stats    `json:"stats,omitempty"   yaml:"stats,omitempty"`
	Grammar     string         `json:"grammar"           yaml:"grammar"`
	Length      int            `json:"length"            yaml:"length"`
	Consumed    int            `json:"consumed"          yaml:"consumed"`
	Evaluations int            `json:"evaluations"       yaml:"evaluations"`
	OK          bool           `json:"ok"                yaml:"ok"`
	Memoized    bool           `json:"memoized"          yaml:"memoized"`
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("grammar", r.Grammar),
		slog.Bool("ok", r.OK),
		slog.Bool("memoized", r.Memoized),
		slog.Int("length", r.Length),
		slog.Int("consumed", r.Consumed),
		slog.Int("evaluations", r.Evaluations),
	}

	if r.Failure != nil {
		attrs = append(attrs, slog.Any("failure", r.Failure))
	}

	return slog.GroupValue(attrs...)
}

// Parse runs g over input. See [Grammar.Run].
func (g Grammar) Parse(
	ctx context.Context,
	input string,
	memoize bool,
	opts ...memo.Option,
) (Report, error) {
	return g.Run(ctx, seq.Runes(input), memoize, opts...)
}

// Run parses the whole of s with g. With memoize set, the parse goes through
// [memo.Run] and the report includes table statistics; otherwise the same
// parser is applied to the plain sequence, which disables every memo wrapper.
//
// A parse failure is reported in the [Report], not as an error. Run returns
// an error only for a left-recursive grammar run without memoization.
func (g Grammar) Run(
	ctx context.Context,
	s seq.Sequence[rune],
	memoize bool,
	opts ...memo.Option,
) (Report, error) {
	if g.LeftRecursive && !memoize {
		return Report{}, ErrNeedsMemo.With(slog.String("grammar", g.Name))
	}

	var evals int

	p := parse.Phrase(g.build(&evals))
	rep := Report{Grammar: g.Name, Length: s.Len(), Memoized: memoize}

	var r parse.Result[rune, any]

	if memoize {
		var stats memo.Stats

		r, stats = memo.Run(ctx, p, s, append([]memo.Option{memo.WithName(g.Name)}, opts...)...)
		rep.Stats = &stats
	} else {
		r = p.Parse(s)
	}

	rep.Evaluations = evals
	rep.OK = r.OK()

	if rep.OK {
		rep.Value = r.Value()
		rep.Consumed = r.Consumed(s)
	} else {
		rep.Failure = r.Failure()
	}

	return rep, nil
}

// counted returns p, counting each evaluation in evals.
func counted[R any](evals *int, p parse.Parser[rune, R]) parse.Parser[rune, R] {
	return parse.Func[rune, R](func(s seq.Sequence[rune]) parse.Result[rune, R] {
		*evals++

		return p.Parse(s)
	})
}

// erase hides the value type of p.
func erase[R any](p parse.Parser[rune, R]) parse.Parser[rune, any] {
	return parse.Map(p, func(v R) any { return v })
}

var registry = []Grammar{
	RightRecursive,
	LeftRecursive,
	Overlap,
	Arith,
}

// Names returns the names of all registered grammars in sorted order.
func Names() []string {
	names := make([]string, len(registry))
	for i, g := range registry {
		names[i] = g.Name
	}

	slices.Sort(names)

	return names
}

// All returns every registered grammar, sorted by name.
func All() []Grammar {
	all := slices.Clone(registry)
	slices.SortFunc(all, func(a, b Grammar) int { return strings.Compare(a.Name, b.Name) })

	return all
}

// Lookup returns the grammar registered under name, ignoring case.
func Lookup(name string) (Grammar, error) {
	for _, g := range registry {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}

	return Grammar{}, ErrUnknownGrammar.With(
		slog.String("name", name),
		slog.String("known", strings.Join(Names(), ",")),
	)
}
