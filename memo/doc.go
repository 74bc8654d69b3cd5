// Package memo adds packrat memoization to parsers built with package parse.
//
// A top-level parse creates one [Stateful] root over its input. The root
// carries a memo [Table] that every view sliced from it shares, so the table
// travels with the input through every combinator without being passed
// explicitly. [Memo] wraps a parser and consults the table reachable from its
// argument: the wrapped parser runs at most once per input position, and
// both successes and failures are answered from the table afterward.
//
//	r := parse.NewRef[rune, int]("r")
//	r.Set(memo.Memo(parse.OrElse(...)))
//	res, stats := memo.Run(ctx, r, seq.Runes(input))
//
// Wrappers are transparent. A memoized grammar is invoked exactly like an
// unmemoized one, and applying it to a plain sequence simply disables
// memoization.
//
// # Left Recursion
//
// Plain memoization does not terminate on a rule that calls itself before
// consuming input, because the table is written only after the wrapped parser
// returns. [Left] grows a seed instead: it records a failure for the position,
// re-evaluates the rule while each pass consumes more input than the last,
// and stores the fixed point. Left handles direct left recursion.
//
// # Lifetime
//
// Tables grow monotonically and are never evicted or overwritten. A table
// belongs to one top-level parse and must not be shared between goroutines;
// concurrent parses each create their own root.
package memo
