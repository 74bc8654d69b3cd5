// Package grammar holds the reference grammars used to exercise memoized
// parsing, and a registry that runs them by name.
//
// Each [Grammar] counts evaluations of its rule bodies, so the effect of
// memoization is observable as a number rather than a timing:
//
//	g, _ := grammar.Lookup("overlap")
//	rep, err := g.Parse(ctx, "aaaa", true)
//	fmt.Println(rep.Evaluations)
//
// Left-recursive grammars do not terminate without memoization and refuse to
// run unmemoized.
package grammar
