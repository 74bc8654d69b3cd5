// Package parse defines the parser capability and its result protocol, and
// supplies the primitive combinators grammars are composed from.
//
// A [Parser] maps a [seq.Sequence] to a [Result]. A result is either a
// success carrying a value and the remaining input, or a [Failure] carrying
// the offset and the set of things that were expected there. Failures are
// ordinary values: they are returned, compared, and cached exactly like
// successes.
//
// # Composition
//
// Go methods cannot introduce type parameters, so combinators are plain
// functions:
//
//	x := parse.Literal("x")
//	xs := parse.Many1(x)
//	pair := parse.Then(x, parse.Literal("y"))
//	word := parse.Map(parse.Regexp(`[a-z]+`), strings.ToUpper)
//	choice := parse.OrElse(parse.Literal("ab"), parse.Literal("a"))
//
// # Self Reference
//
// A rule that refers to itself is declared through a [Ref] and bound once the
// referenced parser exists:
//
//	r := parse.NewRef[rune, int]("r")
//	r.Set(parse.OrElse(
//		parse.Map(parse.Then(x, r), func(p parse.Pair[string, int]) int {
//			return p.Second + 1
//		}),
//		parse.Map(x, func(string) int { return 1 }),
//	))
//
// Parsing through an unbound Ref, or binding a Ref twice, is a programming
// error and panics.
package parse
