// Package seq provides immutable, sliceable views over input elements.
//
// A [Sequence] is a window (root buffer, offset, end) over a shared backing
// slice. Slicing never copies: it produces a new window over the same root.
//
// # Position Keys
//
// Every view reports a comparable [Key] describing its logical position:
// the identity of the root buffer it was derived from and the bounds of the
// window within that root. Two views denote the same remaining input if and
// only if their keys are equal, no matter how they were derived:
//
//	s := seq.Runes("abcdef")
//	a := s.Slice(3)
//	b := s.Slice(1).Slice(2)
//	a.Key() == b.Key() // true
//
// Keys from independently constructed roots never compare equal, even when
// the underlying contents are identical.
//
// # Preconditions
//
// Out-of-range indices and slice bounds are programming errors, not parse
// outcomes. They panic with a [*pkg.Error] derived from [ErrOutOfBounds].
package seq
