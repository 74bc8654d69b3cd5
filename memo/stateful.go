package memo

import (
	"github.com/ardnew/packrat/seq"
)

// Stateful decorates a sequence with a memo [Table] shared by every view
// sliced from it.
//
// Position keys delegate to the wrapped sequence; the table never takes part
// in equality, so a Stateful view and a plain view at the same position are
// interchangeable as keys.
type Stateful[T any] struct {
	base  seq.Sequence[T]
	table *table
}

// New returns a Stateful root over base with a fresh, empty table.
// If base is itself Stateful, its underlying sequence is used and its table
// is ignored. New panics if base is nil.
func New[T any](base seq.Sequence[T], opts ...Option) *Stateful[T] {
	if base == nil {
		panic(seq.ErrNilSequence)
	}

	return &Stateful[T]{
		base:  Unwrap(base),
		table: newTable(makeConfig(opts...)),
	}
}

// Unwrap returns the sequence decorated by s, or s itself if it is not
// Stateful.
func Unwrap[T any](s seq.Sequence[T]) seq.Sequence[T] {
	if st, ok := s.(*Stateful[T]); ok {
		return st.base
	}

	return s
}

// Len returns the number of remaining elements.
func (s *Stateful[T]) Len() int { return s.base.Len() }

// At returns the element at index i.
func (s *Stateful[T]) At(i int) T { return s.base.At(i) }

// Slice returns the suffix starting at start, sharing the table.
// Slice(0) returns s itself.
func (s *Stateful[T]) Slice(start int) seq.Sequence[T] {
	if start == 0 {
		return s
	}

	return &Stateful[T]{base: s.base.Slice(start), table: s.table}
}

// SliceRange returns the window [start, end), sharing the table.
// A range covering the whole view returns s itself.
func (s *Stateful[T]) SliceRange(start, end int) seq.Sequence[T] {
	if start == 0 && end == s.base.Len() {
		return s
	}

	return &Stateful[T]{base: s.base.SliceRange(start, end), table: s.table}
}

// Key returns the position key of the wrapped sequence.
func (s *Stateful[T]) Key() seq.Key { return s.base.Key() }

// Table implements [Carrier].
func (s *Stateful[T]) Table() Table { return s.table }

// Stats returns a snapshot of the shared table counters.
func (s *Stateful[T]) Stats() Stats { return s.table.Stats() }

// Elems returns the elements of the view.
func (s *Stateful[T]) Elems() []T { return seq.Collect(s.base) }

func (s *Stateful[T]) String() string { return s.base.Key().String() }
