package seq

import (
	"iter"
	"strings"
)

// Sequence is an immutable, indexable view over input elements.
//
// Implementations must slice in constant time and must report a [Key] that
// reflects logical position only.
type Sequence[T any] interface {
	// Len returns the number of remaining elements.
	Len() int
	// At returns the element at index i, relative to the view.
	// It panics unless 0 <= i < Len().
	At(i int) T
	// Slice returns the suffix starting at start.
	// It panics unless 0 <= start <= Len().
	Slice(start int) Sequence[T]
	// SliceRange returns the window [start, end).
	// It panics unless 0 <= start <= end <= Len().
	SliceRange(start, end int) Sequence[T]
	// Key returns the logical position of the view.
	Key() Key
}

// origin is the shared backing buffer of every view derived from one root.
type origin[T any] struct {
	elems []T
	id    uint64
}

type view[T any] struct {
	root *origin[T]
	off  int
	end  int
}

// Of returns a Sequence over elems. The slice is not copied and must not be
// modified afterward.
func Of[T any](elems []T) Sequence[T] {
	return &view[T]{
		root: &origin[T]{elems: elems, id: nextRoot()},
		off:  0,
		end:  len(elems),
	}
}

// Runes returns a Sequence over the runes of s.
func Runes(s string) Sequence[rune] { return Of([]rune(s)) }

// Bytes returns a Sequence over a copy of b.
func Bytes(b []byte) Sequence[byte] { return Of(append([]byte(nil), b...)) }

func (v *view[T]) Len() int { return v.end - v.off }

func (v *view[T]) At(i int) T {
	if i < 0 || i >= v.Len() {
		panic(outOfBounds("At", v.Len(), i))
	}

	return v.root.elems[v.off+i]
}

func (v *view[T]) Slice(start int) Sequence[T] {
	if start < 0 || start > v.Len() {
		panic(outOfBounds("Slice", v.Len(), start))
	}

	if start == 0 {
		return v
	}

	return &view[T]{root: v.root, off: v.off + start, end: v.end}
}

func (v *view[T]) SliceRange(start, end int) Sequence[T] {
	if start < 0 || end < start || end > v.Len() {
		panic(outOfBounds("SliceRange", v.Len(), start, end))
	}

	if start == 0 && end == v.Len() {
		return v
	}

	return &view[T]{root: v.root, off: v.off + start, end: v.off + end}
}

func (v *view[T]) Key() Key {
	return Key{root: v.root.id, off: v.off, end: v.end}
}

// Elems returns the elements of the window without copying.
func (v *view[T]) Elems() []T { return v.root.elems[v.off:v.end:v.end] }

func (v *view[T]) String() string {
	return v.Key().String()
}

// Equal reports whether a and b denote the same logical position.
func Equal[T any](a, b Sequence[T]) bool { return a.Key() == b.Key() }

// Collect returns the elements of s. Views created by this package are
// returned without copying; the result must not be modified.
func Collect[T any](s Sequence[T]) []T {
	if e, ok := s.(interface{ Elems() []T }); ok {
		return e.Elems()
	}

	out := make([]T, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}

	return out
}

// All returns an iterator over the index and element pairs of s.
func All[T any](s Sequence[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range s.Len() {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// String returns the text of a rune sequence.
func String(s Sequence[rune]) string {
	if e, ok := s.(interface{ Elems() []rune }); ok {
		return string(e.Elems())
	}

	var sb strings.Builder

	sb.Grow(s.Len())

	for _, r := range All(s) {
		sb.WriteRune(r)
	}

	return sb.String()
}

// Text returns the text of a byte sequence.
func Text(s Sequence[byte]) string { return string(Collect(s)) }
