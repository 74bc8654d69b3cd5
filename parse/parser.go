package parse

import (
	"log/slog"
	"sync"

	"github.com/ardnew/packrat/seq"
)

// Parser is the capability of parsing a sequence of T into a value of R.
//
// Implementations must not retain state between calls beyond what
// composition provides; a parser value may be shared by concurrent parses of
// independent inputs.
type Parser[T, R any] interface {
	Parse(s seq.Sequence[T]) Result[T, R]
}

// Func adapts an ordinary function to the [Parser] interface.
type Func[T, R any] func(s seq.Sequence[T]) Result[T, R]

// Parse calls f(s).
func (f Func[T, R]) Parse(s seq.Sequence[T]) Result[T, R] { return f(s) }

// Ref is a forward reference to a parser that is bound after construction.
// It lets a grammar rule refer to itself, directly or through other rules.
type Ref[T, R any] struct {
	p    Parser[T, R]
	name string
}

// NewRef returns an unbound reference. The name appears in diagnostics.
func NewRef[T, R any](name string) *Ref[T, R] {
	return &Ref[T, R]{name: name}
}

// Set binds the reference. It panics if p is nil or r is already bound.
func (r *Ref[T, R]) Set(p Parser[T, R]) {
	if p == nil {
		panic(ErrNilParser.With(slog.String("ref", r.name)))
	}

	if r.p != nil {
		panic(ErrReboundRef.With(slog.String("ref", r.name)))
	}

	r.p = p
}

// Bound reports whether Set has been called.
func (r *Ref[T, R]) Bound() bool { return r.p != nil }

// Name returns the reference name.
func (r *Ref[T, R]) Name() string { return r.name }

// Parse delegates to the bound parser. It panics if r is unbound.
func (r *Ref[T, R]) Parse(s seq.Sequence[T]) Result[T, R] {
	if r.p == nil {
		panic(ErrUnboundRef.With(slog.String("ref", r.name)))
	}

	return r.p.Parse(s)
}

// Lazy returns a parser that obtains its delegate from fn on first use.
func Lazy[T, R any](fn func() Parser[T, R]) Parser[T, R] {
	if fn == nil {
		panic(ErrNilParser)
	}

	get := sync.OnceValue(func() Parser[T, R] {
		p := fn()
		if p == nil {
			panic(ErrNilParser.With(slog.String("issue", "lazy supplier returned nil")))
		}

		return p
	})

	return Func[T, R](func(s seq.Sequence[T]) Result[T, R] {
		return get().Parse(s)
	})
}
