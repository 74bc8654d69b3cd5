package parse

import (
	"github.com/ardnew/packrat/seq"
)

// Pair holds the values of two parsers applied in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Then applies p and then q to the remainder, producing both values.
func Then[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, Pair[A, B]] {
	return Func[T, Pair[A, B]](func(s seq.Sequence[T]) Result[T, Pair[A, B]] {
		a := p.Parse(s)
		if !a.OK() {
			return FailAs[Pair[A, B]](a)
		}

		b := q.Parse(a.Rest())
		if !b.OK() {
			return FailAs[Pair[A, B]](b)
		}

		return Success(Pair[A, B]{a.Value(), b.Value()}, b.Rest())
	})
}

// Left applies p then q, keeping the value of p.
func Left[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Map(Then(p, q), func(v Pair[A, B]) A { return v.First })
}

// Right applies p then q, keeping the value of q.
func Right[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Map(Then(p, q), func(v Pair[A, B]) B { return v.Second })
}

// OrElse tries each parser in order at the same position and returns the
// first success. If all fail, the furthest failure is returned, with the
// expectations of equally distant failures combined.
func OrElse[T, R any](ps ...Parser[T, R]) Parser[T, R] {
	for _, p := range ps {
		if p == nil {
			panic(ErrNilParser)
		}
	}

	return Func[T, R](func(s seq.Sequence[T]) Result[T, R] {
		var fail *Failure

		for _, p := range ps {
			r := p.Parse(s)
			if r.OK() {
				return r
			}

			fail = Merge(fail, r.Failure())
		}

		return Fail[T, R](fail)
	})
}

// Map transforms the value produced by p.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return Func[T, B](func(s seq.Sequence[T]) Result[T, B] {
		r := p.Parse(s)
		if !r.OK() {
			return FailAs[B](r)
		}

		return Success(f(r.Value()), r.Rest())
	})
}

// Try transforms the value produced by p with a function that may reject it.
// A non-nil error becomes a failure at the position where p started.
func Try[T, A, B any](p Parser[T, A], f func(A) (B, error)) Parser[T, B] {
	return Func[T, B](func(s seq.Sequence[T]) Result[T, B] {
		r := p.Parse(s)
		if !r.OK() {
			return FailAs[B](r)
		}

		v, err := f(r.Value())
		if err != nil {
			return Reject[T, B](s, err.Error())
		}

		return Success(v, r.Rest())
	})
}

// Opt applies p, producing def without consuming input if p fails.
func Opt[T, R any](p Parser[T, R], def R) Parser[T, R] {
	return OrElse(p, Succeed[T](def))
}

// Many applies p zero or more times. Repetition stops at the first failure
// or at the first match that consumes no input.
func Many[T, R any](p Parser[T, R]) Parser[T, []R] {
	return Func[T, []R](func(s seq.Sequence[T]) Result[T, []R] {
		var vs []R

		for {
			r := p.Parse(s)
			if !r.OK() || r.Consumed(s) == 0 {
				return Success(vs, s)
			}

			vs = append(vs, r.Value())
			s = r.Rest()
		}
	})
}

// Many1 applies p one or more times.
func Many1[T, R any](p Parser[T, R]) Parser[T, []R] {
	return Map(Then(p, Many(p)), func(v Pair[R, []R]) []R {
		return append([]R{v.First}, v.Second...)
	})
}

// SepBy1 applies p one or more times, separated by sep.
func SepBy1[T, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	return Map(Then(p, Many(Right(sep, p))), func(v Pair[R, []R]) []R {
		return append([]R{v.First}, v.Second...)
	})
}

// ChainLeft parses one or more p separated by op, folding the values from
// the left with the functions op produces.
func ChainLeft[T, R any](p Parser[T, R], op Parser[T, func(R, R) R]) Parser[T, R] {
	tail := Many(Then(op, p))

	return Map(Then(p, tail), func(v Pair[R, []Pair[func(R, R) R, R]]) R {
		acc := v.First
		for _, step := range v.Second {
			acc = step.First(acc, step.Second)
		}

		return acc
	})
}

// Phrase succeeds only if p consumes the entire input.
func Phrase[T, R any](p Parser[T, R]) Parser[T, R] {
	return Func[T, R](func(s seq.Sequence[T]) Result[T, R] {
		r := p.Parse(s)
		if !r.OK() {
			return r
		}

		if rest := r.Rest(); rest.Len() != 0 {
			return Expect[T, R](rest, "end of input")
		}

		return r
	})
}

// Named replaces the expectations of failures that occur at the position
// where p started with the single description name.
func Named[T, R any](name string, p Parser[T, R]) Parser[T, R] {
	return Func[T, R](func(s seq.Sequence[T]) Result[T, R] {
		r := p.Parse(s)
		if r.OK() {
			return r
		}

		f := r.Failure()
		if f.Offset != s.Key().Offset() || f.Message != "" {
			return r
		}

		return Fail[T, R](&Failure{Offset: f.Offset, Expected: []string{name}})
	})
}
