package parse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/ardnew/packrat/seq"
)

// Satisfy matches a single element for which pred returns true.
// The description is reported as the expectation on failure.
func Satisfy[T any](desc string, pred func(T) bool) Parser[T, T] {
	return Func[T, T](func(s seq.Sequence[T]) Result[T, T] {
		if s.Len() == 0 || !pred(s.At(0)) {
			return Expect[T, T](s, desc)
		}

		return Success(s.At(0), s.Slice(1))
	})
}

// Elem matches a single element equal to want.
func Elem[T comparable](want T) Parser[T, T] {
	return Satisfy(fmt.Sprintf("%v", want), func(v T) bool { return v == want })
}

// Token matches the exact run of elements in want.
func Token[T comparable](want ...T) Parser[T, []T] {
	desc := fmt.Sprintf("%v", want)

	return Func[T, []T](func(s seq.Sequence[T]) Result[T, []T] {
		if s.Len() < len(want) {
			return Expect[T, []T](s, desc)
		}

		for i, w := range want {
			if s.At(i) != w {
				return Expect[T, []T](s, desc)
			}
		}

		return Success(want, s.Slice(len(want)))
	})
}

// Literal matches the text lit.
func Literal(lit string) Parser[rune, string] {
	want := []rune(lit)
	desc := strconv.Quote(lit)

	return Func[rune, string](func(s seq.Sequence[rune]) Result[rune, string] {
		if s.Len() < len(want) {
			return Expect[rune, string](s, desc)
		}

		for i, w := range want {
			if s.At(i) != w {
				return Expect[rune, string](s, desc)
			}
		}

		return Success(lit, s.Slice(len(want)))
	})
}

// Regexp matches the longest-leftmost text matching pattern, anchored at the
// current position. It panics if pattern does not compile.
func Regexp(pattern string) Parser[rune, string] {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		panic(ErrInvalidPattern.Wrap(err).With(slog.String("pattern", pattern)))
	}

	re.Longest()

	desc := "/" + pattern + "/"

	return Func[rune, string](func(s seq.Sequence[rune]) Result[rune, string] {
		loc := re.FindReaderIndex(seq.RuneReader(s))
		if loc == nil {
			return Expect[rune, string](s, desc)
		}

		n := seq.RuneCount(s, loc[1])

		return Success(seq.String(s.SliceRange(0, n)), s.Slice(n))
	})
}

// End matches only the end of input.
func End[T any]() Parser[T, struct{}] {
	return Func[T, struct{}](func(s seq.Sequence[T]) Result[T, struct{}] {
		if s.Len() != 0 {
			return Expect[T, struct{}](s, "end of input")
		}

		return Success(struct{}{}, s)
	})
}

// Succeed matches the empty input and produces v.
func Succeed[T, R any](v R) Parser[T, R] {
	return Func[T, R](func(s seq.Sequence[T]) Result[T, R] {
		return Success(v, s)
	})
}
