package parse

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/packrat/seq"
)

// Failure describes why a parser did not match.
type Failure struct {
	// Offset is the absolute position within the root input.
	Offset int `json:"offset" yaml:"offset"`
	// Expected lists descriptions of what would have matched at Offset.
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
	// Message explains a failure that is not a missing expectation.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var sb strings.Builder

	sb.WriteString("parse failure at offset ")
	sb.WriteString(strconv.Itoa(f.Offset))

	if f.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(f.Message)
	}

	if len(f.Expected) > 0 {
		sb.WriteString(": expected ")
		sb.WriteString(strings.Join(f.Expected, ", "))
	}

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (f *Failure) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("offset", f.Offset)}

	if f.Message != "" {
		attrs = append(attrs, slog.String("message", f.Message))
	}

	if len(f.Expected) > 0 {
		attrs = append(attrs, slog.Any("expected", f.Expected))
	}

	return slog.GroupValue(attrs...)
}

// Locate returns the line of source containing the failure offset and the
// column of the offset within that line, both counted in runes.
// ok is false when the offset lies outside source.
func (f *Failure) Locate(source string) (line string, col int, ok bool) {
	runes := []rune(source)
	if f.Offset < 0 || f.Offset > len(runes) {
		return "", 0, false
	}

	start := f.Offset
	for start > 0 && runes[start-1] != '\n' {
		start--
	}

	end := f.Offset
	for end < len(runes) && runes[end] != '\n' {
		end++
	}

	return string(runes[start:end]), f.Offset - start, true
}

// Merge returns the failure that got furthest into the input.
// Failures at the same offset are combined. Neither argument is modified.
func Merge(a, b *Failure) *Failure {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Offset > b.Offset:
		return a
	case b.Offset > a.Offset:
		return b
	}

	msg := a.Message
	if msg == "" {
		msg = b.Message
	}

	exp := slices.Concat(a.Expected, b.Expected)
	slices.Sort(exp)

	return &Failure{
		Offset:   a.Offset,
		Expected: slices.Compact(exp),
		Message:  msg,
	}
}

// Result is the outcome of applying a parser to a sequence.
//
// The zero Result is a failure without detail. Results are immutable.
type Result[T, R any] struct {
	value R
	rest  seq.Sequence[T]
	fail  *Failure
}

// Success returns a successful result carrying value, with rest positioned
// just past the consumed input.
func Success[T, R any](value R, rest seq.Sequence[T]) Result[T, R] {
	if rest == nil {
		panic(seq.ErrNilSequence)
	}

	return Result[T, R]{value: value, rest: rest}
}

// Fail returns a failed result.
func Fail[T, R any](f *Failure) Result[T, R] {
	if f == nil {
		f = &Failure{Message: "no match"}
	}

	return Result[T, R]{fail: f}
}

// Expect returns a failure at the start of at, listing what was expected.
func Expect[T, R any](at seq.Sequence[T], expected ...string) Result[T, R] {
	return Fail[T, R](&Failure{
		Offset:   at.Key().Offset(),
		Expected: expected,
	})
}

// Reject returns a failure at the start of at with an explanatory message.
func Reject[T, R any](at seq.Sequence[T], msg string) Result[T, R] {
	return Fail[T, R](&Failure{Offset: at.Key().Offset(), Message: msg})
}

// FailAs converts a failed result to a failure of another value type.
// It panics if r succeeded.
func FailAs[R2, T, R any](r Result[T, R]) Result[T, R2] {
	if r.OK() {
		panic(ErrNotFailure)
	}

	return Result[T, R2]{fail: r.Failure()}
}

// OK reports whether the result is a success.
func (r Result[T, R]) OK() bool { return r.fail == nil && r.rest != nil }

// Value returns the produced value, or the zero value on failure.
func (r Result[T, R]) Value() R { return r.value }

// Rest returns the remaining input, or nil on failure.
func (r Result[T, R]) Rest() seq.Sequence[T] { return r.rest }

// Failure returns the failure, or nil on success.
func (r Result[T, R]) Failure() *Failure {
	if r.OK() {
		return nil
	}

	if r.fail == nil {
		return &Failure{Message: "no match"}
	}

	return r.fail
}

// Consumed returns the number of elements consumed starting from from,
// or -1 on failure.
func (r Result[T, R]) Consumed(from seq.Sequence[T]) int {
	if !r.OK() {
		return -1
	}

	return r.rest.Key().Offset() - from.Key().Offset()
}

// LogValue implements slog.LogValuer.
func (r Result[T, R]) LogValue() slog.Value {
	if !r.OK() {
		return slog.GroupValue(
			slog.Bool("ok", false),
			slog.Any("failure", r.Failure()),
		)
	}

	return slog.GroupValue(
		slog.Bool("ok", true),
		slog.Any("rest", r.rest.Key()),
	)
}
