package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/packrat/seq"
)

type (
	contextKey struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithOutput returns a new context.Context directing command output to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored by [WithOutput], or os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Input selects the text handed to a grammar: an inline expression, a file,
// or standard input.
type Input struct {
	Expr string `help:"Parse the given text"                     short:"e" xor:"input"`
	File string `help:"Parse the contents of a file ('-' stdin)" short:"f" xor:"input" type:"path"`
}

// read returns the selected input as a rune sequence. Without -e or -f it
// reads standard input.
func (in Input) read() (seq.Sequence[rune], error) {
	if in.Expr != "" {
		return seq.Runes(in.Expr), nil
	}

	var r io.Reader = os.Stdin

	if in.File != "" && in.File != stdinSource {
		f, err := os.Open(in.File)
		if err != nil {
			return nil, ErrReadInput.With(slog.String("file", in.File)).Wrap(err)
		}
		defer f.Close()

		r = f
	}

	s, err := seq.ReadRunes(r)
	if err != nil {
		return nil, ErrReadInput.With(slog.String("file", in.File)).Wrap(err)
	}

	return s, nil
}

// trimNewline drops one trailing line break so that files and piped input
// ending in a newline parse like the equivalent -e text.
func trimNewline(s seq.Sequence[rune]) seq.Sequence[rune] {
	n := s.Len()
	if n > 0 && s.At(n-1) == '\n' {
		n--
		if n > 0 && s.At(n-1) == '\r' {
			n--
		}
	}

	return s.SliceRange(0, n)
}

// Format names the output encodings of reports.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) normalize() Format {
	return Format(strings.ToLower(strings.TrimSpace(string(f))))
}
