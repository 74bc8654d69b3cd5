package seq

import (
	"log/slog"

	"github.com/ardnew/packrat/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrOutOfBounds = pkg.NewError("sequence bounds violated")
	ErrNilSequence = pkg.NewError("nil sequence")
	ErrReadInput   = pkg.NewError("failed to read input")
)

func outOfBounds(op string, n int, bounds ...int) *pkg.Error {
	attrs := []slog.Attr{slog.String("op", op), slog.Int("length", n)}

	switch len(bounds) {
	case 1:
		attrs = append(attrs, slog.Int("index", bounds[0]))
	case 2:
		attrs = append(attrs,
			slog.Int("start", bounds[0]),
			slog.Int("end", bounds[1]),
		)
	}

	return ErrOutOfBounds.With(attrs...)
}
