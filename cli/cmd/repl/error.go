package repl

import "github.com/ardnew/packrat/pkg"

// Predefined errors (sentinel values).
var (
	ErrOutOfBounds     = pkg.NewError("index out of range")
	ErrUnknownCommand  = pkg.NewError("unknown command")
	ErrMissingArgument = pkg.NewError("missing argument")
)
