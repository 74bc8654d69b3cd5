package grammar

import "github.com/ardnew/packrat/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownGrammar = pkg.NewError("unknown grammar")
	ErrNeedsMemo      = pkg.NewError("left-recursive grammar requires memoization")
	ErrDivideByZero   = pkg.NewError("division by zero")
	ErrIntegerRange   = pkg.NewError("integer out of range")
)
