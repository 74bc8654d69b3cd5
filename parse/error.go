package parse

import "github.com/ardnew/packrat/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnboundRef     = pkg.NewError("parser reference used before binding")
	ErrReboundRef     = pkg.NewError("parser reference bound twice")
	ErrNilParser      = pkg.NewError("nil parser")
	ErrInvalidPattern = pkg.NewError("invalid pattern")
	ErrNotFailure     = pkg.NewError("result is not a failure")
)
