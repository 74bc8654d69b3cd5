package memo

import "github.com/ardnew/packrat/pkg"

// Predefined errors (sentinel values).
var (
	ErrEntryType = pkg.NewError("memo entry has unexpected type")
)
