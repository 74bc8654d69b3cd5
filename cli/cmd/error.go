package cmd

import "github.com/ardnew/packrat/pkg"

// Predefined errors (sentinel values).
var (
	ErrJSONMarshal     = pkg.NewError("marshal JSON")
	ErrYAMLMarshal     = pkg.NewError("marshal YAML")
	ErrWriteConfig     = pkg.NewError("write configuration file")
	ErrFileExists      = pkg.NewError("file exists (use --force to overwrite)")
	ErrReadInput       = pkg.NewError("read input")
	ErrParseFailed     = pkg.NewError("parse failed")
	ErrOracleMismatch  = pkg.NewError("result differs from reference evaluator")
	ErrOracleEval      = pkg.NewError("reference evaluator failed")
	ErrUnknownFormat   = pkg.NewError("unknown output format")
	ErrConfigUndefined = pkg.NewError("configuration path undefined")
)
