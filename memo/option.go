package memo

import "github.com/ardnew/packrat/log"

type config struct {
	logger log.Logger
	name   string
}

// Option configures a [Stateful] root.
type Option func(config) config

// WithLogger sets the logger that receives trace records of table activity.
// The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithName labels the root in log records.
func WithName(name string) Option {
	return func(c config) config {
		c.name = name

		return c
	}
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// RuleOption configures a memoizing wrapper.
type RuleOption func(string) string

// As names a memoizing wrapper in statistics and logs.
func As(name string) RuleOption {
	return func(string) string { return name }
}

func ruleName(opts ...RuleOption) string {
	var name string

	for _, opt := range opts {
		name = opt(name)
	}

	return name
}
