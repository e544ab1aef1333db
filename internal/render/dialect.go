package render

import "github.com/zoobzio/stmtql/internal/types"

// Dialect is the backend a statement is rendered for.
type Dialect interface {
	// Name identifies the dialect in errors and configuration.
	Name() string

	// Capabilities describes the optional features the dialect supports.
	Capabilities() Capabilities

	// Options returns the rendering options the dialect was built with.
	Options() Options

	// Placeholder returns the bind marker for the 1-based parameter position.
	Placeholder(position int) string

	// QuoteIdentifier quotes a table, column or alias name.
	QuoteIdentifier(name string) string

	// Operator returns the dialect spelling of op, or an UnsupportedFeatureError.
	Operator(op types.Operator) (string, error)

	// Function returns the dialect name of fn, or an UnsupportedFeatureError.
	Function(fn types.Func) (string, error)

	// Paginate builds the trailing LIMIT/OFFSET fragment. Either argument may
	// be nil. ordered reports whether the statement has an ORDER BY.
	Paginate(limit, offset Fragment, ordered bool) (Fragment, error)
}

// Options tune rendering independently of the dialect.
type Options struct {
	AlwaysQuote      bool
	MaxSubqueryDepth int
}

// Option configures Options.
type Option func(*Options)

// WithAlwaysQuote quotes every identifier, not only those that need it.
func WithAlwaysQuote() Option {
	return func(o *Options) { o.AlwaysQuote = true }
}

// WithMaxSubqueryDepth bounds sub-query nesting for statements rendered or
// boxed with the dialect.
func WithMaxSubqueryDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxSubqueryDepth = depth
		}
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{MaxSubqueryDepth: types.MaxSubqueryDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// StandardOperator spells op the ANSI way, consulting caps for optional
// operators. Dialects call it for everything they do not override.
func StandardOperator(dialect string, caps Capabilities, op types.Operator) (string, error) {
	switch op {
	case types.ILIKE:
		if !caps.CaseInsensitiveLike {
			return "", NewUnsupportedFeatureError(dialect, KindOperator, "ILIKE", "use LIKE with LOWER() on both sides")
		}
	case types.RegexMatch:
		if !caps.RegexOperators {
			return "", NewUnsupportedFeatureError(dialect, KindOperator, "regular expression matching")
		}
	case types.Concat:
		if !caps.ConcatOperator {
			return "", NewUnsupportedFeatureError(dialect, KindOperator, "|| concatenation")
		}
	}
	return string(op), nil
}

// StandardFunction spells fn the ANSI way.
func StandardFunction(fn types.Func) (string, error) {
	return string(fn), nil
}

// StandardPaginate builds the pagination fragment described by caps.
func StandardPaginate(dialect string, caps Capabilities, limit, offset Fragment, ordered bool) (Fragment, error) {
	if caps.PaginationNeedsOrder && !ordered {
		return nil, NewUnsupportedFeatureError(dialect, KindClause, "LIMIT/OFFSET without ORDER BY", "add an Order clause")
	}
	if limit == nil && !caps.OffsetWithoutLimit && caps.NoLimit == "" {
		return nil, NewUnsupportedFeatureError(dialect, KindClause, "OFFSET without LIMIT", "add a Limit clause")
	}
	if caps.Pagination == PaginationOffsetFetch {
		return offsetFetch(limit, offset), nil
	}
	noLimit := ""
	if !caps.OffsetWithoutLimit {
		noLimit = caps.NoLimit
	}
	return limitOffset(limit, offset, noLimit), nil
}
