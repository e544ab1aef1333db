// Package mysql provides the MySQL and MariaDB dialect renderer for stmtql.
package mysql

import (
	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Name identifies the dialect.
const Name = "mysql"

// maxRows is the documented way to write OFFSET without a LIMIT in MySQL.
const maxRows = "18446744073709551615"

var capabilities = render.Capabilities{
	CaseInsensitiveLike: false,
	RegexOperators:      true,
	ConcatOperator:      false,
	OffsetWithoutLimit:  false,
	NoLimit:             maxRows,
	Pagination:          render.PaginationLimitOffset,
}

// Renderer implements the MySQL dialect renderer.
type Renderer struct {
	opts render.Options
}

// New creates a new MySQL renderer.
func New(opts ...render.Option) *Renderer {
	return &Renderer{opts: render.NewOptions(opts...)}
}

func (*Renderer) Name() string { return Name }

func (*Renderer) Capabilities() render.Capabilities { return capabilities }

func (r *Renderer) Options() render.Options { return r.opts }

// Placeholder returns ? for every position.
func (*Renderer) Placeholder(int) string {
	return "?"
}

// QuoteIdentifier quotes with backticks.
func (*Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(name, "`", "`")
}

func (*Renderer) Operator(op types.Operator) (string, error) {
	switch op {
	case types.RegexMatch:
		return "REGEXP", nil
	case types.Concat:
		// || is logical OR unless PIPES_AS_CONCAT is set.
		return "", render.NewUnsupportedFeatureError(Name, render.KindOperator, "|| concatenation", "use CONCAT()")
	}
	return render.StandardOperator(Name, capabilities, op)
}

func (*Renderer) Function(fn types.Func) (string, error) {
	if fn == types.FuncLength {
		return "CHAR_LENGTH", nil
	}
	return render.StandardFunction(fn)
}

// Paginate writes the maximum row count when only an offset is present.
func (*Renderer) Paginate(limit, offset render.Fragment, ordered bool) (render.Fragment, error) {
	return render.StandardPaginate(Name, capabilities, limit, offset, ordered)
}
