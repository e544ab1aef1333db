// Package postgres provides the PostgreSQL dialect renderer for stmtql.
package postgres

import (
	"strconv"

	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Name identifies the dialect.
const Name = "postgres"

var capabilities = render.Capabilities{
	CaseInsensitiveLike: true,
	RegexOperators:      true,
	ConcatOperator:      true,
	OffsetWithoutLimit:  true,
	Pagination:          render.PaginationLimitOffset,
}

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	opts render.Options
}

// New creates a new PostgreSQL renderer.
func New(opts ...render.Option) *Renderer {
	return &Renderer{opts: render.NewOptions(opts...)}
}

func (*Renderer) Name() string { return Name }

func (*Renderer) Capabilities() render.Capabilities { return capabilities }

func (r *Renderer) Options() render.Options { return r.opts }

// Placeholder returns $1, $2, ...
func (*Renderer) Placeholder(position int) string {
	return "$" + strconv.Itoa(position)
}

// QuoteIdentifier quotes with double quotes.
func (*Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(name, `"`, `"`)
}

func (*Renderer) Operator(op types.Operator) (string, error) {
	return render.StandardOperator(Name, capabilities, op)
}

func (*Renderer) Function(fn types.Func) (string, error) {
	return render.StandardFunction(fn)
}

func (*Renderer) Paginate(limit, offset render.Fragment, ordered bool) (render.Fragment, error) {
	return render.StandardPaginate(Name, capabilities, limit, offset, ordered)
}
