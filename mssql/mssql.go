// Package mssql provides the SQL Server dialect renderer for stmtql.
package mssql

import (
	"strconv"

	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Name identifies the dialect.
const Name = "mssql"

var capabilities = render.Capabilities{
	CaseInsensitiveLike:  false,
	RegexOperators:       false,
	ConcatOperator:       true,
	OffsetWithoutLimit:   true,
	Pagination:           render.PaginationOffsetFetch,
	PaginationNeedsOrder: true,
}

// Renderer implements the SQL Server dialect renderer.
type Renderer struct {
	opts render.Options
}

// New creates a new SQL Server renderer.
func New(opts ...render.Option) *Renderer {
	return &Renderer{opts: render.NewOptions(opts...)}
}

func (*Renderer) Name() string { return Name }

func (*Renderer) Capabilities() render.Capabilities { return capabilities }

func (r *Renderer) Options() render.Options { return r.opts }

// Placeholder returns @p1, @p2, ...
func (*Renderer) Placeholder(position int) string {
	return "@p" + strconv.Itoa(position)
}

// QuoteIdentifier quotes with square brackets.
func (*Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(name, "[", "]")
}

func (*Renderer) Operator(op types.Operator) (string, error) {
	if op == types.Concat {
		return "+", nil
	}
	return render.StandardOperator(Name, capabilities, op)
}

func (*Renderer) Function(fn types.Func) (string, error) {
	if fn == types.FuncLength {
		return "LEN", nil
	}
	return render.StandardFunction(fn)
}

// Paginate writes OFFSET ... ROWS FETCH NEXT ... ROWS ONLY, which SQL Server
// only accepts after an ORDER BY.
func (*Renderer) Paginate(limit, offset render.Fragment, ordered bool) (render.Fragment, error) {
	return render.StandardPaginate(Name, capabilities, limit, offset, ordered)
}
