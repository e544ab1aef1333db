// Package sqlite provides the SQLite dialect renderer for stmtql.
package sqlite

import (
	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Name identifies the dialect.
const Name = "sqlite"

var capabilities = render.Capabilities{
	CaseInsensitiveLike: false,
	RegexOperators:      false, // REGEXP needs a user function
	ConcatOperator:      true,
	OffsetWithoutLimit:  false,
	NoLimit:             "-1",
	Pagination:          render.PaginationLimitOffset,
}

// Renderer implements the SQLite dialect renderer.
type Renderer struct {
	opts render.Options
}

// New creates a new SQLite renderer.
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

// QuoteIdentifier quotes with double quotes.
func (*Renderer) QuoteIdentifier(name string) string {
	return render.QuoteWith(name, `"`, `"`)
}

func (*Renderer) Operator(op types.Operator) (string, error) {
	if op == types.ILIKE {
		return "", render.NewUnsupportedFeatureError(Name, render.KindOperator, "ILIKE", "LIKE is case-insensitive for ASCII text in SQLite")
	}
	return render.StandardOperator(Name, capabilities, op)
}

func (*Renderer) Function(fn types.Func) (string, error) {
	return render.StandardFunction(fn)
}

// Paginate writes LIMIT -1 when only an offset is present.
func (*Renderer) Paginate(limit, offset render.Fragment, ordered bool) (render.Fragment, error) {
	return render.StandardPaginate(Name, capabilities, limit, offset, ordered)
}
