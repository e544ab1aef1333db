package types

// MaxSubqueryDepth bounds how deeply sub-queries may nest.
const MaxSubqueryDepth = 3

// Query holds one value per clause slot. A nil slot is unset.
// This is exported from the internal package so dialects can use it,
// but external users cannot import this package.
//
//nolint:govet // fieldalignment: slot order mirrors SQL order
type Query struct {
	Select   *SelectClause
	From     Source
	Distinct *DistinctClause
	Where    *WhereClause
	GroupBy  *GroupByClause
	Order    *OrderClause
	Limit    *LimitClause
	Offset   *OffsetClause
}

// Projection returns the selected expression, defaulting to every visible column.
func (q *Query) Projection() Expr {
	if q.Select != nil {
		return q.Select.Expr
	}
	cols := q.From.Visible()
	if len(cols) == 1 {
		return cols[0]
	}
	items := make([]Expr, len(cols))
	for i, c := range cols {
		items[i] = c
	}
	return Tuple{Items: items}
}

// QueryResult contains the rendered SQL and its ordered bind parameters.
type QueryResult struct {
	SQL    string
	Params []any
}
