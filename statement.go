package stmtql

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zoobzio/stmtql/internal/capability"
	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Statement is an immutable SELECT statement. Each method returns a new
// Statement; the receiver is left as it was.
//
// The first validity error is kept and every later transformation is
// skipped. Render and IntoBoxed report it.
type Statement struct {
	query types.Query
	err   error
}

// From creates a statement selecting every visible column of src.
func From(src Source) Statement {
	if src == nil {
		return Statement{err: fmt.Errorf("statement requires a source: %w", ErrInvalid)}
	}
	st := Statement{query: types.Query{From: src.source()}}
	if sub, ok := src.(Subquery); ok {
		if sub.err != nil {
			st.err = sub.err
			return st
		}
		if err := capability.CheckSubquery("from", sub.s); err != nil {
			st.err = err
			return st
		}
	}
	if len(st.query.From.Visible()) == 0 {
		st.err = fmt.Errorf("source %s has no columns: %w", st.query.From.Qualifiers()[0], ErrInvalid)
	}
	return st
}

// Err returns the first validity error, if any.
func (s Statement) Err() error {
	return s.err
}

// Select replaces the select list. Several expressions form one row.
func (s Statement) Select(exprs ...Expr) Statement {
	if s.err != nil {
		return s
	}
	e, err := list("select", exprs)
	if err == nil {
		err = s.check("select", e, capability.AllowAlias)
	}
	if err != nil {
		s.err = err
		return s
	}
	s.query.Select = &types.SelectClause{Expr: e}
	return s
}

// Distinct marks the statement SELECT DISTINCT.
func (s Statement) Distinct() Statement {
	if s.err != nil {
		return s
	}
	s.query.Distinct = &types.DistinctClause{}
	return s
}

// Filter adds pred to the WHERE clause. An existing predicate becomes the
// left operand of an AND, so predicates render in call order.
func (s Statement) Filter(pred Expr) Statement {
	if s.err != nil {
		return s
	}
	if err := s.checkPredicate("where", pred); err != nil {
		s.err = err
		return s
	}
	if s.query.Where != nil {
		pred = types.Binary{Left: s.query.Where.Predicate, Right: pred, Op: types.AND}
	}
	s.query.Where = &types.WhereClause{Predicate: pred}
	return s
}

// Order replaces the ORDER BY clause.
func (s Statement) Order(exprs ...Expr) Statement {
	if s.err != nil {
		return s
	}
	e, err := list("order by", exprs)
	if err == nil {
		err = s.check("order by", e, capability.AllowOrdering)
	}
	if err != nil {
		s.err = err
		return s
	}
	s.query.Order = &types.OrderClause{Expr: e}
	return s
}

// Limit replaces the row limit. n is bound as a BIGINT parameter.
func (s Statement) Limit(n int64) Statement {
	if s.err != nil {
		return s
	}
	s.query.Limit = &types.LimitClause{Count: types.Literal{Value: n, Type: types.BigInt}}
	return s
}

// Offset replaces the row offset. n is bound as a BIGINT parameter.
func (s Statement) Offset(n int64) Statement {
	if s.err != nil {
		return s
	}
	s.query.Offset = &types.OffsetClause{Count: types.Literal{Value: n, Type: types.BigInt}}
	return s
}

// With merges sub into the source. Its columns are visible to the
// transformations that follow.
func (s Statement) With(sub Subquery) Statement {
	if s.err != nil {
		return s
	}
	if sub.err != nil {
		s.err = sub.err
		return s
	}
	if err := capability.CheckValidSource(s.query.From, sub.s); err != nil {
		s.err = err
		return s
	}
	s.query.From = types.WithSource{From: s.query.From, Sub: sub.s}
	return s
}

// GroupBy replaces the GROUP BY clause. Aggregates are rejected. The select
// list is not checked against it.
func (s Statement) GroupBy(exprs ...Expr) Statement {
	if s.err != nil {
		return s
	}
	e, err := list("group by", exprs)
	if err == nil {
		err = checkGrouping("group by", e, s.query.From)
	}
	if err != nil {
		s.err = err
		return s
	}
	s.query.GroupBy = &types.GroupByClause{Expr: e}
	return s
}

// As wraps the statement as a sub-query named alias.
func (s Statement) As(alias string) Subquery {
	sub := Subquery{s: types.Subquery{Alias: alias}, err: s.err}
	if sub.err != nil {
		return sub
	}
	if !isValidSQLIdentifier(alias) {
		sub.err = fmt.Errorf("invalid sub-query alias: %q", alias)
		return sub
	}
	q := s.query
	cols, err := capability.Outputs(q.Projection())
	if err != nil {
		sub.err = err
		return sub
	}
	for i := range cols {
		cols[i].Table = alias
	}
	sub.s.Query = &q
	sub.s.Columns = cols
	return sub
}

// Columns returns the shape of a result row. Unnamed outputs have an empty
// name. It returns nil when the statement is invalid.
func (s Statement) Columns() []Column {
	if s.err != nil {
		return nil
	}
	cols, err := capability.Outputs(s.query.Projection())
	if err != nil {
		return nil
	}
	return cols
}

// Render produces the SQL and ordered parameters for r. Sub-query nesting
// is bounded by r's MaxSubqueryDepth option.
func (s Statement) Render(r Renderer) (*QueryResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if r == nil {
		return nil, errors.New("render requires a renderer")
	}
	if err := capability.CheckDepth("from", s.query.From, r.Options().MaxSubqueryDepth); err != nil {
		return nil, err
	}
	return render.Statement(&s.query, r)
}

// MustRender renders the statement or panics on error.
func (s Statement) MustRender(r Renderer) *QueryResult {
	result, err := s.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}

// IntoBoxed compiles every clause for r and returns the erased statement.
// It fails when any clause cannot be expressed in r.
func (s Statement) IntoBoxed(r Renderer) (BoxedStatement, error) {
	if s.err != nil {
		return BoxedStatement{}, s.err
	}
	if r == nil {
		return BoxedStatement{}, errors.New("boxing requires a renderer")
	}
	if err := capability.CheckDepth("from", s.query.From, r.Options().MaxSubqueryDepth); err != nil {
		return BoxedStatement{}, err
	}
	compiled, err := render.Compile(&s.query, r)
	if err != nil {
		return BoxedStatement{}, err
	}
	slog.Debug("boxed statement",
		slog.String("dialect", r.Name()),
		slog.Bool("filtered", compiled.Where != nil),
		slog.Bool("paginated", compiled.Limit != nil || compiled.Offset != nil))
	return BoxedStatement{
		dialect:  r,
		from:     s.query.From,
		compiled: *compiled,
	}, nil
}

// check runs the shape, visibility, and type checks every clause shares.
func (s Statement) check(clause string, e Expr, allow capability.Wrapper) error {
	return checkExpr(clause, e, s.query.From, allow)
}

func (s Statement) checkPredicate(clause string, pred Expr) error {
	return checkPredicate(clause, pred, s.query.From)
}

// list folds exprs into a single expression, a tuple when there are several.
func list(clause string, exprs []Expr) (Expr, error) {
	switch len(exprs) {
	case 0:
		return nil, fmt.Errorf("%s: at least one expression is required: %w", clause, ErrInvalid)
	case 1:
		return exprs[0], nil
	}
	return types.Tuple{Items: append([]Expr(nil), exprs...)}, nil
}
