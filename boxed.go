package stmtql

import (
	"errors"

	"github.com/zoobzio/pipz"
	"github.com/zoobzio/stmtql/internal/capability"
	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// BoxedStatement is a Statement erased to compiled fragments for one
// dialect. Clauses can be attached from separate branches of caller code;
// each is validated against the original source and compiled on the spot.
//
// Fragments are never mutated after compilation, so a BoxedStatement may be
// rendered repeatedly and from several goroutines at once.
type BoxedStatement struct {
	dialect  render.Dialect
	from     types.Source
	compiled render.Compiled
	err      error
}

// Err returns the first error recorded on the statement, if any.
func (b BoxedStatement) Err() error {
	return b.err
}

// Dialect returns the renderer the statement was boxed for.
func (b BoxedStatement) Dialect() Renderer {
	return b.dialect
}

// Select replaces the select list.
func (b BoxedStatement) Select(exprs ...Expr) BoxedStatement {
	f, err := b.compile("select", exprs, exprChecks, capability.AllowAlias)
	if err != nil {
		return b.fail(err)
	}
	b.compiled.Select = f
	return b
}

// Distinct marks the statement SELECT DISTINCT.
func (b BoxedStatement) Distinct() BoxedStatement {
	if b.err != nil {
		return b
	}
	b.compiled.Distinct = render.Distinct()
	return b
}

// Filter ANDs pred onto the WHERE clause, after any existing predicate.
func (b BoxedStatement) Filter(pred Expr) BoxedStatement {
	if b.err != nil {
		return b
	}
	if err := b.ready(); err != nil {
		return b.fail(err)
	}
	if err := checkPredicate("where", pred, b.from); err != nil {
		return b.fail(err)
	}
	f, err := render.CompileExpr(pred, b.dialect)
	if err != nil {
		return b.fail(err)
	}
	b.compiled.Where = render.And(b.compiled.Where, f)
	return b
}

// Order replaces the ORDER BY clause.
func (b BoxedStatement) Order(exprs ...Expr) BoxedStatement {
	f, err := b.compile("order by", exprs, exprChecks, capability.AllowOrdering)
	if err != nil {
		return b.fail(err)
	}
	b.compiled.Order = f
	return b
}

// GroupBy replaces the GROUP BY clause.
func (b BoxedStatement) GroupBy(exprs ...Expr) BoxedStatement {
	if b.err != nil {
		return b
	}
	f, err := b.compile("group by", exprs, groupingChecks, 0)
	if err != nil {
		return b.fail(err)
	}
	b.compiled.GroupBy = f
	return b
}

// Limit replaces the row limit.
func (b BoxedStatement) Limit(n int64) BoxedStatement {
	if b.err != nil {
		return b
	}
	b.compiled.Limit = render.Bind(n)
	return b
}

// Offset replaces the row offset.
func (b BoxedStatement) Offset(n int64) BoxedStatement {
	if b.err != nil {
		return b
	}
	b.compiled.Offset = render.Bind(n)
	return b
}

// Render produces the SQL and ordered parameters for the bound dialect.
func (b BoxedStatement) Render() (*QueryResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.ready(); err != nil {
		return nil, err
	}
	return render.Write(&b.compiled, b.dialect)
}

// MustRender renders the statement or panics on error.
func (b BoxedStatement) MustRender() *QueryResult {
	result, err := b.Render()
	if err != nil {
		panic(err)
	}
	return result
}

func (b BoxedStatement) compile(clause string, exprs []Expr, checks *pipz.Sequence[clauseCheck], allow capability.Wrapper) (render.Fragment, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.ready(); err != nil {
		return nil, err
	}
	e, err := list(clause, exprs)
	if err != nil {
		return nil, err
	}
	if err := runChecks(checks, clauseCheck{clause: clause, expr: e, src: b.from, allow: allow}); err != nil {
		return nil, err
	}
	return render.CompileExpr(e, b.dialect)
}

// ready rejects the zero value, which was never produced by IntoBoxed.
func (b BoxedStatement) ready() error {
	if b.dialect == nil || b.from == nil {
		return errors.New("boxed statement was not created by IntoBoxed")
	}
	return nil
}

func (b BoxedStatement) fail(err error) BoxedStatement {
	if b.err == nil {
		b.err = err
	}
	return b
}
