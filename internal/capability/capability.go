// Package capability holds the structural rules an expression must satisfy
// before a statement accepts it into a clause slot.
package capability

import (
	"fmt"

	"github.com/zoobzio/stmtql/internal/types"
)

// Wrapper is an expression form only some clauses accept.
type Wrapper int

const (
	AllowOrdering Wrapper = 1 << iota
	AllowAlias
)

// CheckTyped verifies e has a determinate value type and returns it.
func CheckTyped(clause string, e types.Expr) (types.SQLType, error) {
	t, err := Infer(e)
	if err != nil {
		return types.Unknown, fail(Typed, clause, e, "%v", err)
	}
	return t, nil
}

// CheckSelectableFrom verifies every column e references resolves through src.
func CheckSelectableFrom(clause string, e types.Expr, src types.Source) error {
	visible := src.Visible()
	var err error
	types.Walk(e, func(x types.Expr) bool {
		ref, ok := x.(types.Column)
		if !ok {
			return true
		}
		if _, rerr := Resolve(ref, visible); rerr != nil {
			err = fail(SelectableFrom, clause, e, "%v", rerr)
			return false
		}
		return true
	})
	return err
}

// Resolve finds the single visible column ref names.
func Resolve(ref types.Column, visible []types.Column) (types.Column, error) {
	var matches []types.Column
	for _, c := range visible {
		if c.Name == ref.Name && (ref.Table == "" || ref.Table == c.Table) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return types.Column{}, fmt.Errorf("column %s is not visible from the source", ref)
	case 1:
	default:
		return types.Column{}, fmt.Errorf("column %s is ambiguous", ref)
	}
	if ref.Type != types.Unknown && matches[0].Type != ref.Type {
		return types.Column{}, fmt.Errorf("column %s is %s in the source, not %s", ref, matches[0].Type, ref.Type)
	}
	return matches[0], nil
}

// CheckNonAggregate verifies e contains no cross-row aggregation.
func CheckNonAggregate(clause string, e types.Expr) error {
	if containsAggregate(e) {
		return fail(NonAggregate, clause, e, "aggregate expressions are not allowed here")
	}
	return nil
}

// CheckBooleanTyped verifies e evaluates to a boolean.
func CheckBooleanTyped(clause string, e types.Expr) error {
	t, err := CheckTyped(clause, e)
	if err != nil {
		return err
	}
	if t != types.Boolean {
		return fail(BooleanTyped, clause, e, "expected a boolean expression, got %s", t)
	}
	return nil
}

// CheckWellFormed rejects ordering and alias wrappers where the clause does
// not accept them. Wrappers are only accepted at the top level or directly in
// a top-level list.
func CheckWellFormed(clause string, e types.Expr, allow Wrapper) error {
	top := []types.Expr{e}
	if t, ok := e.(types.Tuple); ok {
		top = t.Items
	}
	for _, item := range top {
		inner := item
		switch x := item.(type) {
		case types.Ordering:
			if allow&AllowOrdering == 0 {
				return fail(WellFormed, clause, e, "ordering is only allowed in ORDER BY")
			}
			inner = x.Operand
		case types.Aliased:
			if allow&AllowAlias == 0 {
				return fail(WellFormed, clause, e, "aliases are only allowed in the select list")
			}
			inner = x.Operand
		case types.Tuple:
			return fail(WellFormed, clause, e, "nested expression lists are not allowed")
		}
		var err error
		types.Walk(inner, func(x types.Expr) bool {
			switch x.(type) {
			case types.Ordering, types.Aliased, types.Tuple:
				err = fail(WellFormed, clause, e, "%s cannot be nested inside an expression", x)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Outputs returns the columns a select list produces, in order. Anonymous
// outputs get an empty name.
func Outputs(e types.Expr) ([]types.Column, error) {
	items := []types.Expr{e}
	if t, ok := e.(types.Tuple); ok {
		items = t.Items
	}
	out := make([]types.Column, 0, len(items))
	for _, item := range items {
		t, err := Infer(item)
		if err != nil {
			return nil, err
		}
		col := types.Column{Type: t}
		switch x := item.(type) {
		case types.Column:
			col.Name = x.Name
		case types.Aliased:
			col.Name = x.Alias
		}
		out = append(out, col)
	}
	return out, nil
}

// CheckValidSource verifies that merging sub into from keeps a valid source.
func CheckValidSource(from types.Source, sub types.Subquery) error {
	const clause = "with"
	if err := CheckSubquery(clause, sub); err != nil {
		return err
	}
	for _, q := range from.Qualifiers() {
		if q == sub.Alias {
			return fail(ValidSource, clause, nil, "alias %q is already in use", sub.Alias)
		}
	}
	return nil
}

// CheckSubquery verifies that sub can stand as a source on its own: it is
// aliased and every output column has a unique name.
func CheckSubquery(clause string, sub types.Subquery) error {
	if sub.Alias == "" {
		return fail(ValidSource, clause, nil, "sub-query requires an alias")
	}
	if sub.Query == nil {
		return fail(ValidSource, clause, nil, "sub-query %q has no query", sub.Alias)
	}
	seen := make(map[string]bool, len(sub.Columns))
	for i, c := range sub.Columns {
		if c.Name == "" {
			return fail(ValidSource, clause, nil, "output %d of sub-query %q has no name; alias it", i+1, sub.Alias)
		}
		if seen[c.Name] {
			return fail(ValidSource, clause, nil, "sub-query %q produces column %q twice", sub.Alias, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// CheckDepth verifies that sub-queries in src nest at most maxDepth deep.
func CheckDepth(clause string, src types.Source, maxDepth int) error {
	if depth := src.Depth(); depth > maxDepth {
		return fail(ValidSource, clause, nil, "maximum subquery depth (%d) exceeded: nested %d deep", maxDepth, depth)
	}
	return nil
}
