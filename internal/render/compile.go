package render

import (
	"fmt"

	"github.com/zoobzio/stmtql/internal/types"
)

// Compiled is a statement with every slot compiled for one dialect.
// A nil slot is unset and renders nothing.
//
//nolint:govet // fieldalignment: slot order mirrors SQL order
type Compiled struct {
	Select   Fragment
	From     Fragment
	Distinct Fragment
	Where    Fragment
	GroupBy  Fragment
	Order    Fragment
	Limit    Fragment
	Offset   Fragment
	// Qualify is set when FROM merges several sources, so columns need
	// their table or alias prefix.
	Qualify bool
}

// Compile turns every slot of q into a fragment for d.
func Compile(q *types.Query, d Dialect) (*Compiled, error) {
	if q.From == nil {
		return nil, fmt.Errorf("statement has no source")
	}

	c := &Compiled{Qualify: len(q.From.Qualifiers()) > 1}
	var err error

	if c.Select, err = CompileExpr(q.Projection(), d); err != nil {
		return nil, err
	}
	if c.From, err = compileSource(q.From, d); err != nil {
		return nil, err
	}
	if q.Distinct != nil {
		c.Distinct = Distinct()
	}
	if q.Where != nil {
		if c.Where, err = CompileExpr(q.Where.Predicate, d); err != nil {
			return nil, err
		}
	}
	if q.GroupBy != nil {
		if c.GroupBy, err = CompileExpr(q.GroupBy.Expr, d); err != nil {
			return nil, err
		}
	}
	if q.Order != nil {
		if c.Order, err = CompileExpr(q.Order.Expr, d); err != nil {
			return nil, err
		}
	}
	if q.Limit != nil {
		c.Limit = Bind(q.Limit.Count.Value)
	}
	if q.Offset != nil {
		c.Offset = Bind(q.Offset.Count.Value)
	}
	return c, nil
}

// Distinct returns the DISTINCT marker fragment.
func Distinct() Fragment {
	return raw("DISTINCT ")
}

// And combines two compiled predicates. A nil left side yields right alone,
// so an absent WHERE never renders as an empty conjunction.
func And(left, right Fragment) Fragment {
	if left == nil {
		return right
	}
	return binary{
		left:  asExpr(left),
		right: asExpr(right),
		token: string(types.AND),
		op:    types.AND,
	}
}

func asExpr(f Fragment) exprFragment {
	if e, ok := f.(exprFragment); ok {
		return e
	}
	return group{f}
}

// group wraps a foreign fragment so it always renders parenthesized.
type group struct {
	inner Fragment
}

func (g group) ToSQL(b *Builder) error {
	b.Push("(")
	if err := g.inner.ToSQL(b); err != nil {
		return err
	}
	b.Push(")")
	return nil
}

func (group) precedence() int { return primary }

func compileSource(src types.Source, d Dialect) (Fragment, error) {
	switch s := src.(type) {
	case types.Table:
		return table{name: s.Name, alias: s.Alias}, nil
	case types.Subquery:
		inner, err := Compile(s.Query, d)
		if err != nil {
			return nil, err
		}
		return derived{query: inner, alias: s.Alias}, nil
	case types.WithSource:
		from, err := compileSource(s.From, d)
		if err != nil {
			return nil, err
		}
		sub, err := compileSource(s.Sub, d)
		if err != nil {
			return nil, err
		}
		return sequence{from, raw(", "), sub}, nil
	}
	return nil, fmt.Errorf("unknown source type %T", src)
}

// CompileExpr compiles e for d, failing on constructs d cannot express.
func CompileExpr(e types.Expr, d Dialect) (Fragment, error) {
	return compileExpr(e, d)
}

func compileExpr(e types.Expr, d Dialect) (exprFragment, error) {
	switch x := e.(type) {
	case types.Column:
		return column{table: x.Table, name: x.Name}, nil
	case types.Literal:
		return bind{value: x.Value}, nil
	case types.Binary:
		token, err := d.Operator(x.Op)
		if err != nil {
			return nil, err
		}
		left, err := compileExpr(x.Left, d)
		if err != nil {
			return nil, err
		}
		right, err := compileExpr(x.Right, d)
		if err != nil {
			return nil, err
		}
		return binary{left: left, right: right, token: token, op: x.Op}, nil
	case types.Unary:
		inner, err := compileExpr(x.Operand, d)
		if err != nil {
			return nil, err
		}
		if x.Op == types.NOT {
			return not{operand: inner}, nil
		}
		return nullTest{operand: inner, op: x.Op}, nil
	case types.In:
		inner, err := compileExpr(x.Operand, d)
		if err != nil {
			return nil, err
		}
		values := make([]Fragment, len(x.Values))
		for i, v := range x.Values {
			values[i] = bind{value: v.Value}
		}
		return in{operand: inner, values: values, negate: x.Negate}, nil
	case types.Aggregate:
		if x.Arg == nil {
			return call{name: string(x.Func), star: true}, nil
		}
		arg, err := compileExpr(x.Arg, d)
		if err != nil {
			return nil, err
		}
		return call{name: string(x.Func), args: []Fragment{arg}, distinct: x.Distinct}, nil
	case types.Call:
		name, err := d.Function(x.Func)
		if err != nil {
			return nil, err
		}
		args, err := compileList(x.Args, d)
		if err != nil {
			return nil, err
		}
		return call{name: name, args: args}, nil
	case types.Tuple:
		items, err := compileList(x.Items, d)
		if err != nil {
			return nil, err
		}
		return list(items), nil
	case types.Ordering:
		inner, err := compileExpr(x.Operand, d)
		if err != nil {
			return nil, err
		}
		return ordering{operand: inner, direction: x.Direction}, nil
	case types.Aliased:
		inner, err := compileExpr(x.Operand, d)
		if err != nil {
			return nil, err
		}
		return aliased{operand: inner, alias: x.Alias}, nil
	}
	return nil, fmt.Errorf("%s: cannot render expression of type %T", d.Name(), e)
}

func compileList(items []types.Expr, d Dialect) ([]Fragment, error) {
	out := make([]Fragment, len(items))
	for i, item := range items {
		f, err := compileExpr(item, d)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
