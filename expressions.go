package stmtql

import "github.com/zoobzio/stmtql/internal/types"

// value turns v into an expression, binding plain Go values as literals.
func value(v any) types.Expr {
	if e, ok := v.(types.Expr); ok {
		return e
	}
	return types.LiteralOf(v)
}

func binary(op types.Operator, left, right any) types.Binary {
	return types.Binary{Left: value(left), Right: value(right), Op: op}
}

// Lit binds v as a parameter.
func Lit(v any) types.Literal {
	return types.LiteralOf(v)
}

// Null returns an untyped NULL literal.
func Null() types.Literal {
	return types.LiteralOf(nil)
}

// Eq creates an equality comparison. Either side may be an Expr or a Go value.
func Eq(left, right any) types.Binary { return binary(types.EQ, left, right) }

// Ne creates an inequality comparison.
func Ne(left, right any) types.Binary { return binary(types.NE, left, right) }

// Gt creates a greater-than comparison.
func Gt(left, right any) types.Binary { return binary(types.GT, left, right) }

// Ge creates a greater-than-or-equal comparison.
func Ge(left, right any) types.Binary { return binary(types.GE, left, right) }

// Lt creates a less-than comparison.
func Lt(left, right any) types.Binary { return binary(types.LT, left, right) }

// Le creates a less-than-or-equal comparison.
func Le(left, right any) types.Binary { return binary(types.LE, left, right) }

// Compare creates a comparison with an explicit operator.
func Compare(left any, op Operator, right any) types.Binary { return binary(op, left, right) }

// Like creates a LIKE pattern match.
func Like(e, pattern any) types.Binary { return binary(types.LIKE, e, pattern) }

// NotLike creates a NOT LIKE pattern match.
func NotLike(e, pattern any) types.Binary { return binary(types.NotLike, e, pattern) }

// ILike creates a case-insensitive pattern match (PostgreSQL).
func ILike(e, pattern any) types.Binary { return binary(types.ILIKE, e, pattern) }

// Matches creates a regular expression match.
func Matches(e, pattern any) types.Binary { return binary(types.RegexMatch, e, pattern) }

// And combines predicates left to right.
func And(left, right types.Expr, more ...types.Expr) types.Binary {
	out := types.Binary{Left: left, Right: right, Op: types.AND}
	for _, e := range more {
		out = types.Binary{Left: out, Right: e, Op: types.AND}
	}
	return out
}

// Or combines predicates left to right.
func Or(left, right types.Expr, more ...types.Expr) types.Binary {
	out := types.Binary{Left: left, Right: right, Op: types.OR}
	for _, e := range more {
		out = types.Binary{Left: out, Right: e, Op: types.OR}
	}
	return out
}

// Not negates a predicate.
func Not(e types.Expr) types.Unary {
	return types.Unary{Operand: e, Op: types.NOT}
}

// IsNull creates an IS NULL test.
func IsNull(e types.Expr) types.Unary {
	return types.Unary{Operand: e, Op: types.IsNull}
}

// IsNotNull creates an IS NOT NULL test.
func IsNotNull(e types.Expr) types.Unary {
	return types.Unary{Operand: e, Op: types.IsNotNull}
}

// In creates a membership test against literal values.
func In(e types.Expr, values ...any) types.In {
	return types.In{Operand: e, Values: literals(values)}
}

// NotIn creates a negated membership test.
func NotIn(e types.Expr, values ...any) types.In {
	return types.In{Operand: e, Values: literals(values), Negate: true}
}

func literals(values []any) []types.Literal {
	out := make([]types.Literal, len(values))
	for i, v := range values {
		if l, ok := v.(types.Literal); ok {
			out[i] = l
			continue
		}
		out[i] = types.LiteralOf(v)
	}
	return out
}

// Add creates an addition.
func Add(left, right any) types.Binary { return binary(types.Add, left, right) }

// Sub creates a subtraction.
func Sub(left, right any) types.Binary { return binary(types.Sub, left, right) }

// Mul creates a multiplication.
func Mul(left, right any) types.Binary { return binary(types.Mul, left, right) }

// Div creates a division.
func Div(left, right any) types.Binary { return binary(types.Div, left, right) }

// Concat creates a string concatenation.
func Concat(left, right any) types.Binary { return binary(types.Concat, left, right) }

// Count creates a COUNT(*) aggregate.
func Count() types.Aggregate {
	return types.Aggregate{Func: types.AggCount}
}

// CountOf creates a COUNT aggregate over e.
func CountOf(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggCount, Arg: e}
}

// CountDistinct creates a COUNT(DISTINCT) aggregate.
func CountDistinct(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggCount, Arg: e, Distinct: true}
}

// Sum creates a SUM aggregate.
func Sum(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggSum, Arg: e}
}

// Avg creates an AVG aggregate.
func Avg(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggAvg, Arg: e}
}

// Min creates a MIN aggregate.
func Min(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggMin, Arg: e}
}

// Max creates a MAX aggregate.
func Max(e types.Expr) types.Aggregate {
	return types.Aggregate{Func: types.AggMax, Arg: e}
}

// Lower creates a LOWER call.
func Lower(e types.Expr) types.Call {
	return types.Call{Func: types.FuncLower, Args: []types.Expr{e}}
}

// Upper creates an UPPER call.
func Upper(e types.Expr) types.Call {
	return types.Call{Func: types.FuncUpper, Args: []types.Expr{e}}
}

// Length creates a string length call.
func Length(e types.Expr) types.Call {
	return types.Call{Func: types.FuncLength, Args: []types.Expr{e}}
}

// Abs creates an ABS call.
func Abs(e types.Expr) types.Call {
	return types.Call{Func: types.FuncAbs, Args: []types.Expr{e}}
}

// Round creates a ROUND call with an optional precision.
func Round(e types.Expr, precision ...int) types.Call {
	args := []types.Expr{e}
	for _, p := range precision {
		args = append(args, types.LiteralOf(p))
	}
	return types.Call{Func: types.FuncRound, Args: args}
}

// Coalesce creates a COALESCE call.
func Coalesce(values ...any) types.Call {
	args := make([]types.Expr, len(values))
	for i, v := range values {
		args[i] = value(v)
	}
	return types.Call{Func: types.FuncCoalesce, Args: args}
}

// Asc orders e ascending.
func Asc(e types.Expr) types.Ordering {
	return types.Ordering{Operand: e, Direction: types.ASC}
}

// Desc orders e descending.
func Desc(e types.Expr) types.Ordering {
	return types.Ordering{Operand: e, Direction: types.DESC}
}

// As names e in a select list.
func As(e types.Expr, alias string) types.Aliased {
	return types.Aliased{Operand: e, Alias: alias}
}

// Col describes a column for NewTable.
func Col(name string, t SQLType) Column {
	return Column{Name: name, Type: t}
}
