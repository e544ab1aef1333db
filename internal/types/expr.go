package types

import (
	"fmt"
	"strings"
	"time"
)

// Expr is any expression that can appear in a clause.
// This is exported from the internal package so dialects can use it,
// but external users cannot import this package.
type Expr interface {
	IsExpr()
	String() string
}

// Column references a column visible through a source.
type Column struct {
	Table string // qualifier: table name, table alias or sub-query alias
	Name  string
	Type  SQLType
}

// Literal is a value bound as a parameter, never inlined into SQL text.
type Literal struct {
	Value any
	Type  SQLType
}

// Binary applies a binary operator to two operands.
type Binary struct {
	Left  Expr
	Right Expr
	Op    Operator
}

// Unary applies NOT, IS NULL or IS NOT NULL to one operand.
type Unary struct {
	Operand Expr
	Op      Operator
}

// In tests membership in a list of literal values.
type In struct {
	Operand Expr
	Values  []Literal
	Negate  bool
}

// Aggregate is a cross-row aggregate call. A nil Arg means COUNT(*).
type Aggregate struct {
	Arg      Expr
	Func     AggregateFunc
	Distinct bool
}

// Call is a scalar function call.
type Call struct {
	Func Func
	Args []Expr
}

// Tuple is an ordered list of expressions, as in a select list.
type Tuple struct {
	Items []Expr
}

// Ordering wraps an expression with a sort direction.
type Ordering struct {
	Operand   Expr
	Direction Direction
}

// Aliased names an expression in a select list.
type Aliased struct {
	Operand Expr
	Alias   string
}

func (Column) IsExpr()    {}
func (Literal) IsExpr()   {}
func (Binary) IsExpr()    {}
func (Unary) IsExpr()     {}
func (In) IsExpr()        {}
func (Aggregate) IsExpr() {}
func (Call) IsExpr()      {}
func (Tuple) IsExpr()     {}
func (Ordering) IsExpr()  {}
func (Aliased) IsExpr()   {}

func (c Column) String() string {
	if c.Table != "" {
		return c.Table + "." + c.Name
	}
	return c.Name
}

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func (u Unary) String() string {
	if u.Op == NOT {
		return fmt.Sprintf("NOT %s", u.Operand)
	}
	return fmt.Sprintf("%s %s", u.Operand, u.Op)
}

func (i In) String() string {
	vals := make([]string, len(i.Values))
	for n, v := range i.Values {
		vals[n] = v.String()
	}
	op := "IN"
	if i.Negate {
		op = "NOT IN"
	}
	return fmt.Sprintf("%s %s (%s)", i.Operand, op, strings.Join(vals, ", "))
}

func (a Aggregate) String() string {
	if a.Arg == nil {
		return string(a.Func) + "(*)"
	}
	if a.Distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", a.Func, a.Arg)
	}
	return fmt.Sprintf("%s(%s)", a.Func, a.Arg)
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Func, strings.Join(args, ", "))
}

func (t Tuple) String() string {
	items := make([]string, len(t.Items))
	for i, e := range t.Items {
		items[i] = e.String()
	}
	return strings.Join(items, ", ")
}

func (o Ordering) String() string {
	return fmt.Sprintf("%s %s", o.Operand, o.Direction)
}

func (a Aliased) String() string {
	return fmt.Sprintf("%s AS %s", a.Operand, a.Alias)
}

// Walk calls fn for e and every expression nested in it, depth first.
// Walking stops early when fn returns false.
func Walk(e Expr, fn func(Expr) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	switch x := e.(type) {
	case Binary:
		return Walk(x.Left, fn) && Walk(x.Right, fn)
	case Unary:
		return Walk(x.Operand, fn)
	case In:
		if !Walk(x.Operand, fn) {
			return false
		}
		for _, v := range x.Values {
			if !Walk(v, fn) {
				return false
			}
		}
	case Aggregate:
		return Walk(x.Arg, fn)
	case Call:
		for _, a := range x.Args {
			if !Walk(a, fn) {
				return false
			}
		}
	case Tuple:
		for _, item := range x.Items {
			if !Walk(item, fn) {
				return false
			}
		}
	case Ordering:
		return Walk(x.Operand, fn)
	case Aliased:
		return Walk(x.Operand, fn)
	}
	return true
}

// LiteralOf wraps a Go value as a bound literal, inferring its SQL type.
func LiteralOf(v any) Literal {
	switch v.(type) {
	case nil:
		return Literal{Value: nil, Type: Null}
	case bool:
		return Literal{Value: v, Type: Boolean}
	case int, int8, int16, int32, uint8, uint16:
		return Literal{Value: v, Type: Integer}
	case int64, uint32, uint64, uint:
		return Literal{Value: v, Type: BigInt}
	case float32, float64:
		return Literal{Value: v, Type: Double}
	case string:
		return Literal{Value: v, Type: Text}
	case []byte:
		return Literal{Value: v, Type: Bytes}
	case time.Time:
		return Literal{Value: v, Type: Timestamp}
	}
	return Literal{Value: v, Type: Unknown}
}
