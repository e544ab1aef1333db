package capability

import (
	"fmt"

	"github.com/zoobzio/stmtql/internal/types"
)

// Infer computes the value type of e, failing when it has none.
func Infer(e types.Expr) (types.SQLType, error) {
	switch x := e.(type) {
	case nil:
		return types.Unknown, fmt.Errorf("missing expression")
	case types.Column:
		if x.Type == types.Unknown {
			return types.Unknown, fmt.Errorf("column %s has no determinate type", x)
		}
		return x.Type, nil
	case types.Literal:
		if x.Type == types.Unknown {
			return types.Unknown, fmt.Errorf("unsupported literal %T", x.Value)
		}
		return x.Type, nil
	case types.Binary:
		return inferBinary(x)
	case types.Unary:
		t, err := Infer(x.Operand)
		if err != nil {
			return types.Unknown, err
		}
		if x.Op == types.NOT && t != types.Boolean && t != types.Null {
			return types.Unknown, fmt.Errorf("NOT requires a boolean operand, got %s", t)
		}
		return types.Boolean, nil
	case types.In:
		return inferIn(x)
	case types.Aggregate:
		return inferAggregate(x)
	case types.Call:
		return inferCall(x)
	case types.Tuple:
		if len(x.Items) == 0 {
			return types.Unknown, fmt.Errorf("empty expression list")
		}
		for _, item := range x.Items {
			if _, err := Infer(item); err != nil {
				return types.Unknown, err
			}
		}
		if len(x.Items) == 1 {
			return Infer(x.Items[0])
		}
		return types.Record, nil
	case types.Ordering:
		return Infer(x.Operand)
	case types.Aliased:
		if x.Alias == "" {
			return types.Unknown, fmt.Errorf("empty alias")
		}
		return Infer(x.Operand)
	}
	return types.Unknown, fmt.Errorf("unknown expression type %T", e)
}

func inferBinary(b types.Binary) (types.SQLType, error) {
	lt, err := Infer(b.Left)
	if err != nil {
		return types.Unknown, err
	}
	rt, err := Infer(b.Right)
	if err != nil {
		return types.Unknown, err
	}

	switch {
	case b.Op.IsLogical():
		if !isBool(lt) || !isBool(rt) {
			return types.Unknown, fmt.Errorf("%s requires boolean operands, got %s and %s", b.Op, lt, rt)
		}
		return types.Boolean, nil
	case b.Op.IsComparison():
		if !lt.Comparable(rt) {
			return types.Unknown, fmt.Errorf("cannot compare %s with %s", lt, rt)
		}
		return types.Boolean, nil
	case b.Op.IsPattern():
		if !isText(lt) || !isText(rt) {
			return types.Unknown, fmt.Errorf("%s requires text operands, got %s and %s", b.Op, lt, rt)
		}
		return types.Boolean, nil
	case b.Op.IsArithmetic():
		if !isNumber(lt) || !isNumber(rt) {
			return types.Unknown, fmt.Errorf("%s requires numeric operands, got %s and %s", b.Op, lt, rt)
		}
		return types.Widen(lt, rt), nil
	case b.Op == types.Concat:
		if !isText(lt) || !isText(rt) {
			return types.Unknown, fmt.Errorf("|| requires text operands, got %s and %s", lt, rt)
		}
		return types.Text, nil
	}
	return types.Unknown, fmt.Errorf("unknown operator %q", b.Op)
}

func inferIn(in types.In) (types.SQLType, error) {
	t, err := Infer(in.Operand)
	if err != nil {
		return types.Unknown, err
	}
	if len(in.Values) == 0 {
		return types.Unknown, fmt.Errorf("IN requires at least one value")
	}
	for _, v := range in.Values {
		vt, err := Infer(v)
		if err != nil {
			return types.Unknown, err
		}
		if !t.Comparable(vt) {
			return types.Unknown, fmt.Errorf("cannot compare %s with %s", t, vt)
		}
	}
	return types.Boolean, nil
}

func inferAggregate(a types.Aggregate) (types.SQLType, error) {
	if a.Arg == nil {
		if a.Func != types.AggCount {
			return types.Unknown, fmt.Errorf("%s requires an argument", a.Func)
		}
		return types.BigInt, nil
	}
	if containsAggregate(a.Arg) {
		return types.Unknown, fmt.Errorf("aggregate calls cannot be nested")
	}
	t, err := Infer(a.Arg)
	if err != nil {
		return types.Unknown, err
	}
	switch a.Func {
	case types.AggCount:
		return types.BigInt, nil
	case types.AggSum:
		switch t {
		case types.Integer, types.BigInt:
			return types.BigInt, nil
		case types.Numeric, types.Double:
			return t, nil
		}
		return types.Unknown, fmt.Errorf("SUM requires a numeric argument, got %s", t)
	case types.AggAvg:
		switch t {
		case types.Integer, types.BigInt, types.Numeric:
			return types.Numeric, nil
		case types.Double:
			return types.Double, nil
		}
		return types.Unknown, fmt.Errorf("AVG requires a numeric argument, got %s", t)
	case types.AggMin, types.AggMax:
		if t == types.Record || t == types.Boolean {
			return types.Unknown, fmt.Errorf("%s cannot order values of type %s", a.Func, t)
		}
		return t, nil
	}
	return types.Unknown, fmt.Errorf("unknown aggregate %q", a.Func)
}

func inferCall(c types.Call) (types.SQLType, error) {
	argTypes := make([]types.SQLType, len(c.Args))
	for i, arg := range c.Args {
		t, err := Infer(arg)
		if err != nil {
			return types.Unknown, err
		}
		argTypes[i] = t
	}

	arity := func(lo, hi int) error {
		if len(argTypes) < lo || len(argTypes) > hi {
			return fmt.Errorf("%s takes %d to %d arguments, got %d", c.Func, lo, hi, len(argTypes))
		}
		return nil
	}

	switch c.Func {
	case types.FuncLower, types.FuncUpper, types.FuncLength:
		if err := arity(1, 1); err != nil {
			return types.Unknown, err
		}
		if !isText(argTypes[0]) {
			return types.Unknown, fmt.Errorf("%s requires a text argument, got %s", c.Func, argTypes[0])
		}
		if c.Func == types.FuncLength {
			return types.Integer, nil
		}
		return types.Text, nil
	case types.FuncAbs:
		if err := arity(1, 1); err != nil {
			return types.Unknown, err
		}
		if !argTypes[0].IsNumeric() {
			return types.Unknown, fmt.Errorf("ABS requires a numeric argument, got %s", argTypes[0])
		}
		return argTypes[0], nil
	case types.FuncRound:
		if err := arity(1, 2); err != nil {
			return types.Unknown, err
		}
		if !argTypes[0].IsNumeric() {
			return types.Unknown, fmt.Errorf("ROUND requires a numeric argument, got %s", argTypes[0])
		}
		if len(argTypes) == 2 && argTypes[1] != types.Integer && argTypes[1] != types.BigInt {
			return types.Unknown, fmt.Errorf("ROUND precision must be an integer, got %s", argTypes[1])
		}
		return types.Numeric, nil
	case types.FuncCoalesce:
		if len(argTypes) == 0 {
			return types.Unknown, fmt.Errorf("COALESCE requires at least one argument")
		}
		result := types.Null
		for _, t := range argTypes {
			if !result.Comparable(t) {
				return types.Unknown, fmt.Errorf("COALESCE arguments %s and %s are incompatible", result, t)
			}
			if result == types.Null {
				result = t
			}
		}
		return result, nil
	}
	return types.Unknown, fmt.Errorf("unknown function %q", c.Func)
}

func containsAggregate(e types.Expr) bool {
	found := false
	types.Walk(e, func(x types.Expr) bool {
		if _, ok := x.(types.Aggregate); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

func isBool(t types.SQLType) bool   { return t == types.Boolean || t == types.Null }
func isText(t types.SQLType) bool   { return t == types.Text || t == types.Null }
func isNumber(t types.SQLType) bool { return t.IsNumeric() || t == types.Null }
