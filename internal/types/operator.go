package types

// Operator represents binary and unary SQL operators.
type Operator string

const (
	// Comparison operators.
	EQ Operator = "="
	NE Operator = "<>"
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Pattern operators.
	LIKE       Operator = "LIKE"
	NotLike    Operator = "NOT LIKE"
	ILIKE      Operator = "ILIKE"
	RegexMatch Operator = "~"

	// Logical operators.
	AND Operator = "AND"
	OR  Operator = "OR"
	NOT Operator = "NOT"

	// Null tests.
	IsNull    Operator = "IS NULL"
	IsNotNull Operator = "IS NOT NULL"

	// Arithmetic and string operators.
	Add    Operator = "+"
	Sub    Operator = "-"
	Mul    Operator = "*"
	Div    Operator = "/"
	Concat Operator = "||"
)

// IsComparison reports whether op compares two values.
func (op Operator) IsComparison() bool {
	switch op {
	case EQ, NE, GT, GE, LT, LE:
		return true
	}
	return false
}

// IsPattern reports whether op matches text against a pattern.
func (op Operator) IsPattern() bool {
	switch op {
	case LIKE, NotLike, ILIKE, RegexMatch:
		return true
	}
	return false
}

// IsLogical reports whether op combines boolean operands.
func (op Operator) IsLogical() bool {
	return op == AND || op == OR
}

// IsArithmetic reports whether op is a numeric operator.
func (op Operator) IsArithmetic() bool {
	switch op {
	case Add, Sub, Mul, Div:
		return true
	}
	return false
}

// Precedence returns the binding strength of op; higher binds tighter.
func (op Operator) Precedence() int {
	switch op {
	case OR:
		return 1
	case AND:
		return 2
	case NOT:
		return 3
	case EQ, NE, GT, GE, LT, LE, LIKE, NotLike, ILIKE, RegexMatch, IsNull, IsNotNull:
		return 4
	case Concat:
		return 5
	case Add, Sub:
		return 6
	case Mul, Div:
		return 7
	}
	return 10
}

// Associative reports whether a chain of op can drop parentheses on the right.
func (op Operator) Associative() bool {
	return op == AND || op == OR
}

// AggregateFunc represents SQL aggregate functions.
type AggregateFunc string

const (
	AggCount AggregateFunc = "COUNT"
	AggSum   AggregateFunc = "SUM"
	AggAvg   AggregateFunc = "AVG"
	AggMin   AggregateFunc = "MIN"
	AggMax   AggregateFunc = "MAX"
)

// Func represents scalar SQL functions.
type Func string

const (
	FuncLower    Func = "LOWER"
	FuncUpper    Func = "UPPER"
	FuncLength   Func = "LENGTH"
	FuncCoalesce Func = "COALESCE"
	FuncAbs      Func = "ABS"
	FuncRound    Func = "ROUND"
)

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)
