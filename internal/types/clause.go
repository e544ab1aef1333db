package types

// Clause value objects carry the content of one slot. They have no behavior;
// dialects decide how each is rendered.

// SelectClause holds the projection. Its type decides the result row.
type SelectClause struct {
	Expr Expr
}

// DistinctClause marks a SELECT DISTINCT.
type DistinctClause struct{}

// WhereClause holds the single (possibly AND-combined) filter predicate.
type WhereClause struct {
	Predicate Expr
}

// OrderClause holds the ordering expression.
type OrderClause struct {
	Expr Expr
}

// LimitClause holds the row limit as a BIGINT literal.
type LimitClause struct {
	Count Literal
}

// OffsetClause holds the row offset as a BIGINT literal.
type OffsetClause struct {
	Count Literal
}

// GroupByClause holds the grouping expression.
type GroupByClause struct {
	Expr Expr
}

// The With clause is carried by WithSource, which replaces From wholesale.
