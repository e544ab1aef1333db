// Package stmtql builds SELECT statements as immutable values and renders
// them for a target SQL dialect.
//
// A Statement holds one slot per clause (select list, source, DISTINCT,
// WHERE, GROUP BY, ORDER BY, LIMIT, OFFSET). Every transformation validates
// its input against the statement's source and returns a new Statement; the
// receiver is never changed, so one base statement can seed many chains.
//
// # Basic Usage
//
//	users := stmtql.NewTable("users",
//		stmtql.Col("id", stmtql.Integer),
//		stmtql.Col("name", stmtql.Text),
//		stmtql.Col("active", stmtql.Boolean),
//	)
//
//	query := stmtql.From(users).
//		Select(users.C("name")).
//		Filter(stmtql.Eq(users.C("active"), true)).
//		Order(users.C("name")).
//		Limit(10).
//		Offset(5)
//
//	result, err := query.Render(postgres.New())
//	// result.SQL:    SELECT name FROM users WHERE active = $1 ORDER BY name LIMIT $2 OFFSET $3
//	// result.Params: [true 10 5]
//
// # Validation
//
// Expressions are checked when they are attached: they must have a
// determinate type, reference only columns visible from the source, and, for
// Filter, be boolean and free of aggregates. The first failure is kept on the
// statement (see Statement.Err) and returned by Render; later transformations
// are ignored. Sub-query sources must alias every output column uniquely.
// Nesting depth depends on the renderer, so Render and IntoBoxed check it
// against the renderer's MaxSubqueryDepth option. Every validation failure
// matches ErrInvalid.
//
// # Dialects
//
// Rendering is pure and dialect-specific: postgres, sqlite, mysql and mssql
// packages each provide a Renderer. Constructs a dialect cannot express fail
// with an UnsupportedFeatureError naming the dialect and the construct.
//
// # Boxing
//
// IntoBoxed erases a Statement into a BoxedStatement bound to one dialect.
// Its slots hold compiled fragments, so clauses can be attached from
// different branches of caller logic; it renders exactly like its origin.
package stmtql

import (
	"github.com/zoobzio/stmtql/internal/capability"
	"github.com/zoobzio/stmtql/internal/render"
	"github.com/zoobzio/stmtql/internal/types"
)

// Expr is any expression that can be attached to a clause.
type Expr = types.Expr

// Column references a column visible through a source.
type Column = types.Column

// QueryResult contains the rendered SQL and its ordered bind parameters.
type QueryResult = types.QueryResult

// Renderer is the dialect a statement is rendered for.
type Renderer = render.Dialect

// SQLType is the value type of an expression.
type SQLType = types.SQLType

// Re-export SQL type constants for public API.
const (
	Integer   = types.Integer
	BigInt    = types.BigInt
	Numeric   = types.Numeric
	Double    = types.Double
	Text      = types.Text
	Boolean   = types.Boolean
	Timestamp = types.Timestamp
	Date      = types.Date
	UUID      = types.UUID
	JSON      = types.JSON
	Bytes     = types.Bytes
)

// MaxSubqueryDepth is the default bound on sub-query nesting. Render and
// IntoBoxed enforce the renderer's WithMaxSubqueryDepth option instead when
// one is given.
const MaxSubqueryDepth = types.MaxSubqueryDepth

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants for public API.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// Operator represents SQL operators.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	EQ         = types.EQ
	NE         = types.NE
	GT         = types.GT
	GE         = types.GE
	LT         = types.LT
	LE         = types.LE
	LIKE       = types.LIKE
	NOTLIKE    = types.NotLike
	ILIKE      = types.ILIKE
	RegexMatch = types.RegexMatch
)

// ValidityError reports an expression rejected when it was attached.
type ValidityError = capability.ValidityError

// Predicate names the capability rule a ValidityError failed.
type Predicate = capability.Predicate

// Re-export capability predicate names for public API.
const (
	PredicateTyped          = capability.Typed
	PredicateSelectableFrom = capability.SelectableFrom
	PredicateNonAggregate   = capability.NonAggregate
	PredicateBooleanTyped   = capability.BooleanTyped
	PredicateWellFormed     = capability.WellFormed
	PredicateValidSource    = capability.ValidSource
)

// ErrInvalid matches every ValidityError through errors.Is.
var ErrInvalid = capability.ErrInvalid

// UnsupportedFeatureError reports a construct a dialect cannot render.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// ConstructKind classifies the construct named by an UnsupportedFeatureError.
type ConstructKind = render.ConstructKind

const (
	KindOperator = render.KindOperator
	KindClause   = render.KindClause
)

// Capabilities describes the optional SQL a dialect supports.
type Capabilities = render.Capabilities

// PaginationStyle indicates how a dialect spells LIMIT and OFFSET.
type PaginationStyle = render.PaginationStyle

const (
	PaginationLimitOffset = render.PaginationLimitOffset
	PaginationOffsetFetch = render.PaginationOffsetFetch
)

// RenderOption tunes rendering for a dialect.
type RenderOption = render.Option

// Re-export render options for public API.
var (
	AlwaysQuote          = render.WithAlwaysQuote
	WithMaxSubqueryDepth = render.WithMaxSubqueryDepth
)
