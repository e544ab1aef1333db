package render

// PaginationStyle indicates how a dialect spells LIMIT and OFFSET.
type PaginationStyle int

const (
	PaginationLimitOffset PaginationStyle = iota // LIMIT n OFFSET m
	PaginationOffsetFetch                        // OFFSET m ROWS FETCH NEXT n ROWS ONLY
)

// Capabilities describes the SQL features supported by a dialect.
type Capabilities struct {
	CaseInsensitiveLike  bool            // ILIKE operator
	RegexOperators       bool            // ~ or REGEXP
	ConcatOperator       bool            // || or +
	OffsetWithoutLimit   bool            // OFFSET may appear without LIMIT
	NoLimit              string          // LIMIT value written when OFFSET needs one
	Pagination           PaginationStyle // LIMIT/OFFSET spelling
	PaginationNeedsOrder bool            // LIMIT/OFFSET only after ORDER BY
}
