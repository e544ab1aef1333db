package render

import (
	"fmt"
	"strings"

	"github.com/zoobzio/stmtql/internal/types"
)

// Builder accumulates SQL text and bind parameters for one render.
// A Builder is never shared between renders.
type Builder struct {
	dialect Dialect
	opts    Options
	sql     strings.Builder
	params  []any
	depth   int
	qualify bool
}

// NewBuilder creates a builder for d.
func NewBuilder(d Dialect) *Builder {
	return &Builder{dialect: d, opts: d.Options()}
}

// Dialect returns the dialect being rendered.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Push appends raw SQL text.
func (b *Builder) Push(s string) {
	b.sql.WriteString(s)
}

// PushIdentifier appends a quoted-if-needed identifier.
func (b *Builder) PushIdentifier(name string) {
	if b.opts.AlwaysQuote || NeedsQuoting(name) {
		b.sql.WriteString(b.dialect.QuoteIdentifier(name))
		return
	}
	b.sql.WriteString(name)
}

// PushBind appends a placeholder and records v as its parameter.
func (b *Builder) PushBind(v any) {
	b.params = append(b.params, v)
	b.sql.WriteString(b.dialect.Placeholder(len(b.params)))
}

// Result returns the accumulated SQL and parameters.
func (b *Builder) Result() *types.QueryResult {
	return &types.QueryResult{
		SQL:    b.sql.String(),
		Params: b.params,
	}
}

// enterSubquery tracks nesting and fails past the configured depth.
func (b *Builder) enterSubquery() error {
	if b.depth >= b.opts.MaxSubqueryDepth {
		return fmt.Errorf("maximum subquery depth (%d) exceeded", b.opts.MaxSubqueryDepth)
	}
	b.depth++
	return nil
}

func (b *Builder) leaveSubquery() {
	b.depth--
}
