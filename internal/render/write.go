package render

import (
	"fmt"

	"github.com/zoobzio/stmtql/internal/types"
)

// ToSQL writes the full SELECT statement. Slots are emitted in a fixed
// order: select list, FROM, WHERE, GROUP BY, ORDER BY, then pagination.
func (c *Compiled) ToSQL(b *Builder) error {
	if c.Select == nil || c.From == nil {
		return fmt.Errorf("statement requires a select list and a source")
	}

	outer := b.qualify
	b.qualify = c.Qualify
	defer func() { b.qualify = outer }()

	b.Push("SELECT ")
	if c.Distinct != nil {
		if err := c.Distinct.ToSQL(b); err != nil {
			return err
		}
	}
	if err := c.Select.ToSQL(b); err != nil {
		return err
	}

	b.Push(" FROM ")
	if err := c.From.ToSQL(b); err != nil {
		return err
	}

	if c.Where != nil {
		b.Push(" WHERE ")
		if err := c.Where.ToSQL(b); err != nil {
			return err
		}
	}

	if c.GroupBy != nil {
		b.Push(" GROUP BY ")
		if err := c.GroupBy.ToSQL(b); err != nil {
			return err
		}
	}

	if c.Order != nil {
		b.Push(" ORDER BY ")
		if err := c.Order.ToSQL(b); err != nil {
			return err
		}
	}

	if c.Limit == nil && c.Offset == nil {
		return nil
	}
	page, err := b.dialect.Paginate(c.Limit, c.Offset, c.Order != nil)
	if err != nil {
		return err
	}
	return page.ToSQL(b)
}

// Write renders c for d into SQL text and ordered parameters.
func Write(c *Compiled, d Dialect) (*types.QueryResult, error) {
	b := NewBuilder(d)
	if err := c.ToSQL(b); err != nil {
		return nil, err
	}
	return b.Result(), nil
}

// Statement compiles and writes q in one step.
func Statement(q *types.Query, d Dialect) (*types.QueryResult, error) {
	c, err := Compile(q, d)
	if err != nil {
		return nil, err
	}
	return Write(c, d)
}

// limitOffset is the LIMIT n OFFSET m pagination most dialects share.
// noLimit is emitted in place of a missing LIMIT when the dialect cannot
// write OFFSET alone; an empty noLimit leaves LIMIT out.
func limitOffset(limit, offset Fragment, noLimit string) Fragment {
	var parts sequence
	switch {
	case limit != nil:
		parts = append(parts, raw(" LIMIT "), limit)
	case noLimit != "":
		parts = append(parts, raw(" LIMIT "+noLimit))
	}
	if offset != nil {
		parts = append(parts, raw(" OFFSET "), offset)
	}
	return parts
}

// offsetFetch is the OFFSET m ROWS FETCH NEXT n ROWS ONLY pagination. A
// missing offset is written as 0 because FETCH requires OFFSET.
func offsetFetch(limit, offset Fragment) Fragment {
	if offset == nil {
		offset = raw("0")
	}
	parts := sequence{raw(" OFFSET "), offset, raw(" ROWS")}
	if limit != nil {
		parts = append(parts, raw(" FETCH NEXT "), limit, raw(" ROWS ONLY"))
	}
	return parts
}
