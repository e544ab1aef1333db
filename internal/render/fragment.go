package render

import "github.com/zoobzio/stmtql/internal/types"

// Fragment is one compiled piece of a statement, bound to a dialect.
// Fragments are immutable once built and may be rendered concurrently.
type Fragment interface {
	ToSQL(b *Builder) error
}

// exprFragment is a fragment that renders an expression.
type exprFragment interface {
	Fragment
	precedence() int
}

const primary = 10

// Bind returns a fragment that emits a placeholder for v.
func Bind(v any) Fragment {
	return bind{value: v}
}

type raw string

func (r raw) ToSQL(b *Builder) error {
	b.Push(string(r))
	return nil
}

type sequence []Fragment

func (s sequence) ToSQL(b *Builder) error {
	for _, part := range s {
		if part == nil {
			continue
		}
		if err := part.ToSQL(b); err != nil {
			return err
		}
	}
	return nil
}

type bind struct {
	value any
}

func (f bind) ToSQL(b *Builder) error {
	b.PushBind(f.value)
	return nil
}

func (bind) precedence() int { return primary }

type column struct {
	table string
	name  string
}

func (f column) ToSQL(b *Builder) error {
	if b.qualify && f.table != "" {
		b.PushIdentifier(f.table)
		b.Push(".")
	}
	b.PushIdentifier(f.name)
	return nil
}

func (column) precedence() int { return primary }

type binary struct {
	left  exprFragment
	right exprFragment
	token string
	op    types.Operator
}

func (f binary) ToSQL(b *Builder) error {
	prec := f.op.Precedence()
	if err := operand(b, f.left, prec < f.left.precedence() || (prec == f.left.precedence() && !f.op.IsComparison() && !f.op.IsPattern())); err != nil {
		return err
	}
	b.Push(" " + f.token + " ")
	return operand(b, f.right, prec < f.right.precedence() || (prec == f.right.precedence() && f.op.Associative()))
}

func (f binary) precedence() int { return f.op.Precedence() }

// operand writes e, wrapping it in parentheses unless bare is true.
func operand(b *Builder, e exprFragment, bare bool) error {
	if bare {
		return e.ToSQL(b)
	}
	b.Push("(")
	if err := e.ToSQL(b); err != nil {
		return err
	}
	b.Push(")")
	return nil
}

type not struct {
	operand exprFragment
}

func (f not) ToSQL(b *Builder) error {
	b.Push("NOT ")
	return operand(b, f.operand, f.operand.precedence() > types.NOT.Precedence())
}

func (not) precedence() int { return types.NOT.Precedence() }

type nullTest struct {
	operand exprFragment
	op      types.Operator
}

func (f nullTest) ToSQL(b *Builder) error {
	if err := operand(b, f.operand, f.operand.precedence() > f.op.Precedence()); err != nil {
		return err
	}
	b.Push(" " + string(f.op))
	return nil
}

func (f nullTest) precedence() int { return f.op.Precedence() }

type in struct {
	operand exprFragment
	values  []Fragment
	negate  bool
}

func (f in) ToSQL(b *Builder) error {
	if err := operand(b, f.operand, f.operand.precedence() > types.EQ.Precedence()); err != nil {
		return err
	}
	if f.negate {
		b.Push(" NOT IN (")
	} else {
		b.Push(" IN (")
	}
	if err := list(f.values).ToSQL(b); err != nil {
		return err
	}
	b.Push(")")
	return nil
}

func (in) precedence() int { return types.EQ.Precedence() }

// call renders a function or aggregate call. A star call renders NAME(*).
type call struct {
	name     string
	args     []Fragment
	distinct bool
	star     bool
}

func (f call) ToSQL(b *Builder) error {
	b.Push(f.name + "(")
	switch {
	case f.star:
		b.Push("*")
	case f.distinct:
		b.Push("DISTINCT ")
		fallthrough
	default:
		if err := list(f.args).ToSQL(b); err != nil {
			return err
		}
	}
	b.Push(")")
	return nil
}

func (call) precedence() int { return primary }

// list renders its items separated by commas.
type list []Fragment

func (l list) ToSQL(b *Builder) error {
	for i, item := range l {
		if i > 0 {
			b.Push(", ")
		}
		if err := item.ToSQL(b); err != nil {
			return err
		}
	}
	return nil
}

func (list) precedence() int { return primary }

type ordering struct {
	operand   exprFragment
	direction types.Direction
}

func (f ordering) ToSQL(b *Builder) error {
	if err := f.operand.ToSQL(b); err != nil {
		return err
	}
	b.Push(" " + string(f.direction))
	return nil
}

func (ordering) precedence() int { return primary }

type aliased struct {
	operand exprFragment
	alias   string
}

func (f aliased) ToSQL(b *Builder) error {
	if err := f.operand.ToSQL(b); err != nil {
		return err
	}
	b.Push(" AS ")
	b.PushIdentifier(f.alias)
	return nil
}

func (aliased) precedence() int { return primary }

type table struct {
	name  string
	alias string
}

func (f table) ToSQL(b *Builder) error {
	b.PushIdentifier(f.name)
	if f.alias != "" {
		b.Push(" AS ")
		b.PushIdentifier(f.alias)
	}
	return nil
}

// derived renders a sub-query as an aliased FROM item.
type derived struct {
	query *Compiled
	alias string
}

func (f derived) ToSQL(b *Builder) error {
	if err := b.enterSubquery(); err != nil {
		return err
	}
	defer b.leaveSubquery()

	b.Push("(")
	if err := f.query.ToSQL(b); err != nil {
		return err
	}
	b.Push(") AS ")
	b.PushIdentifier(f.alias)
	return nil
}
