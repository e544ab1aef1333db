package stmtql

import (
	"fmt"

	"github.com/zoobzio/stmtql/internal/types"
)

// Source is a table or aliased sub-query a statement can select from.
type Source interface {
	source() types.Source
}

// Table is a typed table reference.
type Table struct {
	t types.Table
}

// TryNewTable creates a table reference, returning an error if a name is invalid.
func TryNewTable(name string, cols ...Column) (Table, error) {
	if !isValidSQLIdentifier(name) {
		return Table{}, fmt.Errorf("invalid table name: %q", name)
	}
	seen := make(map[string]bool, len(cols))
	out := make([]types.Column, len(cols))
	for i, c := range cols {
		if !isValidSQLIdentifier(c.Name) {
			return Table{}, fmt.Errorf("table %s: invalid column name: %q", name, c.Name)
		}
		if c.Type == types.Unknown {
			return Table{}, fmt.Errorf("table %s: column %s has no type", name, c.Name)
		}
		if seen[c.Name] {
			return Table{}, fmt.Errorf("table %s: duplicate column %q", name, c.Name)
		}
		seen[c.Name] = true
		c.Table = ""
		out[i] = c
	}
	return Table{t: types.Table{Name: name, Columns: out}}, nil
}

// NewTable creates a table reference.
func NewTable(name string, cols ...Column) Table {
	t, err := TryNewTable(name, cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Table) source() types.Source { return t.t }

// Name returns the table name.
func (t Table) Name() string { return t.t.Name }

// Alias returns the table alias, if any.
func (t Table) Alias() string { return t.t.Alias }

// Columns returns the table's columns, qualified by its name or alias.
func (t Table) Columns() []Column { return t.t.Visible() }

// TryAs returns a copy of the table under alias.
func (t Table) TryAs(alias string) (Table, error) {
	if !isValidSQLIdentifier(alias) {
		return Table{}, fmt.Errorf("invalid table alias: %q", alias)
	}
	t.t.Alias = alias
	return t, nil
}

// As returns a copy of the table under alias.
func (t Table) As(alias string) Table {
	out, err := t.TryAs(alias)
	if err != nil {
		panic(err)
	}
	return out
}

// TryC returns the named column, or an error if the table has no such column.
func (t Table) TryC(name string) (Column, error) {
	c, ok := t.t.Column(name)
	if !ok {
		return Column{}, fmt.Errorf("column '%s' not found in table '%s'", name, t.t.Name)
	}
	return c, nil
}

// C returns the named column.
func (t Table) C(name string) Column {
	c, err := t.TryC(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Subquery is a statement under an alias, usable with From or With.
type Subquery struct {
	s types.Subquery
	// err is the origin statement's validity error, if any.
	err error
}

func (s Subquery) source() types.Source { return s.s }

// Alias returns the sub-query alias.
func (s Subquery) Alias() string { return s.s.Alias }

// Columns returns the sub-query's output columns, qualified by its alias.
func (s Subquery) Columns() []Column { return s.s.Visible() }

// TryC returns the named output column.
func (s Subquery) TryC(name string) (Column, error) {
	for _, c := range s.s.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("column '%s' not found in sub-query '%s'", name, s.s.Alias)
}

// C returns the named output column.
func (s Subquery) C(name string) Column {
	c, err := s.TryC(name)
	if err != nil {
		panic(err)
	}
	return c
}

// isValidSQLIdentifier checks if a string is a plain SQL identifier:
// a letter or underscore followed by letters, digits, or underscores.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}
	return true
}
