package types

// Source is anything a statement can select from.
type Source interface {
	IsSource()
	// Visible returns every column reachable through the source, qualified.
	Visible() []Column
	// Qualifiers returns the names the source introduces into scope.
	Qualifiers() []string
	// Depth returns how deeply sub-queries nest inside the source.
	Depth() int
}

// Table represents a validated table reference with typed columns.
type Table struct {
	Name    string
	Alias   string
	Columns []Column
}

// Subquery is a query merged into a FROM list under an alias.
// Columns holds the query's output columns, already qualified by Alias.
type Subquery struct {
	Query   *Query
	Alias   string
	Columns []Column
}

// WithSource is the With clause: it extends From with an aliased sub-query.
type WithSource struct {
	From Source
	Sub  Subquery
}

func (Table) IsSource()      {}
func (Subquery) IsSource()   {}
func (WithSource) IsSource() {}

// Qualifier returns the name columns of this table are qualified with.
func (t Table) Qualifier() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

func (t Table) Visible() []Column {
	q := t.Qualifier()
	out := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		c.Table = q
		out[i] = c
	}
	return out
}

func (t Table) Qualifiers() []string { return []string{t.Qualifier()} }

func (Table) Depth() int { return 0 }

// Column returns the named column qualified by the table, if it exists.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			c.Table = t.Qualifier()
			return c, true
		}
	}
	return Column{}, false
}

func (s Subquery) Visible() []Column {
	out := make([]Column, len(s.Columns))
	copy(out, s.Columns)
	return out
}

func (s Subquery) Qualifiers() []string { return []string{s.Alias} }

func (s Subquery) Depth() int {
	if s.Query == nil || s.Query.From == nil {
		return 1
	}
	return s.Query.From.Depth() + 1
}

func (w WithSource) Visible() []Column {
	return append(w.From.Visible(), w.Sub.Visible()...)
}

func (w WithSource) Qualifiers() []string {
	return append(w.From.Qualifiers(), w.Sub.Qualifiers()...)
}

func (w WithSource) Depth() int {
	return max(w.From.Depth(), w.Sub.Depth())
}
