package stmtql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/stmtql/internal/capability"
	"gopkg.in/yaml.v3"
)

// QuerySchema is a SELECT statement in declarative form, serialized from
// YAML or JSON and converted to a Statement.
//
//nolint:govet // fieldalignment: Logical grouping is preferred for readability
type QuerySchema struct {
	Table    string           `json:"table" yaml:"table"`
	Alias    string           `json:"alias,omitempty" yaml:"alias,omitempty"`
	With     []WithSchema     `json:"with,omitempty" yaml:"with,omitempty"`
	Fields   []FieldSchema    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Distinct bool             `json:"distinct,omitempty" yaml:"distinct,omitempty"`
	Where    *ConditionSchema `json:"where,omitempty" yaml:"where,omitempty"`
	GroupBy  []string         `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	OrderBy  []OrderSchema    `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	Limit    *int64           `json:"limit,omitempty" yaml:"limit,omitempty"`
	Offset   *int64           `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// WithSchema merges an aliased sub-query into the source.
type WithSchema struct {
	Alias string      `json:"alias" yaml:"alias"`
	Query QuerySchema `json:"query" yaml:"query"`
}

// FieldSchema is one select list entry. Field may be qualified ("p.total");
// Aggregate is one of count, count_distinct, sum, avg, min, max. A count
// over field "*" is COUNT(*).
type FieldSchema struct {
	Field     string `json:"field" yaml:"field"`
	Aggregate string `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Alias     string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// UnmarshalYAML accepts a bare field name as shorthand for {field: name}.
func (f *FieldSchema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Field = node.Value
		return nil
	}
	type plain FieldSchema
	return node.Decode((*plain)(f))
}

// ConditionSchema represents a condition in declarative form.
type ConditionSchema struct {
	// For simple conditions
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Values   []any  `json:"values,omitempty" yaml:"values,omitempty"`

	// For field-to-field comparisons
	RightField string `json:"right_field,omitempty" yaml:"right_field,omitempty"`

	// For grouped conditions
	Logic      string            `json:"logic,omitempty" yaml:"logic,omitempty"` // "AND" or "OR"
	Conditions []ConditionSchema `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// OrderSchema represents ordering in declarative form.
type OrderSchema struct {
	Field     string `json:"field" yaml:"field"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"` // defaults to ASC
}

// ParseSchema decodes a YAML query schema.
func ParseSchema(data []byte) (*QuerySchema, error) {
	var schema QuerySchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse query schema: %w", err)
	}
	return &schema, nil
}

// BuildFromSchema converts a QuerySchema to a Statement over the instance's
// tables.
func (i *Instance) BuildFromSchema(schema *QuerySchema) (Statement, error) {
	if schema == nil {
		return Statement{}, fmt.Errorf("schema cannot be nil")
	}
	if schema.Table == "" {
		return Statement{}, fmt.Errorf("table is required")
	}

	var alias []string
	if schema.Alias != "" {
		alias = append(alias, schema.Alias)
	}
	table, err := i.TryT(schema.Table, alias...)
	if err != nil {
		return Statement{}, err
	}
	st := From(table)

	for idx := range schema.With {
		with := &schema.With[idx]
		sub, err := i.BuildFromSchema(&with.Query)
		if err != nil {
			return Statement{}, fmt.Errorf("with %s: %w", with.Alias, err)
		}
		st = st.With(sub.As(with.Alias))
	}

	if len(schema.Fields) > 0 {
		exprs := make([]Expr, len(schema.Fields))
		for idx, f := range schema.Fields {
			e, err := buildField(st, f)
			if err != nil {
				return Statement{}, fmt.Errorf("invalid field '%s': %w", f.Field, err)
			}
			exprs[idx] = e
		}
		st = st.Select(exprs...)
	}

	if schema.Distinct {
		st = st.Distinct()
	}

	if schema.Where != nil {
		pred, err := buildCondition(st, schema.Where)
		if err != nil {
			return Statement{}, fmt.Errorf("invalid where clause: %w", err)
		}
		st = st.Filter(pred)
	}

	if len(schema.GroupBy) > 0 {
		exprs := make([]Expr, len(schema.GroupBy))
		for idx, f := range schema.GroupBy {
			c, err := resolveField(st, f)
			if err != nil {
				return Statement{}, fmt.Errorf("invalid group by field '%s': %w", f, err)
			}
			exprs[idx] = c
		}
		st = st.GroupBy(exprs...)
	}

	if len(schema.OrderBy) > 0 {
		exprs := make([]Expr, len(schema.OrderBy))
		for idx, o := range schema.OrderBy {
			c, err := resolveField(st, o.Field)
			if err != nil {
				return Statement{}, fmt.Errorf("invalid order by field '%s': %w", o.Field, err)
			}
			switch strings.ToUpper(o.Direction) {
			case "", "ASC":
				exprs[idx] = Asc(c)
			case "DESC":
				exprs[idx] = Desc(c)
			default:
				return Statement{}, fmt.Errorf("invalid order direction: %s", o.Direction)
			}
		}
		st = st.Order(exprs...)
	}

	if schema.Limit != nil {
		st = st.Limit(*schema.Limit)
	}
	if schema.Offset != nil {
		st = st.Offset(*schema.Offset)
	}

	return st, st.Err()
}

// resolveField finds a possibly qualified column among the statement's
// visible columns.
func resolveField(st Statement, name string) (Column, error) {
	if st.err != nil {
		return Column{}, st.err
	}
	ref := Column{Name: name}
	if dot := strings.LastIndexByte(name, '.'); dot != -1 {
		ref = Column{Table: name[:dot], Name: name[dot+1:]}
	}
	return capability.Resolve(ref, st.query.From.Visible())
}

func buildField(st Statement, f FieldSchema) (Expr, error) {
	var e Expr
	if f.Field == "*" {
		if strings.ToLower(f.Aggregate) != "count" {
			return nil, fmt.Errorf("'*' is only allowed with the count aggregate")
		}
		e = Count()
	} else {
		c, err := resolveField(st, f.Field)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(f.Aggregate) {
		case "":
			e = c
		case "count":
			e = CountOf(c)
		case "count_distinct":
			e = CountDistinct(c)
		case "sum":
			e = Sum(c)
		case "avg":
			e = Avg(c)
		case "min":
			e = Min(c)
		case "max":
			e = Max(c)
		default:
			return nil, fmt.Errorf("unsupported aggregate: %s", f.Aggregate)
		}
	}
	if f.Alias != "" {
		e = As(e, f.Alias)
	}
	return e, nil
}

// buildCondition converts a ConditionSchema to a predicate.
func buildCondition(st Statement, schema *ConditionSchema) (Expr, error) {
	// Check if it's a group condition
	if schema.Logic != "" {
		if len(schema.Conditions) == 0 {
			return nil, fmt.Errorf("condition group requires at least one condition")
		}
		var out Expr
		for idx := range schema.Conditions {
			cond, err := buildCondition(st, &schema.Conditions[idx])
			if err != nil {
				return nil, fmt.Errorf("condition %d: %w", idx, err)
			}
			if out == nil {
				out = cond
				continue
			}
			switch strings.ToUpper(schema.Logic) {
			case "AND":
				out = And(out, cond)
			case "OR":
				out = Or(out, cond)
			default:
				return nil, fmt.Errorf("invalid logic operator: %s", schema.Logic)
			}
		}
		return out, nil
	}

	if schema.Field == "" {
		return nil, fmt.Errorf("condition requires a field")
	}
	left, err := resolveField(st, schema.Field)
	if err != nil {
		return nil, err
	}

	op := strings.ToUpper(strings.TrimSpace(schema.Operator))
	switch op {
	case "IS NULL":
		return IsNull(left), nil
	case "IS NOT NULL":
		return IsNotNull(left), nil
	case "IN", "NOT IN":
		if len(schema.Values) == 0 {
			return nil, fmt.Errorf("%s requires values", op)
		}
		if op == "IN" {
			return In(left, schema.Values...), nil
		}
		return NotIn(left, schema.Values...), nil
	}

	var right any = schema.Value
	if schema.RightField != "" {
		c, err := resolveField(st, schema.RightField)
		if err != nil {
			return nil, err
		}
		right = c
	}

	switch op {
	case "=", "==", "EQ":
		return Eq(left, right), nil
	case "!=", "<>", "NE":
		return Ne(left, right), nil
	case ">", "GT":
		return Gt(left, right), nil
	case ">=", "GE":
		return Ge(left, right), nil
	case "<", "LT":
		return Lt(left, right), nil
	case "<=", "LE":
		return Le(left, right), nil
	case "LIKE":
		return Like(left, right), nil
	case "NOT LIKE":
		return NotLike(left, right), nil
	case "ILIKE":
		return ILike(left, right), nil
	case "~", "REGEXP":
		return Matches(left, right), nil
	}
	return nil, fmt.Errorf("unsupported operator: %s", schema.Operator)
}
