package stmtql_test

import (
	"testing"

	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/postgres"
	stmtqltest "github.com/zoobzio/stmtql/testing"
)

func buildYAML(t *testing.T, instance *stmtql.Instance, data string) (stmtql.Statement, error) {
	t.Helper()
	schema, err := stmtql.ParseSchema([]byte(data))
	if err != nil {
		t.Fatalf("ParseSchema() error = %v", err)
	}
	return instance.BuildFromSchema(schema)
}

func TestBuildFromSchema(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	tests := []struct {
		name   string
		yaml   string
		sql    string
		params []any
	}{
		{
			name: "table only",
			yaml: "table: posts",
			sql:  "SELECT id, user_id, title, published, views FROM posts",
		},
		{
			name: "scenario",
			yaml: `
table: users
fields: [username]
where: {field: active, operator: "=", value: true}
order_by: [{field: username}]
limit: 10
offset: 5
`,
			sql:    "SELECT username FROM users WHERE active = $1 ORDER BY username ASC LIMIT $2 OFFSET $3",
			params: []any{true, int64(10), int64(5)},
		},
		{
			name: "aggregates and grouping",
			yaml: `
table: users
fields:
  - username
  - {field: "*", aggregate: count, alias: n}
where:
  logic: AND
  conditions:
    - {field: active, operator: "=", value: true}
    - {field: age, operator: ">=", value: 18}
group_by: [username]
order_by: [{field: username, direction: desc}]
`,
			sql:    "SELECT username, COUNT(*) AS n FROM users WHERE active = $1 AND age >= $2 GROUP BY username ORDER BY username DESC",
			params: []any{true, 18},
		},
		{
			name: "or group and null test",
			yaml: `
table: posts
fields: [title]
distinct: true
where:
  logic: OR
  conditions:
    - {field: title, operator: IS NULL}
    - {field: views, operator: IN, values: [1, 2]}
`,
			sql:    "SELECT DISTINCT title FROM posts WHERE title IS NULL OR views IN ($1, $2)",
			params: []any{1, 2},
		},
		{
			name: "aliased table",
			yaml: `
table: orders
alias: o
fields: [{field: o.total, aggregate: sum, alias: revenue}]
where: {field: o.status, operator: "!=", value: void}
`,
			sql:    "SELECT SUM(total) AS revenue FROM orders AS o WHERE status <> $1",
			params: []any{"void"},
		},
		{
			name: "with sub-query",
			yaml: `
table: users
with:
  - alias: paid
    query:
      table: orders
      fields: [user_id]
      where: {field: status, operator: "=", value: paid}
fields: [username]
where: {field: id, operator: "=", right_field: paid.user_id}
`,
			sql:    "SELECT users.username FROM users, (SELECT user_id FROM orders WHERE status = $1) AS paid WHERE users.id = paid.user_id",
			params: []any{"paid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := buildYAML(t, instance, tt.yaml)
			stmtqltest.AssertNoError(t, err)
			stmtqltest.AssertRenders(t, st, postgres.New(), tt.sql, tt.params...)
		})
	}
}

func TestBuildFromSchema_Errors(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no table", "fields: [id]", "table is required"},
		{"unknown table", "table: ghosts", "table 'ghosts' not found"},
		{"unknown field", "table: users\nfields: [nope]", "invalid field 'nope'"},
		{"star without count", "table: users\nfields: [{field: '*', aggregate: sum}]", "only allowed with the count aggregate"},
		{"bad aggregate", "table: users\nfields: [{field: age, aggregate: median}]", "unsupported aggregate"},
		{"bad operator", "table: users\nwhere: {field: age, operator: BETWEEN, value: 1}", "unsupported operator"},
		{"bad logic", "table: users\nwhere: {logic: XOR, conditions: [{field: active, operator: IS NULL}, {field: age, operator: IS NULL}]}", "invalid logic operator"},
		{"empty group", "table: users\nwhere: {logic: AND}", "at least one condition"},
		{"in without values", "table: users\nwhere: {field: age, operator: IN}", "requires values"},
		{"bad direction", "table: users\norder_by: [{field: age, direction: sideways}]", "invalid order direction"},
		{"type mismatch", "table: users\nwhere: {field: active, operator: '=', value: yes please}", "typed"},
		{"unknown group by field", "table: users\ngroup_by: [missing]", "invalid group by field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildYAML(t, instance, tt.yaml)
			stmtqltest.AssertErrorContains(t, err, tt.want)
		})
	}
}

func TestBuildFromSchema_Nil(t *testing.T) {
	_, err := stmtqltest.TestInstance(t).BuildFromSchema(nil)
	stmtqltest.AssertErrorContains(t, err, "schema cannot be nil")
}

func TestBuildFromSchema_DepthBoundByRenderer(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	schema := &stmtql.QuerySchema{Table: "users", Fields: []stmtql.FieldSchema{{Field: "id"}}}
	for i := 0; i <= stmtql.MaxSubqueryDepth; i++ {
		schema = &stmtql.QuerySchema{
			Table:  "users",
			Fields: []stmtql.FieldSchema{{Field: "users.id"}},
			With:   []stmtql.WithSchema{{Alias: "nested", Query: *schema}},
		}
	}

	st, err := instance.BuildFromSchema(schema)
	stmtqltest.AssertNoError(t, err)

	_, err = st.Render(postgres.New())
	stmtqltest.AssertInvalid(t, err, stmtql.PredicateValidSource)
	stmtqltest.AssertErrorContains(t, err, "maximum subquery depth")

	_, err = st.Render(postgres.New(stmtql.WithMaxSubqueryDepth(stmtql.MaxSubqueryDepth + 1)))
	stmtqltest.AssertNoError(t, err)
}

func TestParseSchema_Malformed(t *testing.T) {
	_, err := stmtql.ParseSchema([]byte("table: [unterminated"))
	stmtqltest.AssertErrorContains(t, err, "failed to parse query schema")
}
