package stmtql_test

import (
	"reflect"
	"testing"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/postgres"
	stmtqltest "github.com/zoobzio/stmtql/testing"
)

func TestNewFromDBML(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	if got, want := instance.Tables(), []string{"orders", "posts", "users"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tables() = %v, want %v", got, want)
	}
	if instance.Project() == nil {
		t.Error("Project() should return the DBML project")
	}

	st := stmtql.From(instance.T("users")).
		Select(instance.C("users", "username")).
		Filter(stmtql.Eq(instance.C("users", "active"), true))
	stmtqltest.AssertRenders(t, st, postgres.New(),
		"SELECT username FROM users WHERE active = $1", true)
}

func TestNewFromDBML_Nil(t *testing.T) {
	_, err := stmtql.NewFromDBML(nil)
	stmtqltest.AssertErrorContains(t, err, "cannot be nil")
}

func TestNewFromDBML_UnsupportedType(t *testing.T) {
	project := dbml.NewProject("bad")
	table := dbml.NewTable("things")
	table.AddColumn(dbml.NewColumn("shape", "geometry"))
	project.AddTable(table)

	_, err := stmtql.NewFromDBML(project)
	stmtqltest.AssertErrorContains(t, err, `unsupported column type "geometry"`)
}

func TestInstance_TryT(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	aliased, err := instance.TryT("users", "u")
	stmtqltest.AssertNoError(t, err)
	if aliased.Alias() != "u" {
		t.Errorf("Alias() = %q, want u", aliased.Alias())
	}

	_, err = instance.TryT("missing")
	stmtqltest.AssertErrorContains(t, err, "table 'missing' not found")

	_, err = instance.TryT("users", "a", "b")
	stmtqltest.AssertErrorContains(t, err, "only one alias")

	_, err = instance.TryT("users", "bad alias")
	stmtqltest.AssertErrorContains(t, err, "invalid table alias")

	stmtqltest.AssertPanics(t, func() { instance.T("missing") })
}

func TestInstance_TryC(t *testing.T) {
	instance := stmtqltest.TestInstance(t)

	c, err := instance.TryC("orders", "total")
	stmtqltest.AssertNoError(t, err)
	if c.Type != stmtql.Numeric {
		t.Errorf("orders.total type = %s, want %s", c.Type, stmtql.Numeric)
	}

	_, err = instance.TryC("orders", "missing")
	stmtqltest.AssertErrorContains(t, err, "column 'missing' not found in table 'orders'")

	stmtqltest.AssertPanics(t, func() { instance.C("users", "missing") })
}

func TestNewFromYAML(t *testing.T) {
	instance, err := stmtql.NewFromYAML([]byte(`
project: shop
tables:
  - name: products
    columns:
      - {name: id, type: bigint}
      - {name: title, type: varchar(255)}
      - {name: price, type: "numeric(10,2)"}
`))
	stmtqltest.AssertNoError(t, err)

	st := stmtql.From(instance.T("products")).
		Select(instance.C("products", "title")).
		Filter(stmtql.Lt(instance.C("products", "price"), instance.C("products", "id")))
	stmtqltest.AssertRenders(t, st, postgres.New(),
		"SELECT title FROM products WHERE price < id")
}

func TestNewFromYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "tables: [", "failed to parse tables YAML"},
		{"empty", "project: x", "defines no tables"},
		{"bad type", "tables: [{name: t, columns: [{name: c, type: hstore}]}]", "unsupported column type"},
		{"bad column", "tables: [{name: t, columns: [{name: 'a b', type: int}]}]", "invalid column name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stmtql.NewFromYAML([]byte(tt.data))
			stmtqltest.AssertErrorContains(t, err, tt.want)
		})
	}
}

func TestSQLTypeOf(t *testing.T) {
	tests := map[string]stmtql.SQLType{
		"int":                      stmtql.Integer,
		"INTEGER":                  stmtql.Integer,
		"bigserial":                stmtql.BigInt,
		"decimal(12,2)":            stmtql.Numeric,
		"double precision":         stmtql.Double,
		"varchar(64)":              stmtql.Text,
		"character varying":        stmtql.Text,
		"bit":                      stmtql.Boolean,
		"timestamp with time zone": stmtql.Timestamp,
		"datetime2":                stmtql.Timestamp,
		"date":                     stmtql.Date,
		"uniqueidentifier":         stmtql.UUID,
		"jsonb":                    stmtql.JSON,
		"bytea":                    stmtql.Bytes,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := stmtql.SQLTypeOf(in)
			stmtqltest.AssertNoError(t, err)
			if got != want {
				t.Errorf("SQLTypeOf(%q) = %s, want %s", in, got, want)
			}
		})
	}

	if _, err := stmtql.SQLTypeOf("vector"); err == nil {
		t.Error("SQLTypeOf(vector) should fail")
	}
}
