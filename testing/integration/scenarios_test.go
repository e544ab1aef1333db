package integration

import (
	"reflect"
	"testing"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/stmtql"
)

// createTestInstance creates an instance matching the seeded schema. Every
// dialect stores the same logical columns.
func createTestInstance(t *testing.T) *stmtql.Instance {
	t.Helper()

	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("username", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	project.AddTable(users)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	instance, err := stmtql.NewFromDBML(project)
	if err != nil {
		t.Fatalf("Failed to create instance: %v", err)
	}
	return instance
}

// scenario is a statement over the seeded data and the usernames it returns,
// in order.
type scenario struct {
	name  string
	build func(i *stmtql.Instance) stmtql.Statement
	want  []string
}

func scenarios() []scenario {
	return []scenario{
		{
			name: "filter and order",
			build: func(i *stmtql.Instance) stmtql.Statement {
				return stmtql.From(i.T("users")).
					Select(i.C("users", "username")).
					Filter(stmtql.Eq(i.C("users", "active"), true)).
					Order(i.C("users", "username"))
			},
			want: []string{"alice", "bob", "diana"},
		},
		{
			name: "limit and offset",
			build: func(i *stmtql.Instance) stmtql.Statement {
				return stmtql.From(i.T("users")).
					Select(i.C("users", "username")).
					Order(i.C("users", "username")).
					Limit(2).
					Offset(1)
			},
			want: []string{"bob", "charlie"},
		},
		{
			name: "offset only",
			build: func(i *stmtql.Instance) stmtql.Statement {
				return stmtql.From(i.T("users")).
					Select(i.C("users", "username")).
					Order(stmtql.Desc(i.C("users", "age"))).
					Offset(2)
			},
			want: []string{"diana", "bob"},
		},
		{
			name: "or with membership",
			build: func(i *stmtql.Instance) stmtql.Statement {
				return stmtql.From(i.T("users")).
					Select(i.C("users", "username")).
					Filter(stmtql.Or(
						stmtql.In(i.C("users", "age"), 25, 35),
						stmtql.Like(i.C("users", "username"), "d%"),
					)).
					Order(i.C("users", "username"))
			},
			want: []string{"bob", "charlie", "diana"},
		},
		{
			name: "with sub-source",
			build: func(i *stmtql.Instance) stmtql.Statement {
				paid := stmtql.From(i.T("orders")).
					Select(i.C("orders", "user_id")).
					Filter(stmtql.Eq(i.C("orders", "status"), "completed")).
					As("paid")
				return stmtql.From(i.T("users")).
					With(paid).
					Select(i.C("users", "username")).
					Distinct().
					Filter(stmtql.Eq(i.C("users", "id"), paid.C("user_id"))).
					Order(i.C("users", "username"))
			},
			want: []string{"alice", "diana"},
		},
		{
			name: "group by",
			build: func(i *stmtql.Instance) stmtql.Statement {
				return stmtql.From(i.T("orders")).
					Select(i.C("orders", "status")).
					GroupBy(i.C("orders", "status")).
					Order(i.C("orders", "status"))
			},
			want: []string{"completed", "pending"},
		},
	}
}

// runScenarios renders every scenario for r, concretely and boxed, and
// checks the rows query returns.
func runScenarios(t *testing.T, r stmtql.Renderer, query func(t *testing.T, sql string, args ...any) []string) {
	t.Helper()
	instance := createTestInstance(t)

	for _, sc := range scenarios() {
		t.Run(sc.name, func(t *testing.T) {
			st := sc.build(instance)
			result, err := st.Render(r)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got := query(t, result.SQL, result.Params...); !reflect.DeepEqual(got, sc.want) {
				t.Errorf("rows = %v, want %v\nSQL: %s", got, sc.want, result.SQL)
			}

			boxed, err := st.IntoBoxed(r)
			if err != nil {
				t.Fatalf("IntoBoxed failed: %v", err)
			}
			result, err = boxed.Render()
			if err != nil {
				t.Fatalf("boxed Render failed: %v", err)
			}
			if got := query(t, result.SQL, result.Params...); !reflect.DeepEqual(got, sc.want) {
				t.Errorf("boxed rows = %v, want %v\nSQL: %s", got, sc.want, result.SQL)
			}
		})
	}
}
