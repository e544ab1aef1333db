package sqlite_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/sqlite"
)

var users = stmtql.NewTable("users",
	stmtql.Col("id", stmtql.BigInt),
	stmtql.Col("name", stmtql.Text),
	stmtql.Col("active", stmtql.Boolean),
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		st     stmtql.Statement
		sql    string
		params []any
	}{
		{
			name: "scenario",
			st: stmtql.From(users).
				Select(users.C("name")).
				Filter(stmtql.Eq(users.C("active"), true)).
				Order(users.C("name")).
				Limit(10).
				Offset(5),
			sql:    "SELECT name FROM users WHERE active = ? ORDER BY name LIMIT ? OFFSET ?",
			params: []any{true, int64(10), int64(5)},
		},
		{
			name:   "offset without limit",
			st:     stmtql.From(users).Select(users.C("id")).Offset(20),
			sql:    "SELECT id FROM users LIMIT -1 OFFSET ?",
			params: []any{int64(20)},
		},
		{
			name:   "like",
			st:     stmtql.From(users).Select(users.C("id")).Filter(stmtql.Like(users.C("name"), "a%")),
			sql:    "SELECT id FROM users WHERE name LIKE ?",
			params: []any{"a%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.st.Render(sqlite.New())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if result.SQL != tt.sql {
				t.Errorf("SQL = %q, want %q", result.SQL, tt.sql)
			}
			if !reflect.DeepEqual(result.Params, tt.params) {
				t.Errorf("Params = %#v, want %#v", result.Params, tt.params)
			}
		})
	}
}

func TestRender_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		pred    stmtql.Expr
		feature string
	}{
		{"ilike", stmtql.ILike(users.C("name"), "a%"), "ILIKE"},
		{"regex", stmtql.Matches(users.C("name"), "^a"), "regular expression matching"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stmtql.From(users).Filter(tt.pred).Render(sqlite.New())
			var ufErr stmtql.UnsupportedFeatureError
			if !errors.As(err, &ufErr) {
				t.Fatalf("expected UnsupportedFeatureError, got %v", err)
			}
			if ufErr.Dialect != sqlite.Name || ufErr.Feature != tt.feature {
				t.Errorf("got %+v", ufErr)
			}
		})
	}
}
