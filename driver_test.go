package stmtql_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/stmtql"
	"github.com/zoobzio/stmtql/mysql"
	"github.com/zoobzio/stmtql/postgres"
)

func TestRender_ParamsAreDriverValues(t *testing.T) {
	tests := []struct {
		name     string
		renderer stmtql.Renderer
		sql      string
	}{
		{
			name:     "postgres",
			renderer: postgres.New(),
			sql:      "SELECT name FROM users WHERE active = $1 AND age >= $2 ORDER BY name LIMIT $3",
		},
		{
			name:     "mysql",
			renderer: mysql.New(),
			sql:      "SELECT name FROM users WHERE active = ? AND age >= ? ORDER BY name LIMIT ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer db.Close()

			result, err := stmtql.From(users).
				Select(users.C("name")).
				Filter(stmtql.Eq(users.C("active"), true)).
				Filter(stmtql.Ge(users.C("age"), 18)).
				Order(users.C("name")).
				Limit(2).
				Render(tt.renderer)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, result.SQL)

			mock.ExpectQuery(tt.sql).
				WithArgs(true, 18, int64(2)).
				WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("alice").AddRow("bob"))

			rows, err := db.Query(result.SQL, result.Params...)
			require.NoError(t, err)
			defer rows.Close()

			var names []string
			for rows.Next() {
				var n string
				require.NoError(t, rows.Scan(&n))
				names = append(names, n)
			}
			require.NoError(t, rows.Err())
			assert.Equal(t, []string{"alice", "bob"}, names)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
