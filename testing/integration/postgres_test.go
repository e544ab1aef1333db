package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgrenderer "github.com/zoobzio/stmtql/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container *postgres.PostgresContainer
	conn      *pgx.Conn
}

// Exec executes a SQL statement.
func (pc *PostgresContainer) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	if _, err := pc.conn.Exec(ctx, sql, args...); err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// QueryStrings collects the first column of every row.
func (pc *PostgresContainer) QueryStrings(ctx context.Context, t *testing.T, sql string, args ...any) []string {
	t.Helper()
	rows, err := pc.conn.Query(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, sql)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		t.Fatalf("Failed to collect rows: %v\nSQL: %s", err, sql)
	}
	return out
}

// setupSchema creates and seeds the test tables.
func setupSchema(ctx context.Context, t *testing.T, pc *PostgresContainer) {
	t.Helper()

	pc.Exec(ctx, t, `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			age INT,
			active BOOLEAN DEFAULT true
		)
	`)
	pc.Exec(ctx, t, `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(50) DEFAULT 'pending'
		)
	`)

	pc.Exec(ctx, t, `
		INSERT INTO users (id, username, email, age, active) VALUES
		(1, 'alice', 'alice@example.com', 30, true),
		(2, 'bob', 'bob@example.com', 25, true),
		(3, 'charlie', 'charlie@example.com', 35, false),
		(4, 'diana', 'diana@example.com', 28, true)
	`)
	pc.Exec(ctx, t, `
		INSERT INTO orders (id, user_id, total, status) VALUES
		(1, 1, 99.99, 'completed'),
		(2, 1, 149.99, 'completed'),
		(3, 2, 49.99, 'pending'),
		(4, 4, 199.99, 'completed')
	`)
}

// cleanupData removes all test data to ensure test isolation.
func cleanupData(ctx context.Context, t *testing.T, pc *PostgresContainer) {
	t.Helper()
	pc.Exec(ctx, t, `TRUNCATE TABLE orders, users RESTART IDENTITY CASCADE`)
}

func TestPostgresIntegration_Scenarios(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := getPostgresContainer(t)
	setupSchema(ctx, t, pc)
	t.Cleanup(func() { cleanupData(ctx, t, pc) })

	runScenarios(t, pgrenderer.New(), func(t *testing.T, sql string, args ...any) []string {
		return pc.QueryStrings(ctx, t, sql, args...)
	})
}
