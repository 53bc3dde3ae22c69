package testutils

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgPool connects to the development database described by the DB_*
// environment variables.
func NewPgPool(ctx context.Context) (*pgxpool.Pool, error) {
	var db_username string = getEnv("DB_USERNAME", "devel")
	var db_password string = getEnv("DB_PASSWORD", "devel")
	var db_host string = getEnv("DB_HOST", "localhost")
	var db_port string = getEnv("DB_PORT", "5432")
	var db_basename string = getEnv("DB_DATABASE", "devel_specification")

	connString := "postgres://" + db_username + ":" + db_password + "@" + db_host + ":" + db_port + "/" + db_basename

	return pgxpool.New(ctx, connString)
}

// PgPool is NewPgPool for tests. The test is skipped unless TEST_DB is set,
// so the unit suite never depends on a running database.
func PgPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("TEST_DB") == "" {
		t.Skip("TEST_DB is not set")
	}
	pool, err := NewPgPool(context.Background())
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
